// Package jobs runs the periodic background tasks of the service on
// github.com/robfig/cron/v3 schedules (six fields, seconds first).
//
// # Available Jobs
//
// AvailableParcelsBroadcastJob re-sends the list of pending parcels to the
// broadcast address, so couriers that subscribed late converge on the same
// view as those that saw every event.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(logger,
//		jobs.NewAvailableParcelsBroadcastJob(availableHandler, transport, schedule, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing run is logged and the schedule keeps going. A job that cannot be
// scheduled makes StartAll stop the jobs it already started.
package jobs
