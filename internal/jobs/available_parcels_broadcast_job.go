package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	DefaultBroadcastSchedule = "*/30 * * * * *"
	SnapshotKind             = "AVAILABLE_SNAPSHOT"

	runTimeout = 10 * time.Second
)

// AvailableParcelsSnapshot is the payload sent to the broadcast address.
type AvailableParcelsSnapshot struct {
	Kind      string                 `json:"kind"`
	Parcels   []readmodel.ParcelView `json:"parcels"`
	Timestamp time.Time              `json:"timestamp"`
}

type availableParcelsLister interface {
	Handle(ctx context.Context, query queries.ListAvailableParcelsQuery) ([]readmodel.ParcelView, error)
}

// AvailableParcelsBroadcastJob publishes the pending parcel list on a schedule.
type AvailableParcelsBroadcastJob struct {
	lister    availableParcelsLister
	transport ports.NotificationTransport
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
	now       func() time.Time
}

func NewAvailableParcelsBroadcastJob(
	lister availableParcelsLister,
	transport ports.NotificationTransport,
	schedule string,
	logger *slog.Logger,
) *AvailableParcelsBroadcastJob {
	if schedule == "" {
		schedule = DefaultBroadcastSchedule
	}
	return &AvailableParcelsBroadcastJob{
		lister:    lister,
		transport: transport,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "available_parcels_broadcast_job"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (j *AvailableParcelsBroadcastJob) Name() string {
	return "available parcels broadcast"
}

func (j *AvailableParcelsBroadcastJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Available parcels broadcast failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Available parcels broadcast job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running broadcast to finish.
func (j *AvailableParcelsBroadcastJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Available parcels broadcast job stopped")
}

// RunOnce sends one snapshot. An empty list is sent too, so subscribers
// learn that nothing is pending.
func (j *AvailableParcelsBroadcastJob) RunOnce(ctx context.Context) error {
	parcels, err := j.lister.Handle(ctx, queries.NewListAvailableParcelsQuery())
	if err != nil {
		return err
	}
	if parcels == nil {
		parcels = []readmodel.ParcelView{}
	}

	payload, err := json.Marshal(AvailableParcelsSnapshot{
		Kind:      SnapshotKind,
		Parcels:   parcels,
		Timestamp: j.now(),
	})
	if err != nil {
		return err
	}

	if err = j.transport.Send(ctx, ports.BroadcastAddress(), payload); err != nil {
		return err
	}
	j.logger.DebugContext(ctx, "Available parcels broadcast sent", "count", len(parcels))
	return nil
}
