package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	httpin "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/kafka"
	"parcelhub/internal/adapters/out/logtransport"
	"parcelhub/internal/adapters/out/memory"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/adapters/out/rabbitmq"
	"parcelhub/internal/adapters/out/redis"
	"parcelhub/internal/adapters/out/trackingnumber"
	"parcelhub/internal/core/application/notifications"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/jobs"
	"parcelhub/internal/pkg/cache"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot owns the adapters selected by the configuration and builds
// the use case handlers on top of them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory      ports.UnitOfWorkFactory
	transport       ports.NotificationTransport
	dispatcher      *notifications.Dispatcher
	cache           ports.BytesCache
	revocations     httpin.TokenRevocations
	trackingNumbers ports.TrackingNumberGenerator
	coordinator     *commands.Coordinator
	readModel       queries.ReadModel

	closers []io.Closer
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	if err := c.openStorage(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.openTransport(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.openRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}

	generator, err := trackingnumber.NewGenerator(cfg.NodeID)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.trackingNumbers = generator

	c.dispatcher = notifications.NewDispatcher(c.transport, logger, notifications.Config{
		QueueSize:   cfg.NotifyQueueSize,
		Shards:      cfg.NotifyWorkers,
		SendTimeout: cfg.NotifySendTimeout,
	})
	c.coordinator = commands.NewCoordinator(c.createUoWFactory(), c.dispatcher, c.cache, logger, commands.CoordinatorConfig{
		StorageTimeout: cfg.StorageTimeout,
	})
	c.readModel = queries.NewReadModel(c.uowFactory.Create(), c.cache, cfg.CacheTTL)

	return c, nil
}

func (c *CompositionRoot) openStorage(ctx context.Context) error {
	switch c.cfg.StorageDriver {
	case StorageDriverMemory:
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
		c.logger.InfoContext(ctx, "Using in-memory storage")
		return nil
	case StorageDriverPostgres:
		db, err := gorm.Open(postgresdriver.Open(c.cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		c.closers = append(c.closers, sqlDB)

		if err = postgres.Migrate(db.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.logger.InfoContext(ctx, "Connected to postgres", "host", c.cfg.DBHost, "db", c.cfg.DBName)
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.cfg.StorageDriver)
	}
}

func (c *CompositionRoot) openTransport() error {
	switch c.cfg.NotifyTransport {
	case NotifyTransportKafka:
		t := kafka.NewTransport(c.cfg.KafkaBrokers, c.cfg.KafkaTopicPrefix)
		c.transport = t
		c.closers = append(c.closers, t)
	case NotifyTransportRabbitMQ:
		t, err := rabbitmq.Dial(c.cfg.RabbitMQURL, c.cfg.RabbitMQExchange)
		if err != nil {
			return err
		}
		c.transport = t
		c.closers = append(c.closers, t)
	case NotifyTransportLog:
		c.transport = logtransport.NewTransport(c.logger)
	default:
		return fmt.Errorf("unknown notification transport %q", c.cfg.NotifyTransport)
	}
	return nil
}

// openRedis enables the read model cache and token revocation when
// REDIS_ADDR is set.
func (c *CompositionRoot) openRedis(ctx context.Context) error {
	if c.cfg.RedisAddr == "" {
		c.cache = cache.Noop{}
		return nil
	}

	client := redis.NewClient(redis.Options{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	})
	c.closers = append(c.closers, client)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	c.cache = redis.NewCache(client)
	c.revocations = redis.NewRevocationStore(client)
	return nil
}

// Dispatcher must be started before the server accepts requests.
func (c *CompositionRoot) Dispatcher() *notifications.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createCourierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.coordinator, c.trackingNumbers)
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	return commands.NewRegisterCourierCommandHandler(c.createCourierUoWFactory())
}

func (c *CompositionRoot) CreateTakeParcelCommandHandler() commands.TakeParcelCommandHandler {
	return commands.NewTakeParcelCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateDropParcelCommandHandler() commands.DropParcelCommandHandler {
	return commands.NewDropParcelCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	return commands.NewUpdateParcelStatusCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateUpdateParcelLocationCommandHandler() commands.UpdateParcelLocationCommandHandler {
	return commands.NewUpdateParcelLocationCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetParcelHistoryQueryHandler() queries.GetParcelHistoryQueryHandler {
	return queries.NewGetParcelHistoryQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateListAvailableParcelsQueryHandler() queries.ListAvailableParcelsQueryHandler {
	return queries.NewListAvailableParcelsQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateListActiveParcelsForCourierQueryHandler() queries.ListActiveParcelsForCourierQueryHandler {
	return queries.NewListActiveParcelsForCourierQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateListCustomerParcelsQueryHandler() queries.ListCustomerParcelsQueryHandler {
	return queries.NewListCustomerParcelsQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateGetParcelByTrackingNumberQueryHandler() queries.GetParcelByTrackingNumberQueryHandler {
	return queries.NewGetParcelByTrackingNumberQueryHandler(c.readModel)
}

// CreateServer builds the REST adapter over every handler.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateParcel:    c.CreateCreateParcelCommandHandler(),
		RegisterCourier: c.CreateRegisterCourierCommandHandler(),
		TakeParcel:      c.CreateTakeParcelCommandHandler(),
		DropParcel:      c.CreateDropParcelCommandHandler(),
		UpdateStatus:    c.CreateUpdateParcelStatusCommandHandler(),
		UpdateLocation:  c.CreateUpdateParcelLocationCommandHandler(),
		CancelParcel:    c.CreateCancelParcelCommandHandler(),

		ParcelHistory:        c.CreateGetParcelHistoryQueryHandler(),
		AvailableParcels:     c.CreateListAvailableParcelsQueryHandler(),
		CourierActiveParcels: c.CreateListActiveParcelsForCourierQueryHandler(),
		CustomerParcels:      c.CreateListCustomerParcelsQueryHandler(),
		TrackingLookup:       c.CreateGetParcelByTrackingNumberQueryHandler(),
	}, c.logger, httpin.Options{Revocations: c.revocations})
}

// CreateJobManager schedules the periodic broadcast of available parcels.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	broadcast := jobs.NewAvailableParcelsBroadcastJob(
		c.CreateListAvailableParcelsQueryHandler(),
		c.transport,
		c.cfg.AvailableBroadcastSchedule,
		c.logger,
	)
	return jobs.NewJobManager(c.logger, broadcast)
}

// Close releases the connections in reverse order of opening.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			c.logger.Error("Failed to close resource", "error", err)
		}
	}
	c.closers = nil
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
