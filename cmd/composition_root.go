package cmd

import (
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"

	httpin "fieldops/internal/adapters/in/http"
	"fieldops/internal/adapters/out/authz"
	"fieldops/internal/adapters/out/notify"
	"fieldops/internal/adapters/out/postgres"
	"fieldops/internal/adapters/out/routing"
	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/application/usecases/queries"
	"fieldops/internal/core/domain/services"
	"fieldops/internal/core/ports"
	"fieldops/internal/realtime"
)

// CompositionRoot wires adapters to use cases. All dependencies are built
// once and shared; handlers themselves are cheap values created on demand.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	hub        *realtime.Hub
	authorizer authz.StaticAuthorizer
	notifier   ports.NotificationDispatcher
	estimator  services.RouteEstimator
}

// NewCompositionRoot builds the object graph from config and an open
// database handle.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	hub, err := realtime.NewHub(logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	notifier := notify.NewWebhookDispatcher(config.NotifyWebhookURL, 5*time.Second, logger)

	var estimator services.RouteEstimator
	if config.RoutingBaseURL != "" {
		client, clientErr := routing.NewClient(config.RoutingBaseURL, 3*time.Second, logger)
		if clientErr != nil {
			return CompositionRoot{}, clientErr
		}
		estimator = client
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		hub:        hub,
		authorizer: authz.NewStaticAuthorizer(),
		notifier:   notifier,
		estimator:  estimator,
	}, nil
}

// Logger returns the process logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Hub returns the realtime broadcast hub.
func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAssignEngineerCommandHandler() commands.AssignEngineerCommandHandler {
	return commands.NewAssignEngineerCommandHandler(
		c.uow(), c.authorizer, c.notifier, c.hub, c.logger)
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobCommandHandler(f, c.authorizer)
}

func (c *CompositionRoot) CreateCreateEngineerCommandHandler() commands.CreateEngineerCommandHandler {
	var f commands.EngineerUoWFactory = FuncEngineerUoWFactory(func() commands.EngineerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateEngineerCommandHandler(f, c.authorizer)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() (commands.CancelJobCommandHandler, error) {
	return commands.NewCancelJobCommandHandler(c.uow(), c.authorizer, c.hub, c.logger)
}

func (c *CompositionRoot) CreateCompleteJobCommandHandler() (commands.CompleteJobCommandHandler, error) {
	return commands.NewCompleteJobCommandHandler(c.uow(), c.authorizer, c.hub, c.logger)
}

func (c *CompositionRoot) CreateReconcileAssignmentsCommandHandler() (commands.ReconcileAssignmentsCommandHandler, error) {
	return commands.NewReconcileAssignmentsCommandHandler(c.uow(), c.logger)
}

func (c *CompositionRoot) CreateGetPendingJobsQueryHandler() queries.GetPendingJobsQueryHandler {
	return queries.NewGetPendingJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableEngineersQueryHandler() queries.GetAvailableEngineersQueryHandler {
	return queries.NewGetAvailableEngineersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleLocationsQueryHandler() queries.GetStaleLocationsQueryHandler {
	return queries.NewGetStaleLocationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetJobCandidatesQueryHandler() queries.GetJobCandidatesQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetJobCandidatesQueryHandler(
		uow.JobRepository(),
		uow.EngineerRepository(),
		services.NewDistanceRanker(c.estimator),
		c.authorizer,
	)
}

// CreateServer builds the HTTP server over the full handler set.
func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	cancelHandler, err := c.CreateCancelJobCommandHandler()
	if err != nil {
		return nil, err
	}

	completeHandler, err := c.CreateCompleteJobCommandHandler()
	if err != nil {
		return nil, err
	}

	return httpin.NewServer(
		c.CreateAssignEngineerCommandHandler(),
		c.CreateCreateJobCommandHandler(),
		c.CreateCreateEngineerCommandHandler(),
		cancelHandler,
		completeHandler,
		c.CreateGetPendingJobsQueryHandler(),
		c.CreateGetAvailableEngineersQueryHandler(),
		c.CreateGetJobCandidatesQueryHandler(),
		c.hub,
	), nil
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncEngineerUoWFactory func() commands.EngineerUoW

func (f FuncEngineerUoWFactory) Create() commands.EngineerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
