package bootstrap

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"

	"boatchat-client/internal/api"
	"boatchat-client/internal/config"
	"boatchat-client/internal/pkg/logger"
	"boatchat-client/internal/service"
	"boatchat-client/internal/state"
	"boatchat-client/pkg/answer"
)

// Container wires the client engine: one store, one API client, and the
// services that drive it. Close stops the action bus; in-flight dispatches
// complete first.
type Container struct {
	Store  *state.Store
	Client api.IClient
	Parser *answer.Parser

	AssistantService service.IAssistantService
	FeedbackService  service.IFeedbackService
	HistoryService   service.IHistoryService
	SyncService      service.ISyncService
	UserService      service.IUserService

	Logger logger.ILogger
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	watermillLogger := watermill.NewStdLogger(false, false)
	store := state.NewStore(state.NewAppState(), watermillLogger)
	if err := store.Run(ctx); err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout)

	syncService := service.NewSyncService(store, client, sysLogger)

	return &Container{
		Store:  store,
		Client: client,
		Parser: answer.NewParser(),

		AssistantService: service.NewAssistantService(store, client, syncService, sysLogger),
		FeedbackService:  service.NewFeedbackService(store, client, sysLogger),
		HistoryService:   service.NewHistoryService(store, client, sysLogger),
		SyncService:      syncService,
		UserService:      service.NewUserService(client, sysLogger, cfg.App.ProfilePath),

		Logger: sysLogger,
	}, nil
}

// Startup runs the launch sequence: frontend settings, history availability,
// and the first page of history when the store is reachable.
func (c *Container) Startup(ctx context.Context) {
	if err := c.HistoryService.LoadFrontendSettings(ctx); err != nil {
		c.Logger.Warn("bootstrap", "frontend settings unavailable", map[string]interface{}{"error": err.Error()})
	}

	health := c.HistoryService.EnsureCosmos(ctx)
	if !health.CosmosDB {
		c.Logger.Warn("bootstrap", "history store unavailable", map[string]interface{}{"status": string(health.Status)})
		return
	}

	if err := c.HistoryService.LoadChatHistory(ctx, 0); err != nil {
		c.Logger.Error("bootstrap", "initial history load failed", map[string]interface{}{"error": err.Error()})
	}
}

func (c *Container) Close() error {
	err := c.Store.Close()
	_ = c.Logger.Sync()
	return err
}
