package bootstrap

import (
	"context"
	"log"
	"time"

	"report-service-be/internal/config"
	"report-service-be/internal/controller"
	"report-service-be/internal/handler"
	"report-service-be/internal/pkg/logger"
	"report-service-be/internal/pkg/mailer"
	"report-service-be/internal/repository/memory"
	"report-service-be/internal/repository/unitofwork"
	"report-service-be/internal/service"
	"report-service-be/internal/websocket"
	"report-service-be/pkg/sqlgen/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	ChartTypeController controller.IChartTypeController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WorkflowStreamHandler *handler.WorkflowStreamHandler
	WebSocketHub          *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. SQL generation provider
	generator, err := factory.NewGenerator(
		cfg.SqlGen.Provider,
		cfg.SqlGen.Model,
		cfg.SqlGen.OllamaBaseURL,
		cfg.SqlGen.DefaultTable,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize SQL generator: %v", err)
	}
	log.Printf("[INFO] Using SQL generation provider: %s", cfg.SqlGen.Provider)

	// 4. Redis (optional; websocket fan-out degrades to single instance)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// 5. WebSocket hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 6. Caches
	chartTypeCache := memory.NewChartTypeCache()

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Events.WorkflowTopic, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.WorkflowTopic,
		wsHub,
		emailService,
		cfg.SMTP.NotifyEmail,
		sysLogger,
	)

	workflowService := service.NewWorkflowService(uowFactory, publisherService, sysLogger)
	chatService := service.NewChatService(
		uowFactory,
		generator,
		publisherService,
		sysLogger,
		time.Duration(cfg.SqlGen.TimeoutSeconds)*time.Second,
	)
	chartService := service.NewChartService(uowFactory, chartTypeCache, publisherService, sysLogger)

	// 8. Controllers
	chatController := controller.NewChatController(chatService, chartService, workflowService)
	chartTypeController := controller.NewChartTypeController(chartService)
	workflowStreamHandler := handler.NewWorkflowStreamHandler(wsHub, sysLogger)

	return &Container{
		ChatController:        chatController,
		ChartTypeController:   chartTypeController,
		ConsumerService:       consumerService,
		WorkflowStreamHandler: workflowStreamHandler,
		WebSocketHub:          wsHub,
		Logger:                sysLogger,
	}
}
