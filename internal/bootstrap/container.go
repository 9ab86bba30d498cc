package bootstrap

import (
	"context"
	"log"
	"time"

	"peer-support-be/internal/config"
	"peer-support-be/internal/controller"
	"peer-support-be/internal/pkg/logger"
	"peer-support-be/internal/pkg/mailer"
	"peer-support-be/internal/realtime"
	"peer-support-be/internal/repository/implementation"
	"peer-support-be/internal/repository/memory"
	"peer-support-be/internal/service"
	"peer-support-be/pkg/llm"
	"peer-support-be/pkg/llm/ollama"
	pktNats "peer-support-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const scoreSessionTopic = "session.completed"

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	SessionController     controller.ISessionController
	LeaderboardController controller.ILeaderboardController
	CrisisController      controller.ICrisisController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Realtime layer
	RealtimeHandler *realtime.Handler
	Hub             *realtime.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// LLM provider for the simulated person in distress
	var llmProvider llm.LLMProvider = ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	log.Printf("[INFO] Using LLM Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis backplane for the hub
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

	// 3. Repositories
	userRepo := implementation.NewUserRepository(db)
	sessionRepo := implementation.NewSessionRepository(db)
	crisisRepo := implementation.NewCrisisAlertRepository(db)
	leaderboardCache := memory.NewLeaderboardCache()

	// 4. Realtime layer
	rtLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	hub := realtime.NewHub(rdb, rtLogger)
	go hub.Run()
	hub.StartHeartbeat(time.Minute)

	// 5. Services
	publisherService := service.NewPublisherService(scoreSessionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		scoreSessionTopic,
		sessionRepo,
		userRepo,
		leaderboardCache,
	)

	authService := service.NewAuthService(userRepo, natsPub, cfg.App.JWTSecret)
	sessionService := service.NewSessionService(sessionRepo, llmProvider, publisherService)
	leaderboardService := service.NewLeaderboardService(sessionRepo, leaderboardCache)
	crisisService := service.NewCrisisService(crisisRepo, natsPub, natsSub, emailService, cfg.SMTP.OnCallEmail, sysLogger)

	// Escalation worker (durable NATS consumer)
	if natsSub != nil {
		crisisService.Start()
	}

	router := realtime.NewRouter(hub, crisisService, rtLogger)
	rtHandler := realtime.NewHandler(hub, router, cfg.App.JWTSecret)

	// 6. Controllers
	return &Container{
		AuthController:        controller.NewAuthController(authService),
		SessionController:     controller.NewSessionController(sessionService),
		LeaderboardController: controller.NewLeaderboardController(leaderboardService),
		CrisisController:      controller.NewCrisisController(crisisService),

		ConsumerService: consumerService,

		RealtimeHandler: rtHandler,
		Hub:             hub,
	}
}
