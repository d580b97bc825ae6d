package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hustleworks/hustleblog/internal/blogservice"
	"github.com/hustleworks/hustleblog/internal/common"
	"github.com/hustleworks/hustleblog/internal/engagementservice"
	"github.com/hustleworks/hustleblog/internal/mailservice"
	"github.com/hustleworks/hustleblog/internal/mediaservice"
	"github.com/hustleworks/hustleblog/internal/userservice"
)

type application struct {
	config            *Config
	logger            *slog.Logger
	userService       *userservice.UserService
	blogService       *blogservice.BlogService
	engagementService *engagementservice.EngagementService
	mediaService      *mediaservice.MediaService
	mailService       *mailservice.MailService
	broker            *common.MessageBroker
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.MongoURI, cfg.MongoDB, 10, 10*time.Second)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	// Setup the exchange, queue, and binding key
	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mediaService, err := mediaservice.NewMediaService(ctx, cfg.AWSRegion, cfg.AWSBucket, cfg.AWSAccessKey, cfg.AWSSecretKey)
	if err != nil {
		logger.Error("failed to initialize the media service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the services
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	tokens := userservice.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	google := userservice.NewGoogleVerifier(cfg.GoogleClientID)

	app := &application{
		config:            cfg,
		logger:            logger,
		userService:       userservice.NewUserService(db, broker, tokens, google),
		blogService:       blogservice.NewBlogService(db, cache),
		engagementService: engagementservice.NewEngagementService(db),
		mediaService:      mediaService,
		mailService:       mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:            broker,
	}

	// Create the unique indexes the services rely on
	for _, setup := range []func(context.Context) error{
		app.userService.Setup,
		app.blogService.Setup,
		app.engagementService.Setup,
	} {
		if err := setup(ctx); err != nil {
			logger.Error("failed to create indexes", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Initialize the consumer
	go app.mailService.SendWelcomeEmail()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
