package main

import (
	"context"

	bookinghandler "drivio/internal/bookings/handler"
	bookingrepository "drivio/internal/bookings/repository"
	bookingservice "drivio/internal/bookings/service"
	bookingvalidator "drivio/internal/bookings/validator"
	carhandler "drivio/internal/cars/handler"
	carrepository "drivio/internal/cars/repository"
	carservice "drivio/internal/cars/service"
	carvalidator "drivio/internal/cars/validator"
	dashboardhandler "drivio/internal/dashboard/handler"
	dashboardservice "drivio/internal/dashboard/service"
	userhandler "drivio/internal/users/handler"
	userrepository "drivio/internal/users/repository"
	userservice "drivio/internal/users/service"
	uservalidator "drivio/internal/users/validator"
	"drivio/pkg/app"
	"drivio/pkg/auth"
	"drivio/pkg/config"
	"drivio/pkg/events"
	"drivio/pkg/imagestore"
)

const ServiceName = "drivio"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Drivio service")
	cfg.SetMongo()

	tokens := auth.NewTokenMaker(cfg.JWTSecret, cfg.JWTTokenTTL)
	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	}()
	images := initImageStore(cfg)

	carRepo := carrepository.NewMongoCarRepository(cfg)
	carService := carservice.NewCarService(carRepo, carvalidator.NewCarValidator(cfg.Log), cfg)

	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepository.NewBookingLockRepository(cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		carRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	userRepo := userrepository.NewMongoUserRepository(cfg)
	userService := userservice.NewUserService(userRepo, uservalidator.NewUserValidator(cfg.Log), tokens, cfg)

	dashboardService := dashboardservice.NewDashboardService(bookingRepo, carRepo, cfg)

	maxImageSize := int64(cfg.MaxImageSize)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(tokens,
		userhandler.NewUserHandler(userService, images, maxImageSize, cfg.Log),
		carhandler.NewCarHandler(carService, images, maxImageSize, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboardService, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return events.NopPublisher{}
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.BookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event producer", "error", err)
	}

	cfg.Log.Info("Booking event producer initialized", "topic", cfg.BookingTopic)
	return producer
}

func initImageStore(cfg *config.Config) imagestore.Store {
	if cfg.ImageBucket == "" {
		cfg.Log.Info("No image bucket configured, image uploads disabled")
		return nil
	}

	store, err := imagestore.NewS3Store(context.Background(), imagestore.S3Config{
		Bucket:  cfg.ImageBucket,
		Region:  cfg.ImageBucketRegion,
		BaseURL: cfg.ImageBaseURL,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to initialize image store", "error", err)
	}

	cfg.Log.Info("Image store initialized", "bucket", cfg.ImageBucket)
	return store
}
