// File: homely/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homely/config"
	"homely/cron"
	"homely/database"
	bookingRepoPkg "homely/database/repository/booking"
	conversationRepoPkg "homely/database/repository/conversation"
	notificationRepoPkg "homely/database/repository/notification"
	providerRepoPkg "homely/database/repository/provider"
	serviceRepoPkg "homely/database/repository/service"
	userRepoPkg "homely/database/repository/user"
	"homely/events"
	"homely/handlers"
	"homely/middleware"
	"homely/realtime"
	"homely/routes"
	"homely/services/booking"
	"homely/services/catalog"
	"homely/services/chat"
	"homely/services/notification"
	"homely/services/payment"
	"homely/services/provider"
	"homely/services/user"
	"homely/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	stripe.Key = config.AppConfig.StripeKey

	// Realtime hub plus the cross-instance bridge over Redis pub/sub.
	hub := realtime.NewHub()
	bridge := realtime.NewBridge(utils.GetPubSubClient(), uuid.NewString())
	hub.SetBridge(bridge)
	go hub.Run()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go bridge.Listen(ctx, hub)

	// Integration event bus. A missing broker downgrades to a no-op publisher so
	// local development does not require RabbitMQ.
	var bus events.Publisher
	bus, err := events.NewPublisher(config.AppConfig.AMQPURL, config.AppConfig.AMQPExchange)
	if err != nil {
		logger.Warn("main: event bus unavailable, publishing disabled", zap.Error(err))
		bus = events.NopPublisher{}
	}
	defer bus.Close()

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	svcRepo := serviceRepoPkg.NewMongoServiceRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()
	convRepo := conversationRepoPkg.NewMongoConversationRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// Services.
	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Hub:      hub,
		Events:   bus,
		Sessions: utils.AuthSessionCache{},
	}

	providerService := &provider.DefaultProviderService{
		Repo:     provRepo,
		Hub:      hub,
		Events:   bus,
		Sessions: utils.AuthSessionCache{},
	}

	notificationService := &notification.DefaultNotificationService{
		Repo:      notifRepo,
		Users:     userRepo,
		Providers: provRepo,
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:   svcRepo,
		Hub:    hub,
		Events: bus,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings:     bookRepo,
		Services:     svcRepo,
		Providers:    provRepo,
		Users:        userRepo,
		Notification: notificationService,
		Hub:          hub,
		Events:       bus,
		Reminders:    cron.ReminderQueue{},
	}

	ctxStore := chat.NewRedisContextStore(utils.GetCacheClient())
	assistant, err := chat.NewGeminiAssistant(config.AppConfig.GeminiAPIKey, ctxStore)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize assistant: %v", err)
	}

	chatService := &chat.DefaultChatService{
		Repo:         convRepo,
		Assistant:    assistant,
		Notification: notificationService,
		Hub:          hub,
	}

	paymentService := &payment.DefaultPaymentService{
		Bookings:  bookRepo,
		Providers: providerService,
		Hub:       hub,
	}

	// Background worker for subscription warnings and booking reminders.
	cron.InitWorker(provRepo, notificationService, hub)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		ProviderRepo: provRepo,

		Auth:          handlers.NewAuthHandler(userService, providerService),
		Users:         handlers.NewUserHandler(userService),
		Providers:     handlers.NewProviderHandler(providerService),
		Services:      handlers.NewServiceHandler(catalogService),
		Bookings:      handlers.NewBookingHandler(bookingService),
		Chat:          handlers.NewChatHandler(chatService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Admin:         handlers.NewAdminHandler(userService, providerService, bookingService),
		Payments:      handlers.NewPaymentHandler(paymentService),
		Realtime:      handlers.NewRealtimeHandler(hub),
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("main: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
