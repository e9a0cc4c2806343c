// Package http wires repositories, use cases, and handlers into the gin
// engine serving the public API.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"trackd/internal/application/access"
	appnotification "trackd/internal/application/notification"
	notificationUC "trackd/internal/application/notification/usecases"
	ticketUC "trackd/internal/application/ticket/usecases"
	trackerUC "trackd/internal/application/tracker/usecases"
	appwebhook "trackd/internal/application/webhook"
	webhookUC "trackd/internal/application/webhook/usecases"
	"trackd/internal/infrastructure/auth"
	"trackd/internal/infrastructure/cache"
	"trackd/internal/infrastructure/config"
	"trackd/internal/infrastructure/email"
	"trackd/internal/infrastructure/repository"
	"trackd/internal/interfaces/http/handlers"
	"trackd/internal/interfaces/http/middleware"
	"trackd/internal/shared/db"
	"trackd/internal/shared/logger"
)

type Router struct {
	engine              *gin.Engine
	trackerHandler      *handlers.TrackerHandler
	ticketHandler       *handlers.TicketHandler
	notificationHandler *handlers.NotificationHandler
	webhookHandler      *handlers.WebhookHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter builds the full dependency graph. Construction is explicit and
// bottom-up: repositories, then domain services, then use cases, then
// handlers.
func NewRouter(database *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	// Repositories
	trackerRepo := repository.NewTrackerRepository(database)
	accessRepo := repository.NewUserAccessRepository(database)
	labelRepo := repository.NewLabelRepository(database)
	ticketRepo := repository.NewTicketRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	eventRepo := repository.NewEventRepository(database)
	subscriptionRepo := repository.NewSubscriptionRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	webhookSubRepo := repository.NewWebhookSubscriptionRepository(database)
	webhookDeliveryRepo := repository.NewWebhookDeliveryRepository(database)
	userRepo := repository.NewUserRepository(database)

	// Shared services
	txManager := db.NewTransactionManager(database)
	resolver := access.NewResolver(accessRepo)
	fanout := appnotification.NewFanoutService(subscriptionRepo, notificationRepo, log)
	dispatcher := appwebhook.NewDispatcher(webhookSubRepo, webhookDeliveryRepo, log)
	mailer := email.NewEventMailer(cfg.Email, log)
	unreadCache := cache.NewRedisUnreadCounterCache(redisClient, log)

	// Tracker use cases
	trackerHandler := handlers.NewTrackerHandler(
		trackerUC.NewCreateTrackerUseCase(trackerRepo, subscriptionRepo, txManager, log),
		trackerUC.NewGetTrackerUseCase(trackerRepo, resolver, log),
		trackerUC.NewListTrackersUseCase(trackerRepo, log),
		trackerUC.NewUpdateTrackerUseCase(trackerRepo, dispatcher, txManager, log),
		trackerUC.NewDeleteTrackerUseCase(trackerRepo, dispatcher, txManager, log),
		trackerUC.NewGrantAccessUseCase(trackerRepo, accessRepo, txManager, log),
		trackerUC.NewRevokeAccessUseCase(trackerRepo, accessRepo, txManager, log),
		trackerUC.NewCreateLabelUseCase(trackerRepo, labelRepo, resolver, txManager, log),
		trackerUC.NewDeleteLabelUseCase(trackerRepo, labelRepo, resolver, txManager, log),
		trackerUC.NewSubscribeTrackerUseCase(trackerRepo, subscriptionRepo, resolver, log),
		trackerUC.NewUnsubscribeTrackerUseCase(subscriptionRepo, log),
		log,
	)

	// Ticket use cases
	ticketHandler := handlers.NewTicketHandler(
		ticketUC.NewSubmitTicketUseCase(
			trackerRepo, ticketRepo, eventRepo, subscriptionRepo, userRepo,
			resolver, fanout, dispatcher, mailer, unreadCache, txManager, log,
		),
		ticketUC.NewGetTicketUseCase(trackerRepo, ticketRepo, resolver, log),
		ticketUC.NewListTicketsUseCase(trackerRepo, ticketRepo, resolver, log),
		ticketUC.NewUpdateTicketUseCase(
			trackerRepo, ticketRepo, commentRepo, eventRepo, subscriptionRepo, labelRepo, userRepo,
			resolver, fanout, dispatcher, mailer, unreadCache, txManager, log,
		),
		ticketUC.NewListEventsUseCase(trackerRepo, ticketRepo, eventRepo, resolver, log),
		ticketUC.NewSubscribeTicketUseCase(trackerRepo, ticketRepo, subscriptionRepo, resolver, log),
		ticketUC.NewUnsubscribeTicketUseCase(ticketRepo, subscriptionRepo, log),
		log,
	)

	// Notification use cases
	notificationHandler := handlers.NewNotificationHandler(
		notificationUC.NewListNotificationsUseCase(notificationRepo, log),
		notificationUC.NewUnreadCountUseCase(notificationRepo, unreadCache, log),
		notificationUC.NewMarkReadUseCase(notificationRepo, unreadCache, log),
		log,
	)

	// Webhook use cases
	webhookHandler := handlers.NewWebhookHandler(
		webhookUC.NewCreateWebhookUseCase(trackerRepo, ticketRepo, webhookSubRepo, resolver, log),
		webhookUC.NewDeleteWebhookUseCase(webhookSubRepo, log),
		webhookUC.NewListWebhooksUseCase(webhookSubRepo, log),
		log,
	)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo, log)

	return &Router{
		engine:              engine,
		trackerHandler:      trackerHandler,
		ticketHandler:       ticketHandler,
		notificationHandler: notificationHandler,
		webhookHandler:      webhookHandler,
		authMiddleware:      authMiddleware,
	}
}

// Engine exposes the underlying gin engine for serving and testing.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
