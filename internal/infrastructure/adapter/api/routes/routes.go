package routes

import (
	"net/http"

	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/token"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/handler"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	User      *handler.UserHandler
	Catalog   *handler.CatalogHandler
	Order     *handler.OrderHandler
	Wallet    *handler.WalletHandler
	Referral  *handler.ReferralHandler
	Messaging *handler.MessagingHandler
	Settings  *handler.SettingsHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	handlers Handlers,
	tokens token.Manager,
	store token.Store,
	m *metrics.Metrics,
	logger coreport.Logger,
) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", m.Handler())

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.User.Register)
		auth.POST("/login", handlers.User.Login)
	}
	api.GET("/catalog", handlers.Catalog.Browse)
	api.GET("/catalog/services/:serviceId", handlers.Catalog.GetService)
	api.GET("/payment-methods", handlers.Settings.ListPaymentMethods)
	api.GET("/support-contacts", handlers.Settings.ListSupportContacts)
	api.GET("/notices", handlers.Settings.ListNotices)

	// Authenticated routes
	authed := api.Group("/", middleware.Auth(tokens, store, logger))
	{
		authed.POST("/auth/logout", handlers.User.Logout)
		authed.GET("/me", handlers.User.Profile)

		authed.POST("/orders", handlers.Order.Place)
		authed.GET("/orders", handlers.Order.ListMine)
		authed.GET("/orders/:orderId", handlers.Order.Get)

		authed.POST("/wallet/withdrawals", handlers.Wallet.RequestWithdrawal)
		authed.GET("/wallet/transactions", handlers.Wallet.ListTransactions)

		authed.GET("/referrals", handlers.Referral.Summary)

		authed.POST("/messages", handlers.Messaging.Send)
		authed.GET("/messages", handlers.Messaging.GetThread)
		authed.GET("/messages/unread", handlers.Messaging.UnreadCount)

		authed.POST("/tickets", handlers.Messaging.OpenTicket)
		authed.GET("/tickets", handlers.Messaging.ListTickets)
	}

	// Admin routes
	admin := api.Group("/admin", middleware.Auth(tokens, store, logger), middleware.RequireAdmin())
	{
		admin.GET("/users", handlers.User.ListUsers)
		admin.PUT("/users/:userId/admin", handlers.User.SetAdmin)
		admin.GET("/users/:userId/reconcile", handlers.Wallet.Reconcile)

		admin.GET("/categories", handlers.Catalog.ListCategories)
		admin.POST("/categories", handlers.Catalog.CreateCategory)
		admin.PUT("/categories/:categoryId", handlers.Catalog.UpdateCategory)
		admin.DELETE("/categories/:categoryId", handlers.Catalog.DeleteCategory)

		admin.GET("/services", handlers.Catalog.ListServices)
		admin.POST("/services", handlers.Catalog.CreateService)
		admin.PUT("/services/:serviceId", handlers.Catalog.UpdateService)
		admin.DELETE("/services/:serviceId", handlers.Catalog.DeleteService)

		admin.GET("/providers", handlers.Catalog.ListProviders)
		admin.POST("/providers", handlers.Catalog.CreateProvider)
		admin.PUT("/providers/:providerId", handlers.Catalog.UpdateProvider)
		admin.DELETE("/providers/:providerId", handlers.Catalog.DeleteProvider)
		admin.POST("/providers/:providerId/import", handlers.Catalog.ImportServices)

		admin.POST("/orders/:orderId/cancel", handlers.Order.Cancel)
		admin.GET("/orders/review", handlers.Order.ListNeedingReview)

		admin.POST("/deposits", handlers.Wallet.RecordDeposit)
		admin.GET("/withdrawals", handlers.Wallet.ListPendingWithdrawals)
		admin.POST("/withdrawals/:transactionId/resolve", handlers.Wallet.ResolveWithdrawal)

		admin.GET("/referrals/tiers", handlers.Referral.ListTiers)
		admin.PUT("/referrals/tiers", handlers.Referral.ReplaceTiers)

		admin.GET("/messages", handlers.Messaging.ListConversations)
		admin.GET("/messages/:userId", handlers.Messaging.GetUserThread)
		admin.POST("/messages/:userId", handlers.Messaging.SendToUser)

		admin.GET("/tickets", handlers.Messaging.ListTicketsByStatus)
		admin.POST("/tickets/:ticketId/reply", handlers.Messaging.ReplyTicket)
		admin.POST("/tickets/:ticketId/close", handlers.Messaging.CloseTicket)

		admin.GET("/payment-methods", handlers.Settings.ListAllPaymentMethods)
		admin.POST("/payment-methods", handlers.Settings.SavePaymentMethod)
		admin.PUT("/payment-methods/:methodId", handlers.Settings.SavePaymentMethod)
		admin.DELETE("/payment-methods/:methodId", handlers.Settings.DeletePaymentMethod)

		admin.GET("/support-contacts", handlers.Settings.ListAllSupportContacts)
		admin.POST("/support-contacts", handlers.Settings.SaveSupportContact)
		admin.PUT("/support-contacts/:contactId", handlers.Settings.SaveSupportContact)
		admin.DELETE("/support-contacts/:contactId", handlers.Settings.DeleteSupportContact)

		admin.GET("/notices", handlers.Settings.ListAllNotices)
		admin.POST("/notices", handlers.Settings.SaveNotice)
		admin.PUT("/notices/:noticeId", handlers.Settings.SaveNotice)
		admin.DELETE("/notices/:noticeId", handlers.Settings.DeleteNotice)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, m *metrics.Metrics) {
	// Order matters: recovery wraps everything downstream
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(m.GinMiddleware())
}
