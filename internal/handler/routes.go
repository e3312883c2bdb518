package handler

import (
	"github.com/gofiber/fiber/v2"

	"bounties-api/internal/authz"
	"bounties-api/internal/domain"
	"bounties-api/internal/middleware"
	"bounties-api/internal/service/auth"
)

func SetupRoutes(router fiber.Router, h *Handlers, authService auth.Service) {
	v1 := router.Group("/api/v1", middleware.Authenticate(authService))

	transactions := v1.Group("/transaction")
	transactions.Get("/user/:public_address", h.Transaction.List)
	transactions.Post("/user/:public_address", middleware.Require(authz.CreateTransaction), h.Transaction.Create)
	transactions.Get("/viewed/user/:public_address", middleware.Require(authz.MarkAllTransactionsViewed), h.Transaction.MarkAllViewed)
	transactions.Get("/viewed/:transaction_id", middleware.Require(authz.MarkTransactionViewed), h.Transaction.MarkViewed)

	notifications := v1.Group("/notification")
	for _, category := range []domain.NotificationCategory{domain.CategoryActivity, domain.CategoryPush} {
		prefix := "/" + string(category)
		notifications.Get(prefix+"/user/:public_address", h.Notification.List(category))
		notifications.Get(prefix+"/user/:public_address/unviewed-count", h.Notification.CountUnviewed(category))
		notifications.Get(prefix+"/viewed/user/:public_address", middleware.Require(authz.MarkAllNotificationsViewed), h.Notification.MarkAllViewed(category))
	}
	notifications.Get("/viewed/:notification_id", middleware.Require(authz.MarkNotificationViewed), h.Notification.MarkViewed)

	users := v1.Group("/user")
	users.Get("/:public_address", h.User.GetProfile)
	users.Put("/:public_address", middleware.Require(authz.UpdateProfile), h.User.UpdateProfile)
	users.Get("/:public_address/settings", middleware.Require(authz.GetSettings), h.User.GetSettings)
	users.Put("/:public_address/settings", middleware.Require(authz.UpdateSettings), h.User.UpdateSettings)
	users.Post("/:public_address/profile-image", middleware.Require(authz.UploadProfileImage), h.User.UploadProfileImage)
}
