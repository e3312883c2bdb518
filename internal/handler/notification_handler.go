package handler

import (
	"github.com/gofiber/fiber/v2"

	"bounties-api/internal/domain"
	"bounties-api/internal/middleware"
	"bounties-api/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(category domain.NotificationCategory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := h.notifService.List(c.Context(), c.Params(middleware.IdentityParam), category, getPaginationParams(c))
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(result)
	}
}

func (h *NotificationHandler) CountUnviewed(category domain.NotificationCategory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := h.notifService.CountUnviewed(c.Context(), c.Params(middleware.IdentityParam), category)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"count": count,
		})
	}
}

func (h *NotificationHandler) MarkViewed(c *fiber.Ctx) error {
	id, err := parseID(c, "notification_id", "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkViewed(c.Context(), id, middleware.GetCaller(c)); err != nil {
		return err
	}

	return success(c)
}

func (h *NotificationHandler) MarkAllViewed(category domain.NotificationCategory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := h.notifService.MarkAllViewed(c.Context(), c.Params(middleware.IdentityParam), category, middleware.GetCaller(c)); err != nil {
			return err
		}

		return success(c)
	}
}
