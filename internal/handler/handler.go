package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bounties-api/internal/domain"
	"bounties-api/internal/middleware"
	"bounties-api/internal/service"
)

type Handlers struct {
	Notification *NotificationHandler
	Transaction  *TransactionHandler
	User         *UserHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Notification: NewNotificationHandler(services.Notification),
		Transaction:  NewTransactionHandler(services.Transaction),
		User:         NewUserHandler(services.User),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func parseID(c *fiber.Ctx, param, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id < 1 {
		return 0, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

// success is the plain acknowledgement the mark endpoints answer with.
func success(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("success")
}
