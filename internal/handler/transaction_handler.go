package handler

import (
	"github.com/gofiber/fiber/v2"

	"bounties-api/internal/domain"
	"bounties-api/internal/middleware"
	"bounties-api/internal/service/transaction"
)

type TransactionHandler struct {
	txService transaction.Service
}

func NewTransactionHandler(txService transaction.Service) *TransactionHandler {
	return &TransactionHandler{txService: txService}
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	result, err := h.txService.ListUnviewed(c.Context(), c.Params(middleware.IdentityParam), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	tx, err := h.txService.Create(c.Context(), c.Params(middleware.IdentityParam), middleware.GetCaller(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *TransactionHandler) MarkViewed(c *fiber.Ctx) error {
	id, err := parseID(c, "transaction_id", "transaction")
	if err != nil {
		return err
	}

	if err := h.txService.MarkViewed(c.Context(), id, middleware.GetCaller(c)); err != nil {
		return err
	}

	return success(c)
}

func (h *TransactionHandler) MarkAllViewed(c *fiber.Ctx) error {
	if _, err := h.txService.MarkAllViewed(c.Context(), c.Params(middleware.IdentityParam), middleware.GetCaller(c)); err != nil {
		return err
	}

	return success(c)
}
