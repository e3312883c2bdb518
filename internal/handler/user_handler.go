package handler

import (
	"github.com/gofiber/fiber/v2"

	"bounties-api/internal/domain"
	"bounties-api/internal/middleware"
	"bounties-api/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.Context(), c.Params(middleware.IdentityParam))
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), c.Params(middleware.IdentityParam), middleware.GetCaller(c), input)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

func (h *UserHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.userService.GetSettings(c.Context(), c.Params(middleware.IdentityParam), middleware.GetCaller(c))
	if err != nil {
		return err
	}

	return c.JSON(settings)
}

func (h *UserHandler) UpdateSettings(c *fiber.Ctx) error {
	var input struct {
		Emails domain.EmailOptions `json:"emails"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	settings, err := h.userService.UpdateEmailSettings(c.Context(), c.Params(middleware.IdentityParam), middleware.GetCaller(c), input.Emails)
	if err != nil {
		return err
	}

	return c.JSON(settings)
}

func (h *UserHandler) UploadProfileImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return middleware.BadRequest("Image is required")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read image")
	}
	defer reader.Close()

	url, err := h.userService.UploadProfileImage(c.Context(), c.Params(middleware.IdentityParam), middleware.GetCaller(c), domain.ProfileImage{
		FileName: file.Filename,
		Size:     file.Size,
		MimeType: mimeType,
	}, reader)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"profile_image": url,
	})
}
