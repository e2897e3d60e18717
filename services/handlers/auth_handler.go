package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/lumen-learning/lumen_api/dto"
	"github.com/lumen-learning/lumen_api/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
	}
}

// @Summary Register a new user
// @Description Create a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration details"
// @Success 201 {object} shared.Response{data=dto.RegisterResponse}
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Register(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "User registered successfully", resp)
}

// @Summary Login user
// @Description Authenticate user and return access token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login successful", resp)
}
