package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lumen-learning/lumen_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload Badge Icon (Admin)
// @Description Upload an icon asset referenced by badge definitions (Admin only)
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param icon formData file true "Icon file (PNG, JPG, SVG)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/badges/icons [post]
func (h *MediaHandler) UploadBadgeIcon(c *fiber.Ctx) error {
	file, err := c.FormFile("icon")
	if err != nil {
		return shared.NewBadRequestError(err, "No icon file provided")
	}

	response, err := h.mediaSvc.UploadBadgeIcon(file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Icon uploaded successfully", response)
}
