package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/lumen-learning/lumen_api/dto"
	"github.com/lumen-learning/lumen_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
	}
}

// @Summary Record a topic practice event
// @Description Apply a quiz/practice outcome to the user's mastery record for the course
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Param event body dto.TopicEventRequest true "Practice outcome"
// @Success 200 {object} shared.Response{data=dto.RecordTopicEventResponse}
// @Router /api/v1/progress/{courseId}/events [post]
func (h *ProgressHandler) RecordTopicEvent(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	var req dto.TopicEventRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.RecordTopicEvent(userID, courseID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Topic event recorded", resp)
}

// @Summary Get course mastery
// @Description Get the user's mastery record for the course
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.MasteryRecordResponse}
// @Router /api/v1/progress/{courseId} [get]
func (h *ProgressHandler) GetMastery(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	resp, err := h.progressSvc.GetMastery(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get practice recommendations
// @Description Get up to five prioritized revision suggestions for the course
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.RecommendationsResponse}
// @Router /api/v1/progress/{courseId}/recommendations [get]
func (h *ProgressHandler) GetRecommendations(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	resp, err := h.progressSvc.GetRecommendations(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get learning journey
// @Description Get the chronological practice history for the course
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.JourneyResponse}
// @Router /api/v1/progress/{courseId}/journey [get]
func (h *ProgressHandler) GetJourney(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	resp, err := h.progressSvc.GetJourney(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
