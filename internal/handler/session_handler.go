package handler

import (
	"interview-assistant/internal/domain"
	"interview-assistant/internal/dto"
	"interview-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles interviewer session HTTP requests
type SessionHandler struct {
	service service.SessionService
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

func invalidBody() error {
	return domain.NewInvalidInputError("request body is not valid JSON")
}

// Health godoc
// @Summary Service health
// @Description Reports storage reachability and whether any session is running degraded
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SessionHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.service.Health(c.UserContext()))
}

// CreateSession godoc
// @Summary Start a session
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	resp, err := h.service.CreateSession(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession godoc
// @Summary Get a session
// @Description Restores the session from storage when it is not live
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateSession godoc
// @Summary Update a session
// @Description Partial update; nested maps are merged key by key
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Param request body dto.UpdateSessionRequest true "Partial state"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [patch]
func (h *SessionHandler) UpdateSession(c *fiber.Ctx) error {
	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	resp, err := h.service.UpdateSession(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ClearSession godoc
// @Summary Clear a session
// @Description Deletes the persisted record and resets the state. Requires confirm=true.
// @Tags sessions
// @Param id path string true "Session ID (ULID)"
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 428 {object} middleware.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) ClearSession(c *fiber.Ctx) error {
	confirmed := c.QueryBool("confirm", false)
	if err := h.service.ClearSession(c.UserContext(), c.Params("id"), confirmed); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetNote godoc
// @Summary Set the note of a question
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Param questionId path string true "Question ID"
// @Param request body dto.NoteRequest true "Note"
// @Success 200 {object} dto.SessionResponse
// @Router /sessions/{id}/notes/{questionId} [put]
func (h *SessionHandler) SetNote(c *fiber.Ctx) error {
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	resp, err := h.service.SetNote(c.UserContext(), c.Params("id"), c.Params("questionId"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SetGrade godoc
// @Summary Rate a question
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Param questionId path string true "Question ID"
// @Param request body dto.GradeRequest true "Rating 1-5"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /sessions/{id}/grades/{questionId} [put]
func (h *SessionHandler) SetGrade(c *fiber.Ctx) error {
	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	resp, err := h.service.SetGrade(c.UserContext(), c.Params("id"), c.Params("questionId"), req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// TogglePoint godoc
// @Summary Toggle an answer point
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Param questionId path string true "Question ID"
// @Param request body dto.TogglePointRequest true "Point position"
// @Success 200 {object} dto.TogglePointResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /sessions/{id}/points/{questionId} [post]
func (h *SessionHandler) TogglePoint(c *fiber.Ctx) error {
	var req dto.TogglePointRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	resp, err := h.service.TogglePoint(c.UserContext(), c.Params("id"), c.Params("questionId"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
