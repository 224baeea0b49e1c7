package middleware

import (
	"interview-assistant/internal/dto"
	"interview-assistant/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalSessionID     = "validated_session_id"
	LocalQuestionID    = "validated_question_id"
	LocalQuestionQuery = "validated_question_query"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID validates the :id path parameter of session routes
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateSessionID(id); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(LocalSessionID, id)
		return c.Next()
	}
}

// ValidateQuestionID validates a question id path parameter. Session routes
// use :questionId, question routes use :id.
func (vm *ValidationMiddleware) ValidateQuestionID(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params(param)
		if errors := vm.validator.ValidateQuestionID(id); len(errors) > 0 {
			return errors
		}
		c.Locals(LocalQuestionID, id)
		return c.Next()
	}
}

// ValidateQuestionQuery validates the listing filters
func (vm *ValidationMiddleware) ValidateQuestionQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := dto.QuestionQuery{
			CategoryID:  c.Query("category"),
			Subcategory: c.Query("subcategory"),
			SkillLevel:  c.Query("skill_level"),
			Text:        c.Query("q"),
		}
		if errors := vm.validator.ValidateQuestionQuery(query.CategoryID, query.SkillLevel, query.Text); len(errors) > 0 {
			return errors
		}
		c.Locals(LocalQuestionQuery, query)
		return c.Next()
	}
}
