package handler

import (
	"interview-assistant/internal/dto"
	"interview-assistant/internal/middleware"
	"interview-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles question catalog HTTP requests
type CatalogHandler struct {
	service service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler instance
func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// ListCategories godoc
// @Summary List categories
// @Description Returns every category with its ordered subcategories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoryListResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.ListCategories())
}

// GetCategorySets godoc
// @Summary List question sets of a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.QuestionSetListResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /categories/{id}/sets [get]
func (h *CatalogHandler) GetCategorySets(c *fiber.Ctx) error {
	resp, err := h.service.GetCategorySets(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuestions godoc
// @Summary List questions
// @Description Filters are optional and AND-combined; results are in canonical order
// @Tags questions
// @Produce json
// @Param category query string false "Category ID"
// @Param subcategory query string false "Subcategory name"
// @Param skill_level query string false "beginner, intermediate or advanced"
// @Param q query string false "Text search over question, short title and tags"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /questions [get]
func (h *CatalogHandler) ListQuestions(c *fiber.Ctx) error {
	query, ok := c.Locals(middleware.LocalQuestionQuery).(dto.QuestionQuery)
	if !ok {
		query = dto.QuestionQuery{
			CategoryID:  c.Query("category"),
			Subcategory: c.Query("subcategory"),
			SkillLevel:  c.Query("skill_level"),
			Text:        c.Query("q"),
		}
	}
	resp, err := h.service.ListQuestions(query)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [get]
func (h *CatalogHandler) GetQuestion(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestion(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetRelated godoc
// @Summary Get related questions
// @Description Unresolved related ids are dropped
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id}/related [get]
func (h *CatalogHandler) GetRelated(c *fiber.Ctx) error {
	resp, err := h.service.GetRelated(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
