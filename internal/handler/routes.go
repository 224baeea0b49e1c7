package handler

import (
	"interview-assistant/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Catalog *CatalogHandler
	Session *SessionHandler
	Report  *ReportHandler
}

// RegisterRoutes mounts the API under router.
func RegisterRoutes(router fiber.Router, h Handlers) {
	vm := middleware.NewValidationMiddleware()

	router.Get("/health", h.Session.Health)

	router.Get("/categories", h.Catalog.ListCategories)
	router.Get("/categories/:id/sets", h.Catalog.GetCategorySets)

	questions := router.Group("/questions")
	questions.Get("/", vm.ValidateQuestionQuery(), h.Catalog.ListQuestions)
	questions.Get("/:id", vm.ValidateQuestionID("id"), h.Catalog.GetQuestion)
	questions.Get("/:id/related", vm.ValidateQuestionID("id"), h.Catalog.GetRelated)

	sessions := router.Group("/sessions")
	sessions.Post("/", h.Session.CreateSession)
	sessions.Get("/:id", vm.ValidateSessionID(), h.Session.GetSession)
	sessions.Patch("/:id", vm.ValidateSessionID(), h.Session.UpdateSession)
	sessions.Delete("/:id", vm.ValidateSessionID(), h.Session.ClearSession)
	sessions.Put("/:id/notes/:questionId", vm.ValidateSessionID(), vm.ValidateQuestionID("questionId"), h.Session.SetNote)
	sessions.Put("/:id/grades/:questionId", vm.ValidateSessionID(), vm.ValidateQuestionID("questionId"), h.Session.SetGrade)
	sessions.Post("/:id/points/:questionId", vm.ValidateSessionID(), vm.ValidateQuestionID("questionId"), h.Session.TogglePoint)
	sessions.Get("/:id/report", vm.ValidateSessionID(), h.Report.ExportReport)
}
