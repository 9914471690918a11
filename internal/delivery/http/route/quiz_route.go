package route

import (
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/handler"
	"github.com/gofiber/fiber/v2"
)

func SetupQuizSessionRoute(api *fiber.App, handler handler.QuizSessionHandler) {
	router := api.Group("/api/quiz/sessions")
	{
		router.Post("/", handler.Start)
		router.Get("/:session_id", handler.Get)
		router.Post("/:session_id/answer", handler.SubmitAnswer)
		router.Post("/:session_id/restart", handler.Restart)
		router.Delete("/:session_id", handler.Close)
	}
}
