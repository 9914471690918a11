package route

import (
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/handler"
	"github.com/gofiber/fiber/v2"
)

func SetupTutorRoute(api *fiber.App, handler handler.TutorHandler) {
	api.Get("/health", handler.Health)

	deepgramRouter := api.Group("/api/deepgram")
	{
		deepgramRouter.Post("/transcribe", handler.Transcribe)
	}

	tutorRouter := api.Group("/api/tutor")
	{
		tutorRouter.Post("/chat", handler.Chat)
		tutorRouter.Post("/generate-questions", handler.GenerateQuestions)
		tutorRouter.Post("/generate-quiz", handler.GenerateQuiz)
		tutorRouter.Post("/check-answer", handler.CheckAnswer)
		tutorRouter.Post("/ask", handler.Ask)
		tutorRouter.Get("/stats", handler.Stats)
		tutorRouter.Delete("/history/:session_id", handler.ClearHistory)
	}

	murfRouter := api.Group("/api/murf")
	{
		murfRouter.Post("/tts", handler.Synthesize)
		murfRouter.Get("/voices", handler.Voices)
	}

	api.Get("/api/comparison", handler.Comparison)
}
