package route

import (
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/handler"
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api                *fiber.App
	Middleware         *middleware.Middleware
	TutorHandler       handler.TutorHandler
	QuizSessionHandler handler.QuizSessionHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupTutorRoute(c.Api, c.TutorHandler)
	SetupQuizSessionRoute(c.Api, c.QuizSessionHandler)
}
