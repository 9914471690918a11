package config

import (
	"time"

	"github.com/eduvoice/eduvoice-be/internal/delivery/http/handler"
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/middleware"
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/route"
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/usecase"
	"github.com/eduvoice/eduvoice-be/internal/pkg/audio"
	"github.com/eduvoice/eduvoice-be/internal/pkg/llm"
	"github.com/eduvoice/eduvoice-be/internal/pkg/stt"
	"github.com/eduvoice/eduvoice-be/internal/pkg/tts"
	"github.com/eduvoice/eduvoice-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	deepgram := stt.NewDeepgramClient(
		config.Config.GetString("providers.deepgram.api_key"),
		config.Config.GetString("providers.deepgram.base_url"),
	)
	groq := llm.NewGroqClient(
		config.Config.GetString("providers.groq.api_key"),
		config.Config.GetString("providers.groq.model"),
		config.Config.GetString("providers.groq.base_url"),
	)
	murf := tts.NewMurfClient(
		config.Config.GetString("providers.murf.api_key"),
		config.Config.GetString("providers.murf.base_url"),
	)

	tutorUsecase := usecase.NewTutorUsecase(usecase.TutorConfig{
		STT:    deepgram,
		LLM:    groq,
		TTS:    murf,
		Voices: murf,
		Config: config.Config,
		Log:    config.Log,
	})

	advanceDelay := usecase.DefaultAdvanceDelay
	if v := config.Config.GetInt("quiz.advance_delay_seconds"); v > 0 {
		advanceDelay = time.Duration(v) * time.Second
	}

	quizUsecase := usecase.NewQuizSessionUsecase(usecase.QuizSessionConfig{
		Gateway:      tutorUsecase,
		Sink:         audio.NewWriterSink(nil),
		Log:          config.Log,
		AdvanceDelay: advanceDelay,
		DefaultVoice: config.Config.GetString("providers.murf.voice"),
	})

	tutorHandler := handler.NewTutorHandler(config.Validator, config.Log, tutorUsecase)
	quizHandler := handler.NewQuizSessionHandler(config.Validator, config.Log, quizUsecase)

	route.Setup(&route.RouteConfig{
		Api:                config.Api,
		Middleware:         mid,
		TutorHandler:       tutorHandler,
		QuizSessionHandler: quizHandler,
	})

}
