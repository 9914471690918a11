package handler

import (
	"time"

	"github.com/eduvoice/eduvoice-be/internal/delivery/http/domain"
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/entity"
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/usecase"
	"github.com/eduvoice/eduvoice-be/internal/pkg/response"
	"github.com/eduvoice/eduvoice-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	TutorHandler interface {
		Transcribe(ctx *fiber.Ctx) error
		Chat(ctx *fiber.Ctx) error
		GenerateQuestions(ctx *fiber.Ctx) error
		GenerateQuiz(ctx *fiber.Ctx) error
		CheckAnswer(ctx *fiber.Ctx) error
		Synthesize(ctx *fiber.Ctx) error
		Voices(ctx *fiber.Ctx) error
		Ask(ctx *fiber.Ctx) error
		Stats(ctx *fiber.Ctx) error
		ClearHistory(ctx *fiber.Ctx) error
		Comparison(ctx *fiber.Ctx) error
		Health(ctx *fiber.Ctx) error
	}

	tutorHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.TutorUsecase
	}
)

func NewTutorHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.TutorUsecase) TutorHandler {
	return &tutorHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /api/deepgram/transcribe
func (h *tutorHandler) Transcribe(ctx *fiber.Ctx) error {
	var req entity.TranscribeRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TUTOR_TRANSCRIBE_FAILED, err, h.logger).Send(ctx)
	}

	transcript, err := h.usecase.Transcribe(ctx.UserContext(), req.Audio)
	if err != nil {
		return response.NewFailed(domain.TUTOR_TRANSCRIBE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TUTOR_TRANSCRIBE_SUCCESS, entity.TranscribeResponse{Transcript: transcript}, nil).Send(ctx)
}

// POST /api/tutor/chat
func (h *tutorHandler) Chat(ctx *fiber.Ctx) error {
	var req entity.ChatRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TUTOR_CHAT_FAILED, err, h.logger).Send(ctx)
	}

	answer, err := h.usecase.Chat(ctx.UserContext(), req.Message, req.Subject, req.ConversationHistory)
	if err != nil {
		return response.NewFailed(domain.TUTOR_CHAT_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TUTOR_CHAT_SUCCESS, entity.ChatResponse{Response: answer}, nil).Send(ctx)
}

// POST /api/tutor/generate-questions
func (h *tutorHandler) GenerateQuestions(ctx *fiber.Ctx) error {
	var req entity.GenerateQuestionsRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TUTOR_GENERATE_QUESTIONS_FAILED, err, h.logger).Send(ctx)
	}

	questions, err := h.usecase.GenerateQuestions(ctx.UserContext(), req.Topic, req.Subject, req.Count)
	if err != nil {
		return response.NewFailed(domain.TUTOR_GENERATE_QUESTIONS_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TUTOR_GENERATE_QUESTIONS_SUCCESS, entity.GenerateQuestionsResponse{Questions: questions}, nil).Send(ctx)
}

// POST /api/tutor/generate-quiz
func (h *tutorHandler) GenerateQuiz(ctx *fiber.Ctx) error {
	var req entity.GenerateQuizRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TUTOR_GENERATE_QUIZ_FAILED, err, h.logger).Send(ctx)
	}

	quiz, err := h.usecase.GenerateQuiz(ctx.UserContext(), req.Topic, req.Subject, req.Difficulty, req.Count)
	if err != nil {
		return response.NewFailed(domain.TUTOR_GENERATE_QUIZ_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TUTOR_GENERATE_QUIZ_SUCCESS, entity.GenerateQuizResponse{Quiz: quiz}, nil).Send(ctx)
}

// POST /api/tutor/check-answer
func (h *tutorHandler) CheckAnswer(ctx *fiber.Ctx) error {
	var req entity.CheckAnswerRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TUTOR_CHECK_ANSWER_FAILED, err, h.logger).Send(ctx)
	}

	result := h.usecase.CheckAnswer(req)

	return response.NewSuccess(domain.TUTOR_CHECK_ANSWER_SUCCESS, result, nil).Send(ctx)
}

// POST /api/murf/tts
func (h *tutorHandler) Synthesize(ctx *fiber.Ctx) error {
	var req entity.SynthesizeRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TUTOR_SYNTHESIZE_FAILED, err, h.logger).Send(ctx)
	}

	audioData, err := h.usecase.Synthesize(ctx.UserContext(), req.Text, req.VoiceID)
	if err != nil {
		return response.NewFailed(domain.TUTOR_SYNTHESIZE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TUTOR_SYNTHESIZE_SUCCESS, entity.SynthesizeResponse{AudioData: audioData}, nil).Send(ctx)
}

// GET /api/murf/voices - provider catalog is passed through unmodified.
func (h *tutorHandler) Voices(ctx *fiber.Ctx) error {
	voices, err := h.usecase.Voices(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.TUTOR_VOICES_FAILED, err, h.logger).Send(ctx)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Status(fiber.StatusOK).Send(voices)
}

// POST /api/tutor/ask
func (h *tutorHandler) Ask(ctx *fiber.Ctx) error {
	var req entity.AskRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TUTOR_ASK_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.Ask(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.TUTOR_ASK_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TUTOR_ASK_SUCCESS, result, nil).Send(ctx)
}

// GET /api/tutor/stats
func (h *tutorHandler) Stats(ctx *fiber.Ctx) error {
	return response.NewSuccess(domain.TUTOR_STATS_SUCCESS, h.usecase.Stats(), nil).Send(ctx)
}

// DELETE /api/tutor/history/:session_id
func (h *tutorHandler) ClearHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.TUTOR_HISTORY_CLEAR_SUCCESS, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	h.usecase.ClearHistory(sessionID)

	return response.NewSuccess(domain.TUTOR_HISTORY_CLEAR_SUCCESS, nil, nil).Send(ctx)
}

// GET /api/comparison
func (h *tutorHandler) Comparison(ctx *fiber.Ctx) error {
	return response.NewSuccess(domain.COMPARISON_SUCCESS, usecase.Comparison(), nil).Send(ctx)
}

// GET /health
func (h *tutorHandler) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(entity.HealthResponse{
		Status:    "EduVoice AI Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Features:  []string{"ASR", "TTS", "LLM", "Quiz", "Multi-Voice"},
	})
}
