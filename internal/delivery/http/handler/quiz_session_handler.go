package handler

import (
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/domain"
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/entity"
	"github.com/eduvoice/eduvoice-be/internal/delivery/http/usecase"
	"github.com/eduvoice/eduvoice-be/internal/pkg/response"
	"github.com/eduvoice/eduvoice-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	QuizSessionHandler interface {
		Start(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		SubmitAnswer(ctx *fiber.Ctx) error
		Restart(ctx *fiber.Ctx) error
		Close(ctx *fiber.Ctx) error
	}

	quizSessionHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.QuizSessionUsecase
	}
)

func NewQuizSessionHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.QuizSessionUsecase) QuizSessionHandler {
	return &quizSessionHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /api/quiz/sessions
func (h *quizSessionHandler) Start(ctx *fiber.Ctx) error {
	var req entity.StartQuizRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUIZ_SESSION_START_FAILED, err, h.logger).Send(ctx)
	}

	view, err := h.usecase.Start(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.QUIZ_SESSION_START_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.QUIZ_SESSION_START_SUCCESS, view, nil).Send(ctx)
}

// GET /api/quiz/sessions/:session_id
func (h *quizSessionHandler) Get(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.QUIZ_SESSION_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	view, err := h.usecase.Get(sessionID)
	if err != nil {
		return response.NewFailed(domain.QUIZ_SESSION_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.QUIZ_SESSION_GET_SUCCESS, view, nil).Send(ctx)
}

// POST /api/quiz/sessions/:session_id/answer
func (h *quizSessionHandler) SubmitAnswer(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.QUIZ_SESSION_ANSWER_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	var req entity.SubmitQuizAnswerRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUIZ_SESSION_ANSWER_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.SubmitAnswer(ctx.UserContext(), sessionID, req.Answer)
	if err != nil {
		return response.NewFailed(domain.QUIZ_SESSION_ANSWER_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.QUIZ_SESSION_ANSWER_SUCCESS, result, nil).Send(ctx)
}

// POST /api/quiz/sessions/:session_id/restart
func (h *quizSessionHandler) Restart(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.QUIZ_SESSION_RESTART_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	view, err := h.usecase.Restart(sessionID)
	if err != nil {
		return response.NewFailed(domain.QUIZ_SESSION_RESTART_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.QUIZ_SESSION_RESTART_SUCCESS, view, nil).Send(ctx)
}

// DELETE /api/quiz/sessions/:session_id
func (h *quizSessionHandler) Close(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.QUIZ_SESSION_CLOSE_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	if err := h.usecase.Close(sessionID); err != nil {
		return response.NewFailed(domain.QUIZ_SESSION_CLOSE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.QUIZ_SESSION_CLOSE_SUCCESS, nil, nil).Send(ctx)
}
