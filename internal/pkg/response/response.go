package response

import (
	"github.com/eduvoice/eduvoice-be/internal/pkg/apperr"
	"github.com/eduvoice/eduvoice-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"

	"github.com/sirupsen/logrus"
)

type Response struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      any    `json:"error,omitempty"`
	Details    any    `json:"details,omitempty"`
	Data       any    `json:"data,omitempty"`
	Meta       any    `json:"meta,omitempty"`
}

func NewInternalServerError() *Response {
	res := &Response{
		Success:    false,
		Message:    "Internal Server Error",
		StatusCode: fiber.StatusInternalServerError,
	}
	return res
}

func NewFailed(msg string, err error, logger *logrus.Logger) *Response {
	res := &Response{
		Success:    false,
		Message:    msg,
		StatusCode: fiber.StatusInternalServerError,
	}

	switch e := err.(type) {
	case *fiber.Error:
		res.StatusCode = e.Code
		if e.Message != "" {
			res.Error = e.Message
		}
	case *validate.FieldsError:
		res.StatusCode = fiber.StatusBadRequest
		res.Error = e.Fields
	case *apperr.UpstreamError:
		res.StatusCode = fiber.StatusBadGateway
		res.Error = e.Message
		res.Details = e.Detail
	case *apperr.MalformedResponseError:
		res.StatusCode = fiber.StatusInternalServerError
		res.Error = e.Message
	}

	if logger != nil && res.StatusCode >= fiber.StatusInternalServerError {
		logger.Error(err)
	}

	return res
}

func NewSuccess(msg string, data any, meta any) *Response {
	res := &Response{
		Success:    true,
		Message:    msg,
		StatusCode: fiber.StatusOK,
		Data:       data,
		Meta:       meta,
	}

	return res
}

func (r *Response) Send(ctx *fiber.Ctx) error {
	return ctx.Status(r.StatusCode).JSON(r)
}
