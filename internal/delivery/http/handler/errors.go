package handler

import (
	"errors"

	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError converts usecase sentinels into AppErrors carrying the
// right HTTP status. Validation and not-found messages are forwarded so the
// caller sees what was wrong; everything else collapses to 500.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrJDSpecNotFound),
		errors.Is(err, usecase.ErrCurrentJDNotFound),
		errors.Is(err, usecase.ErrPastJDNotFound),
		errors.Is(err, usecase.ErrBidNotFound),
		errors.Is(err, usecase.ErrCurrentBidNotFound),
		errors.Is(err, usecase.ErrPastBidNotFound),
		errors.Is(err, usecase.ErrResumeNotFound),
		errors.Is(err, usecase.ErrSkillNotFound),
		errors.Is(err, usecase.ErrQueueItemNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrDuplicate),
		errors.Is(err, usecase.ErrAlreadyProcessed),
		errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
