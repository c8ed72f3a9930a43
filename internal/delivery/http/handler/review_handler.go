package handler

import (
	"strings"

	"bid-match/internal/delivery/http/dto"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/review-queue")
	grp.Get("/", h.List)
	grp.Get("/pending", h.Pending)
	grp.Post("/:name/approve-canonical", h.ApproveCanonical)
	grp.Post("/:name/approve-variation", h.ApproveVariation)
	grp.Post("/:name/reject", h.Reject)
}

func (h *ReviewHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ReviewHandler) Pending(c fiber.Ctx) error {
	items, err := h.uc.Pending(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ReviewHandler) ApproveCanonical(c fiber.Ctx) error {
	name, err := queueItemName(c)
	if err != nil {
		return err
	}

	var req dto.ApproveCanonicalRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	decision, err := h.uc.ApproveAsCanonical(c.Context(), name, req.Category)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill approved as canonical", decision)
}

func (h *ReviewHandler) ApproveVariation(c fiber.Ctx) error {
	name, err := queueItemName(c)
	if err != nil {
		return err
	}

	var req dto.ApproveVariationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	decision, err := h.uc.ApproveAsVariation(c.Context(), name, req.CanonicalName)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill approved as variation", decision)
}

func (h *ReviewHandler) Reject(c fiber.Ctx) error {
	name, err := queueItemName(c)
	if err != nil {
		return err
	}

	var req dto.RejectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	rejection, err := h.uc.Reject(c.Context(), name, req.Reason)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill rejected", rejection)
}

func queueItemName(c fiber.Ctx) (string, error) {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return "", middleware.NewAppError(fiber.StatusBadRequest, "missing skill name", nil, nil)
	}
	return name, nil
}
