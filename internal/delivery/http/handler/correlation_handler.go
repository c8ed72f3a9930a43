package handler

import (
	"strings"

	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CorrelationHandler struct {
	uc usecase.CorrelationUsecase
}

func NewCorrelationHandler(uc usecase.CorrelationUsecase) *CorrelationHandler {
	return &CorrelationHandler{uc: uc}
}

func (h *CorrelationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/correlations")
	grp.Get("/jd-specs", h.JDCorrelation)
	grp.Get("/bids", h.BidCorrelation)
}

// JDCorrelation scores past against current. The query names the sides
// explicitly because the result is asymmetric.
func (h *CorrelationHandler) JDCorrelation(c fiber.Ctx) error {
	currentID, pastID, err := correlationIDs(c)
	if err != nil {
		return err
	}

	res, err := h.uc.CalculateJD(c.Context(), currentID, pastID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CorrelationHandler) BidCorrelation(c fiber.Ctx) error {
	currentID, pastID, err := correlationIDs(c)
	if err != nil {
		return err
	}

	res, err := h.uc.CalculateBid(c.Context(), currentID, pastID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func correlationIDs(c fiber.Ctx) (string, string, error) {
	currentID := strings.TrimSpace(c.Query("current_id"))
	pastID := strings.TrimSpace(c.Query("past_id"))
	if currentID == "" || pastID == "" {
		return "", "", middleware.NewAppError(fiber.StatusBadRequest, "current_id and past_id are required", nil, nil)
	}
	return currentID, pastID, nil
}
