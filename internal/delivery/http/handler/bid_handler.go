package handler

import (
	"strings"

	"bid-match/internal/delivery/http/dto"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BidHandler struct {
	uc usecase.BidUsecase
}

func NewBidHandler(uc usecase.BidUsecase) *BidHandler {
	return &BidHandler{uc: uc}
}

func (h *BidHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/bids")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", h.Delete)
}

func (h *BidHandler) Create(c fiber.Ctx) error {
	var req dto.BidRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	in := usecase.BidInput{
		Title:        req.Title,
		Company:      req.Company,
		LayerWeights: req.LayerWeights,
		Skills:       make(map[string][]usecase.SkillInput, len(req.Skills)),
	}
	for layer, skills := range req.Skills {
		converted := make([]usecase.SkillInput, 0, len(skills))
		for _, s := range skills {
			converted = append(converted, usecase.SkillInput{Name: s.Name, Weight: s.Weight})
		}
		in.Skills[layer] = converted
	}

	b, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "bid created", b)
}

func (h *BidHandler) List(c fiber.Ctx) error {
	bids, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, bids)
}

func (h *BidHandler) Get(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing id", nil, nil)
	}

	b, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, b)
}

func (h *BidHandler) Delete(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing id", nil, nil)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "bid deleted", nil)
}
