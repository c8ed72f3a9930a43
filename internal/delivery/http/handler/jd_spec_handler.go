package handler

import (
	"strings"

	"bid-match/internal/delivery/http/dto"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JDSpecHandler struct {
	uc usecase.JDSpecUsecase
}

func NewJDSpecHandler(uc usecase.JDSpecUsecase) *JDSpecHandler {
	return &JDSpecHandler{uc: uc}
}

func (h *JDSpecHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jd-specs")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *JDSpecHandler) Create(c fiber.Ctx) error {
	var req dto.JDSpecRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	spec, err := h.uc.Create(c.Context(), toJDSpecInput(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "JD spec created", spec)
}

func (h *JDSpecHandler) List(c fiber.Ctx) error {
	specs, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, specs)
}

func (h *JDSpecHandler) Get(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing id", nil, nil)
	}

	spec, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, spec)
}

func (h *JDSpecHandler) Update(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing id", nil, nil)
	}

	var req dto.JDSpecRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	spec, err := h.uc.Update(c.Context(), id, toJDSpecInput(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "JD spec updated", spec)
}

func (h *JDSpecHandler) Delete(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing id", nil, nil)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "JD spec deleted", nil)
}

func toJDSpecInput(req dto.JDSpecRequest) usecase.JDSpecInput {
	in := usecase.JDSpecInput{
		Role:         req.Role,
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
	return in
}
