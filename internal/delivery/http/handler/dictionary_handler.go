package handler

import (
	"strings"

	"bid-match/internal/delivery/http/dto"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DictionaryHandler struct {
	uc usecase.DictionaryUsecase
}

func NewDictionaryHandler(uc usecase.DictionaryUsecase) *DictionaryHandler {
	return &DictionaryHandler{uc: uc}
}

func (h *DictionaryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/dictionary")
	grp.Get("/skills", h.ListSkills)
	grp.Post("/skills", h.AddSkill)
	grp.Delete("/skills/:name", h.RemoveSkill)
	grp.Patch("/skills/:name", h.RenameSkill)
	grp.Get("/skills/:name/variations", h.Variations)
	grp.Post("/variations", h.AddVariation)
	grp.Get("/version", h.Version)
	grp.Get("/versions", h.AllVersions)
}

func (h *DictionaryHandler) ListSkills(c fiber.Ctx) error {
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		skills, err := h.uc.ListByCategory(c.Context(), category)
		if err != nil {
			return mapUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, skills)
	}

	skills, version, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"version": version,
		"skills":  skills,
	})
}

func (h *DictionaryHandler) AddSkill(c fiber.Ctx) error {
	var req dto.AddSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	version, err := h.uc.AddSkill(c.Context(), req.Name, req.Category)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "skill added", fiber.Map{"version": version})
}

func (h *DictionaryHandler) RemoveSkill(c fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing skill name", nil, nil)
	}

	version, err := h.uc.RemoveSkill(c.Context(), name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill removed", fiber.Map{"version": version})
}

func (h *DictionaryHandler) RenameSkill(c fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing skill name", nil, nil)
	}

	var req dto.RenameSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	version, err := h.uc.RenameSkill(c.Context(), name, req.NewName)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill renamed", fiber.Map{"version": version})
}

func (h *DictionaryHandler) Variations(c fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing skill name", nil, nil)
	}

	variations, err := h.uc.VariationsFor(c.Context(), name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, variations)
}

func (h *DictionaryHandler) AddVariation(c fiber.Ctx) error {
	var req dto.AddVariationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	version, err := h.uc.AddVariation(c.Context(), req.Variation, req.CanonicalName)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "variation added", fiber.Map{"version": version})
}

func (h *DictionaryHandler) Version(c fiber.Ctx) error {
	version, err := h.uc.Version(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"version": version})
}

func (h *DictionaryHandler) AllVersions(c fiber.Ctx) error {
	versions, err := h.uc.AllVersions(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, versions)
}
