package handler

import (
	"strings"
	"time"

	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StatisticsHandler struct {
	uc usecase.StatisticsUsecase
}

func NewStatisticsHandler(uc usecase.StatisticsUsecase) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

func (h *StatisticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/statistics")
	grp.Get("/skills", h.SkillUsage)
}

// SkillUsage always answers 200: the report inside carries its own success
// flag so a broken backing store degrades instead of erroring.
func (h *StatisticsHandler) SkillUsage(c fiber.Ctx) error {
	params := usecase.StatisticsParams{
		Category:  strings.TrimSpace(c.Query("category")),
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: strings.TrimSpace(c.Query("sort_order")),
	}

	start, err := parseDateParam(c.Query("start_date"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid start_date", nil, err)
	}
	end, err := parseDateParam(c.Query("end_date"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid end_date", nil, err)
	}
	if end != nil && isBareDate(c.Query("end_date")) {
		e := end.Add(24*time.Hour - time.Nanosecond)
		end = &e
	}
	params.StartDate = start
	params.EndDate = end

	result := h.uc.UsageStatistics(c.Context(), params)
	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

// parseDateParam accepts a date (2006-01-02) or a full RFC3339 timestamp.
func parseDateParam(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

// isBareDate reports whether the raw value carried no time component, in
// which case an end date is stretched to cover its whole day.
func isBareDate(raw string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	return err == nil
}
