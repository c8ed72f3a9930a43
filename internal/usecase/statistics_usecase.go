package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bid-match/internal/domain/dictionary"
	"bid-match/internal/domain/jdspec"
	"bid-match/internal/domain/skillname"
	"bid-match/internal/repository"

	"go.uber.org/zap"
)

const (
	SortByFrequency = "frequency"
	SortByName      = "name"

	SortAsc  = "asc"
	SortDesc = "desc"
)

type StatisticsParams struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	SortBy    string
	SortOrder string
}

// SkillUsage is one row of the usage report: a canonical skill (or a still
// unknown normalized name) with its occurrence counts.
type SkillUsage struct {
	SkillName   string           `json:"skill_name"`
	Category    jdspec.TechLayer `json:"category"`
	Frequency   int              `json:"frequency"`
	JDCount     int              `json:"jd_count"`
	ResumeCount int              `json:"resume_count"`
}

// StatisticsResult is always returned, never an error: the statistics
// surface is best-effort and a failure comes back as Success=false with a
// human-readable message.
type StatisticsResult struct {
	Success           bool         `json:"success"`
	Message           string       `json:"message,omitempty"`
	DictionaryVersion string       `json:"dictionary_version,omitempty"`
	GeneratedAt       time.Time    `json:"generated_at"`
	Total             int          `json:"total"`
	Skills            []SkillUsage `json:"skills"`
}

type StatisticsUsecase interface {
	UsageStatistics(ctx context.Context, params StatisticsParams) StatisticsResult
}

type Statistics struct {
	specs        repository.JDSpecRepository
	resumes      repository.ResumeRepository
	dictionaries repository.DictionaryRepository
	cache        StatsCache
	logger       *zap.Logger
}

func NewStatisticsUsecase(
	specs repository.JDSpecRepository,
	resumes repository.ResumeRepository,
	dictionaries repository.DictionaryRepository,
	statsCache StatsCache,
	logger *zap.Logger,
) *Statistics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Statistics{specs: specs, resumes: resumes, dictionaries: dictionaries, cache: statsCache, logger: logger}
}

// UsageStatistics aggregates skill occurrences across stored JD profiles and
// resumes, grouped by canonical dictionary form.
func (u *Statistics) UsageStatistics(ctx context.Context, params StatisticsParams) StatisticsResult {
	params, err := normalizeParams(params)
	if err != nil {
		return failure(err.Error())
	}

	key := statisticsCacheKey(params)
	if u.cache != nil {
		var cached StatisticsResult
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			return cached
		}
	}

	result, err := u.compute(ctx, params)
	if err != nil {
		u.logger.Warn("usage statistics unavailable", zap.Error(err))
		return failure("usage statistics are temporarily unavailable")
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, result, 0)
	}
	return result
}

func (u *Statistics) compute(ctx context.Context, params StatisticsParams) (StatisticsResult, error) {
	dict, _, err := u.dictionaries.GetCurrent(ctx)
	if err != nil {
		return StatisticsResult{}, fmt.Errorf("load dictionary: %w", err)
	}
	specs, err := u.specs.FindAll(ctx)
	if err != nil {
		return StatisticsResult{}, fmt.Errorf("load jd specs: %w", err)
	}
	resumes, err := u.resumes.FindAll(ctx)
	if err != nil {
		return StatisticsResult{}, fmt.Errorf("load resumes: %w", err)
	}

	usage := make(map[string]*SkillUsage)
	record := func(key string, category jdspec.TechLayer, fromResume bool) {
		row, ok := usage[key]
		if !ok {
			row = &SkillUsage{SkillName: key, Category: category}
			usage[key] = row
		}
		row.Frequency++
		if fromResume {
			row.ResumeCount++
		} else {
			row.JDCount++
		}
	}

	categoryFilter := jdspec.TechLayer(params.Category)

	for _, spec := range specs {
		if !inRange(spec.CreatedAt(), params.StartDate, params.EndDate) {
			continue
		}
		for _, layer := range jdspec.Layers() {
			for _, s := range spec.SkillsForLayer(layer) {
				key, category := resolveUsage(dict, s.Name, layer)
				if params.Category != "" && category != categoryFilter {
					continue
				}
				record(key, category, false)
			}
		}
	}

	for _, r := range resumes {
		if !inRange(r.CreatedAt, params.StartDate, params.EndDate) {
			continue
		}
		for _, name := range r.Skills {
			key, category := resolveUsage(dict, name, jdspec.LayerOthers)
			if params.Category != "" && category != categoryFilter {
				continue
			}
			record(key, category, true)
		}
	}

	rows := make([]SkillUsage, 0, len(usage))
	for _, row := range usage {
		rows = append(rows, *row)
	}
	sortUsage(rows, params.SortBy, params.SortOrder)

	return StatisticsResult{
		Success:           true,
		DictionaryVersion: dict.Version(),
		GeneratedAt:       time.Now().UTC(),
		Total:             len(rows),
		Skills:            rows,
	}, nil
}

// resolveUsage maps one observed skill name to its reporting key and
// category. Known names report under their canonical form and dictionary
// category; unknown ones under their normalized form and the layer they
// were observed in.
func resolveUsage(dict *dictionary.Dictionary, name string, observedIn jdspec.TechLayer) (string, jdspec.TechLayer) {
	if canon, ok := dict.MapToCanonical(name); ok {
		if s, found := dict.CanonicalSkill(canon); found {
			return canon, s.Category
		}
		return canon, observedIn
	}
	return skillname.Normalize(name), observedIn
}

func inRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

func sortUsage(rows []SkillUsage, sortBy, sortOrder string) {
	asc := sortOrder == SortAsc
	sort.SliceStable(rows, func(i, j int) bool {
		switch sortBy {
		case SortByName:
			if asc {
				return rows[i].SkillName < rows[j].SkillName
			}
			return rows[i].SkillName > rows[j].SkillName
		default:
			if rows[i].Frequency != rows[j].Frequency {
				if asc {
					return rows[i].Frequency < rows[j].Frequency
				}
				return rows[i].Frequency > rows[j].Frequency
			}
			return rows[i].SkillName < rows[j].SkillName
		}
	})
}

func normalizeParams(p StatisticsParams) (StatisticsParams, error) {
	if p.Category != "" && !jdspec.IsValidLayer(jdspec.TechLayer(p.Category)) {
		return p, fmt.Errorf("unknown category %q", p.Category)
	}
	switch p.SortBy {
	case "":
		p.SortBy = SortByFrequency
	case SortByFrequency, SortByName:
	default:
		return p, fmt.Errorf("unknown sort field %q", p.SortBy)
	}
	switch p.SortOrder {
	case "":
		if p.SortBy == SortByName {
			p.SortOrder = SortAsc
		} else {
			p.SortOrder = SortDesc
		}
	case SortAsc, SortDesc:
	default:
		return p, fmt.Errorf("unknown sort order %q", p.SortOrder)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return p, fmt.Errorf("end date precedes start date")
	}
	return p, nil
}

func failure(msg string) StatisticsResult {
	return StatisticsResult{
		Success:     false,
		Message:     msg,
		GeneratedAt: time.Now().UTC(),
		Skills:      []SkillUsage{},
	}
}
