package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"bid-match/internal/domain/jdspec"
	"bid-match/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsFixture(t *testing.T) (*Statistics, *memSpecRepo, *memResumeRepo, *memCache) {
	t.Helper()
	specs := newMemSpecRepo()
	resumes := newMemResumeRepo()
	statsCache := newMemCache()
	uc := NewStatisticsUsecase(specs, resumes, newMemDictRepo(seededDict(t)), statsCache, nil)
	return uc, specs, resumes, statsCache
}

func TestStatistics_GroupsVariationsUnderCanonical(t *testing.T) {
	uc, specs, resumes, _ := newStatsFixture(t)

	skills := emptyLayerSkills()
	skills[jdspec.LayerFrontend] = []jdspec.SkillWeight{{Name: "react", Weight: 1.0}}
	storedSpec(t, specs, "jd-1", skills)

	require.NoError(t, resumes.Save(context.Background(), repository.Resume{
		ID:        "r-1",
		Name:      "Jo",
		Skills:    []string{"ReactJS", "Cobol"},
		CreatedAt: time.Now().UTC(),
	}))

	res := uc.UsageStatistics(context.Background(), StatisticsParams{})
	require.True(t, res.Success)
	require.Equal(t, 2, res.Total)

	assert.Equal(t, "react", res.Skills[0].SkillName)
	assert.Equal(t, jdspec.LayerFrontend, res.Skills[0].Category)
	assert.Equal(t, 2, res.Skills[0].Frequency)
	assert.Equal(t, 1, res.Skills[0].JDCount)
	assert.Equal(t, 1, res.Skills[0].ResumeCount)

	assert.Equal(t, "cobol", res.Skills[1].SkillName)
	assert.Equal(t, jdspec.LayerOthers, res.Skills[1].Category)
}

func TestStatistics_CategoryFilter(t *testing.T) {
	uc, specs, _, _ := newStatsFixture(t)

	skills := emptyLayerSkills()
	skills[jdspec.LayerFrontend] = []jdspec.SkillWeight{{Name: "react", Weight: 1.0}}
	skills[jdspec.LayerBackend] = []jdspec.SkillWeight{{Name: "golang", Weight: 1.0}}
	storedSpec(t, specs, "jd-1", skills)

	res := uc.UsageStatistics(context.Background(), StatisticsParams{Category: "backend"})
	require.True(t, res.Success)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "golang", res.Skills[0].SkillName)
}

func TestStatistics_SortByNameDesc(t *testing.T) {
	uc, specs, _, _ := newStatsFixture(t)

	skills := emptyLayerSkills()
	skills[jdspec.LayerBackend] = []jdspec.SkillWeight{
		{Name: "golang", Weight: 0.5},
		{Name: "zig", Weight: 0.3},
		{Name: "ada", Weight: 0.2},
	}
	storedSpec(t, specs, "jd-1", skills)

	res := uc.UsageStatistics(context.Background(), StatisticsParams{SortBy: "name", SortOrder: "desc"})
	require.True(t, res.Success)
	require.Equal(t, 3, res.Total)
	assert.Equal(t, "zig", res.Skills[0].SkillName)
	assert.Equal(t, "ada", res.Skills[2].SkillName)
}

func TestStatistics_DateRange(t *testing.T) {
	uc, _, resumes, _ := newStatsFixture(t)

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, resumes.Save(context.Background(), repository.Resume{ID: "r-old", Name: "Old", Skills: []string{"cobol"}, CreatedAt: old}))
	require.NoError(t, resumes.Save(context.Background(), repository.Resume{ID: "r-new", Name: "New", Skills: []string{"golang"}, CreatedAt: recent}))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	res := uc.UsageStatistics(context.Background(), StatisticsParams{StartDate: &start})
	require.True(t, res.Success)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "golang", res.Skills[0].SkillName)
}

func TestStatistics_InvalidParams(t *testing.T) {
	uc, _, _, _ := newStatsFixture(t)

	res := uc.UsageStatistics(context.Background(), StatisticsParams{Category: "middleware"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "middleware")

	res = uc.UsageStatistics(context.Background(), StatisticsParams{SortBy: "popularity"})
	assert.False(t, res.Success)
}

func TestStatistics_BackendFailureDegrades(t *testing.T) {
	uc, specs, _, _ := newStatsFixture(t)
	specs.err = errors.New("connection refused")

	res := uc.UsageStatistics(context.Background(), StatisticsParams{})
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.NotContains(t, res.Message, "connection refused", "backend detail must not leak")
}

func TestStatistics_CachesResults(t *testing.T) {
	uc, specs, _, statsCache := newStatsFixture(t)

	skills := emptyLayerSkills()
	skills[jdspec.LayerBackend] = []jdspec.SkillWeight{{Name: "golang", Weight: 1.0}}
	storedSpec(t, specs, "jd-1", skills)

	first := uc.UsageStatistics(context.Background(), StatisticsParams{})
	require.True(t, first.Success)
	require.Len(t, statsCache.entries, 1)

	// A second identical query is served from cache even after the store
	// breaks.
	specs.err = errors.New("down")
	second := uc.UsageStatistics(context.Background(), StatisticsParams{})
	require.True(t, second.Success)
	assert.Equal(t, first.Total, second.Total)
}
