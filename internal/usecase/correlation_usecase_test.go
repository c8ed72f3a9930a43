package usecase

import (
	"context"
	"testing"

	"bid-match/internal/domain/bid"
	"bid-match/internal/domain/jdspec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedSpec(t *testing.T, repo *memSpecRepo, id string, skills jdspec.LayerSkills) *jdspec.Spec {
	t.Helper()
	weights := jdspec.LayerWeights{
		jdspec.LayerFrontend: 1, jdspec.LayerBackend: 0, jdspec.LayerDatabase: 0,
		jdspec.LayerCloud: 0, jdspec.LayerDevops: 0, jdspec.LayerOthers: 0,
	}
	spec, err := jdspec.New(jdspec.Input{
		ID:                id,
		Role:              "Engineer",
		LayerWeights:      weights,
		Skills:            skills,
		DictionaryVersion: "2026.1",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), spec))
	return spec
}

func emptyLayerSkills() jdspec.LayerSkills {
	return jdspec.LayerSkills{
		jdspec.LayerFrontend: {}, jdspec.LayerBackend: {}, jdspec.LayerDatabase: {},
		jdspec.LayerCloud: {}, jdspec.LayerDevops: {}, jdspec.LayerOthers: {},
	}
}

func TestCorrelationCalculateJD(t *testing.T) {
	specs := newMemSpecRepo()
	uc := NewCorrelationUsecase(specs, newMemBidRepo())

	skills := emptyLayerSkills()
	skills[jdspec.LayerFrontend] = []jdspec.SkillWeight{
		{Name: "react", Weight: 0.6},
		{Name: "typescript", Weight: 0.4},
	}
	storedSpec(t, specs, "current", skills)

	pastSkills := emptyLayerSkills()
	pastSkills[jdspec.LayerFrontend] = []jdspec.SkillWeight{{Name: "react", Weight: 1.0}}
	storedSpec(t, specs, "past", pastSkills)

	res, err := uc.CalculateJD(context.Background(), "current", "past")
	require.NoError(t, err)

	assert.InDelta(t, 0.6, res.OverallScore, 1e-9)
	fe := res.LayerBreakdown[jdspec.LayerFrontend]
	assert.Equal(t, []string{"react"}, fe.MatchingSkills)
	assert.Equal(t, []string{"typescript"}, fe.MissingSkills)
}

func TestCorrelationCalculateJD_NotFoundSides(t *testing.T) {
	specs := newMemSpecRepo()
	uc := NewCorrelationUsecase(specs, newMemBidRepo())
	storedSpec(t, specs, "exists", emptyLayerSkills())

	_, err := uc.CalculateJD(context.Background(), "missing", "exists")
	require.ErrorIs(t, err, ErrCurrentJDNotFound)

	_, err = uc.CalculateJD(context.Background(), "exists", "missing")
	require.ErrorIs(t, err, ErrPastJDNotFound)
}

func TestCorrelationCalculateBid(t *testing.T) {
	bids := newMemBidRepo()
	uc := NewCorrelationUsecase(newMemSpecRepo(), bids)

	weights := jdspec.LayerWeights{
		jdspec.LayerFrontend: 1, jdspec.LayerBackend: 0, jdspec.LayerDatabase: 0,
		jdspec.LayerCloud: 0, jdspec.LayerDevops: 0, jdspec.LayerOthers: 0,
	}
	currentSkills := emptyLayerSkills()
	currentSkills[jdspec.LayerFrontend] = []jdspec.SkillWeight{{Name: "React", Weight: 1.0}}
	current, err := bid.New(bid.Input{ID: "b1", Title: "Bid one", LayerWeights: weights, Skills: currentSkills})
	require.NoError(t, err)
	require.NoError(t, bids.Save(context.Background(), current))

	pastSkills := emptyLayerSkills()
	pastSkills[jdspec.LayerFrontend] = []jdspec.SkillWeight{{Name: "react", Weight: 1.0}}
	past, err := bid.New(bid.Input{ID: "b2", Title: "Bid two", LayerWeights: weights, Skills: pastSkills})
	require.NoError(t, err)
	require.NoError(t, bids.Save(context.Background(), past))

	res, err := uc.CalculateBid(context.Background(), "b1", "b2")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.OverallScore, 1e-9)

	_, err = uc.CalculateBid(context.Background(), "nope", "b2")
	require.ErrorIs(t, err, ErrCurrentBidNotFound)
	_, err = uc.CalculateBid(context.Background(), "b1", "nope")
	require.ErrorIs(t, err, ErrPastBidNotFound)
}
