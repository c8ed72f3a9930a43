package correlation

import (
	"testing"

	"bid-match/internal/domain/jdspec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSpec(t *testing.T, weights jdspec.LayerWeights, skills jdspec.LayerSkills) *jdspec.Spec {
	t.Helper()
	filled := make(jdspec.LayerSkills, 6)
	for _, l := range jdspec.Layers() {
		if s, ok := skills[l]; ok {
			filled[l] = s
		} else {
			filled[l] = []jdspec.SkillWeight{}
		}
	}
	spec, err := jdspec.New(jdspec.Input{
		Role:              "test role",
		LayerWeights:      weights,
		Skills:            filled,
		DictionaryVersion: "2024.1",
	})
	require.NoError(t, err)
	return spec
}

func evenWeights() jdspec.LayerWeights {
	w := make(jdspec.LayerWeights, 6)
	for _, l := range jdspec.Layers() {
		w[l] = 1.0 / 6.0
	}
	return w
}

func TestCalculate_IdenticalProfilesScoreOne(t *testing.T) {
	skills := jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 1.0}},
		jdspec.LayerBackend:  {{Name: "go", Weight: 1.0}},
		jdspec.LayerDatabase: {{Name: "postgresql", Weight: 1.0}},
		jdspec.LayerCloud:    {{Name: "aws", Weight: 1.0}},
		jdspec.LayerDevops:   {{Name: "docker", Weight: 1.0}},
		jdspec.LayerOthers:   {{Name: "git", Weight: 1.0}},
	}
	current := buildSpec(t, evenWeights(), skills)
	past := buildSpec(t, evenWeights(), skills)

	res := Calculate(current, past)
	assert.InDelta(t, 1.0, res.OverallScore, 0.001)
	for _, l := range jdspec.Layers() {
		lr := res.LayerBreakdown[l]
		assert.InDelta(t, 1.0, lr.Score, 0.001, "layer %s", l)
		assert.Len(t, lr.MatchingSkills, 1)
		assert.Empty(t, lr.MissingSkills)
	}
	assert.Equal(t, "2024.1", res.CurrentDictionaryVersion)
	assert.Equal(t, "2024.1", res.PastDictionaryVersion)
}

func TestCalculate_DisjointSkillsScoreZero(t *testing.T) {
	frontendOnly := jdspec.LayerWeights{
		jdspec.LayerFrontend: 1.0,
		jdspec.LayerBackend:  0,
		jdspec.LayerDatabase: 0,
		jdspec.LayerCloud:    0,
		jdspec.LayerDevops:   0,
		jdspec.LayerOthers:   0,
	}
	current := buildSpec(t, frontendOnly, jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 1.0}},
	})
	past := buildSpec(t, frontendOnly, jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "vue", Weight: 1.0}},
	})

	res := Calculate(current, past)
	assert.Equal(t, 0.0, res.OverallScore)
	fe := res.LayerBreakdown[jdspec.LayerFrontend]
	assert.Equal(t, 0.0, fe.Score)
	assert.Empty(t, fe.MatchingSkills)
	assert.Equal(t, []string{"react"}, fe.MissingSkills)
}

func TestCalculate_WeightedPartialOverlap(t *testing.T) {
	weights := jdspec.LayerWeights{
		jdspec.LayerFrontend: 0.5,
		jdspec.LayerBackend:  0.3,
		jdspec.LayerDatabase: 0.1,
		jdspec.LayerCloud:    0.1,
		jdspec.LayerDevops:   0,
		jdspec.LayerOthers:   0,
	}
	current := buildSpec(t, weights, jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 0.6}, {Name: "typescript", Weight: 0.4}},
		jdspec.LayerBackend:  {{Name: "nodejs", Weight: 1.0}},
		jdspec.LayerDatabase: {{Name: "postgresql", Weight: 1.0}},
	})
	past := buildSpec(t, weights, jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 0.7}, {Name: "vue", Weight: 0.3}},
		jdspec.LayerBackend:  {{Name: "nodejs", Weight: 1.0}},
	})

	res := Calculate(current, past)
	// frontend: 0.6*0.7 = 0.42; backend: 1.0*1.0 = 1.0; database: postgresql missing.
	assert.InDelta(t, 0.42, res.LayerBreakdown[jdspec.LayerFrontend].Score, 1e-4)
	assert.InDelta(t, 1.0, res.LayerBreakdown[jdspec.LayerBackend].Score, 1e-4)
	assert.Equal(t, 0.0, res.LayerBreakdown[jdspec.LayerDatabase].Score)
	// overall: 0.42*0.5 + 1.0*0.3 + 0*0.1 = 0.51
	assert.InDelta(t, 0.51, res.OverallScore, 1e-4)

	fe := res.LayerBreakdown[jdspec.LayerFrontend]
	assert.Equal(t, []string{"react"}, fe.MatchingSkills)
	assert.Equal(t, []string{"typescript"}, fe.MissingSkills)
}

func TestCalculate_EmptyLayers(t *testing.T) {
	current := buildSpec(t, evenWeights(), jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 1.0}},
	})
	past := buildSpec(t, evenWeights(), jdspec.LayerSkills{})

	res := Calculate(current, past)

	// Current has skills, past layer empty: score 0, everything missing.
	fe := res.LayerBreakdown[jdspec.LayerFrontend]
	assert.Equal(t, 0.0, fe.Score)
	assert.Equal(t, []string{"react"}, fe.MissingSkills)

	// Current layer empty: score 0 with empty lists, no penalty.
	be := res.LayerBreakdown[jdspec.LayerBackend]
	assert.Equal(t, 0.0, be.Score)
	assert.Empty(t, be.MatchingSkills)
	assert.Empty(t, be.MissingSkills)
}

func TestCalculate_ZeroWeightLayerContributesNothing(t *testing.T) {
	weights := jdspec.LayerWeights{
		jdspec.LayerFrontend: 1.0,
		jdspec.LayerBackend:  0,
		jdspec.LayerDatabase: 0,
		jdspec.LayerCloud:    0,
		jdspec.LayerDevops:   0,
		jdspec.LayerOthers:   0,
	}
	current := buildSpec(t, weights, jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 1.0}},
		jdspec.LayerBackend:  {{Name: "go", Weight: 1.0}},
	})
	past := buildSpec(t, weights, jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 1.0}},
		jdspec.LayerBackend:  {{Name: "go", Weight: 1.0}},
	})

	res := Calculate(current, past)
	assert.InDelta(t, 1.0, res.LayerBreakdown[jdspec.LayerBackend].Score, 1e-9)
	assert.InDelta(t, 1.0, res.OverallScore, 1e-9)
}

func TestCalculate_LayerWeightComesFromCurrent(t *testing.T) {
	currentWeights := jdspec.LayerWeights{
		jdspec.LayerFrontend: 0.9,
		jdspec.LayerBackend:  0.1,
		jdspec.LayerDatabase: 0,
		jdspec.LayerCloud:    0,
		jdspec.LayerDevops:   0,
		jdspec.LayerOthers:   0,
	}
	pastWeights := jdspec.LayerWeights{
		jdspec.LayerFrontend: 0.1,
		jdspec.LayerBackend:  0.9,
		jdspec.LayerDatabase: 0,
		jdspec.LayerCloud:    0,
		jdspec.LayerDevops:   0,
		jdspec.LayerOthers:   0,
	}
	skills := jdspec.LayerSkills{jdspec.LayerFrontend: {{Name: "react", Weight: 1.0}}}
	current := buildSpec(t, currentWeights, skills)
	past := buildSpec(t, pastWeights, skills)

	res := Calculate(current, past)
	assert.InDelta(t, 0.9, res.LayerBreakdown[jdspec.LayerFrontend].LayerWeight, 1e-9)
	assert.InDelta(t, 0.9, res.OverallScore, 1e-9)

	// And the reverse direction differs: the formula is not symmetric.
	rev := Calculate(past, current)
	assert.InDelta(t, 0.1, rev.OverallScore, 1e-9)
}

func TestCalculate_Deterministic(t *testing.T) {
	current := buildSpec(t, evenWeights(), jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 0.3}, {Name: "vue", Weight: 0.3}, {Name: "svelte", Weight: 0.4}},
		jdspec.LayerBackend:  {{Name: "go", Weight: 0.5}, {Name: "rust", Weight: 0.5}},
	})
	past := buildSpec(t, evenWeights(), jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "vue", Weight: 0.55}, {Name: "react", Weight: 0.45}},
		jdspec.LayerBackend:  {{Name: "go", Weight: 1.0}},
	})

	first := Calculate(current, past)
	for i := 0; i < 20; i++ {
		again := Calculate(current, past)
		require.Equal(t, first.OverallScore, again.OverallScore)
		for _, l := range jdspec.Layers() {
			require.Equal(t, first.LayerBreakdown[l].Score, again.LayerBreakdown[l].Score)
			require.Equal(t, first.LayerBreakdown[l].MatchingSkills, again.LayerBreakdown[l].MatchingSkills)
			require.Equal(t, first.LayerBreakdown[l].MissingSkills, again.LayerBreakdown[l].MissingSkills)
		}
	}
}

func TestCalculate_FormulaConsistency(t *testing.T) {
	current := buildSpec(t, evenWeights(), jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 0.25}, {Name: "vue", Weight: 0.75}},
		jdspec.LayerDatabase: {{Name: "postgresql", Weight: 0.5}, {Name: "mongodb", Weight: 0.5}},
	})
	past := buildSpec(t, evenWeights(), jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 1.0}},
		jdspec.LayerDatabase: {{Name: "mongodb", Weight: 0.4}, {Name: "postgresql", Weight: 0.6}},
	})

	res := Calculate(current, past)
	sum := 0.0
	for _, l := range jdspec.Layers() {
		lr := res.LayerBreakdown[l]
		assert.GreaterOrEqual(t, lr.Score, 0.0)
		assert.LessOrEqual(t, lr.Score, 1.0)
		sum += lr.Score * lr.LayerWeight

		// matching ∪ missing covers the current layer exactly.
		total := len(lr.MatchingSkills) + len(lr.MissingSkills)
		assert.Equal(t, len(current.SkillsForLayer(l)), total, "layer %s", l)
	}
	assert.InDelta(t, sum, res.OverallScore, 1e-4)
}
