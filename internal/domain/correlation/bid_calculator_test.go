package correlation

import (
	"testing"

	"bid-match/internal/domain/bid"
	"bid-match/internal/domain/jdspec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBid(t *testing.T, title string, skills jdspec.LayerSkills) *bid.Bid {
	t.Helper()
	filled := make(jdspec.LayerSkills, 6)
	for _, l := range jdspec.Layers() {
		if s, ok := skills[l]; ok {
			filled[l] = s
		} else {
			filled[l] = []jdspec.SkillWeight{}
		}
	}
	weights := make(jdspec.LayerWeights, 6)
	for _, l := range jdspec.Layers() {
		weights[l] = 1.0 / 6.0
	}
	b, err := bid.New(bid.Input{Title: title, Company: "Acme", LayerWeights: weights, Skills: filled})
	require.NoError(t, err)
	return b
}

func TestCalculateBidMatch_CaseInsensitive(t *testing.T) {
	current := buildBid(t, "Bid A", jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "React", Weight: 0.5}, {Name: "TypeScript", Weight: 0.5}},
	})
	past := buildBid(t, "Bid B", jdspec.LayerSkills{
		jdspec.LayerFrontend: {{Name: "react", Weight: 0.6}, {Name: "typescript", Weight: 0.4}},
	})

	res := CalculateBidMatch(current, past)
	fe := res.LayerBreakdown[jdspec.LayerFrontend]
	// 0.5*0.6 + 0.5*0.4 = 0.5, despite the case mismatch.
	assert.InDelta(t, 0.5, fe.Score, 1e-9)
	assert.Equal(t, []string{"React", "TypeScript"}, fe.MatchingSkills)
	assert.Empty(t, fe.MissingSkills)
}

func TestCalculateBidMatch_MissingAndOverall(t *testing.T) {
	current := buildBid(t, "Bid A", jdspec.LayerSkills{
		jdspec.LayerBackend: {{Name: "Go", Weight: 0.7}, {Name: "Kafka", Weight: 0.3}},
	})
	past := buildBid(t, "Bid B", jdspec.LayerSkills{
		jdspec.LayerBackend: {{Name: "go", Weight: 1.0}},
	})

	res := CalculateBidMatch(current, past)
	be := res.LayerBreakdown[jdspec.LayerBackend]
	assert.InDelta(t, 0.7, be.Score, 1e-9)
	assert.Equal(t, []string{"Go"}, be.MatchingSkills)
	assert.Equal(t, []string{"Kafka"}, be.MissingSkills)
	assert.InDelta(t, 0.7/6.0, res.OverallScore, 1e-9)
	assert.Empty(t, res.CurrentDictionaryVersion)
}
