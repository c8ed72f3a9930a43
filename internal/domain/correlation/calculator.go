// Package correlation computes weighted skill-overlap scores between two
// six-layer profiles, with an explainable per-layer breakdown.
package correlation

import (
	"bid-match/internal/domain/jdspec"
)

// Result is the full correlation outcome. It is recomputed on every query
// and never persisted.
type Result struct {
	OverallScore             float64                          `json:"overall_score"`
	LayerBreakdown           map[jdspec.TechLayer]LayerResult `json:"layer_breakdown"`
	CurrentDictionaryVersion string                           `json:"current_dictionary_version,omitempty"`
	PastDictionaryVersion    string                           `json:"past_dictionary_version,omitempty"`
}

// LayerResult explains one layer's score. MatchingSkills and MissingSkills
// partition the current profile's skill identifiers for the layer;
// LayerWeight is always the current profile's weight for it.
type LayerResult struct {
	Score          float64  `json:"score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	LayerWeight    float64  `json:"layer_weight"`
}

// Calculate scores how well past covers current, layer by layer. Skill
// identifiers are compared by exact equality: both specs are built from
// canonical ids, so no further normalization happens here. The similarity
// function is the binary exact match below; a partial-similarity
// replacement would slot into the same formula.
//
// The result is not symmetric. current supplies both the per-skill weights
// the sum is anchored on and the layer weights the overall score uses.
func Calculate(current, past *jdspec.Spec) Result {
	breakdown := make(map[jdspec.TechLayer]LayerResult, 6)
	overall := 0.0

	for _, layer := range jdspec.Layers() {
		lr := scoreLayer(current.SkillsForLayer(layer), past.SkillsForLayer(layer), identitySimilarity)
		lr.LayerWeight = current.LayerWeight(layer)
		breakdown[layer] = lr
		overall += lr.Score * lr.LayerWeight
	}

	return Result{
		OverallScore:             clampUnit(overall),
		LayerBreakdown:           breakdown,
		CurrentDictionaryVersion: current.DictionaryVersion(),
		PastDictionaryVersion:    past.DictionaryVersion(),
	}
}

// scoreLayer walks the current layer's skills in stored order, so repeated
// runs sum in the same order and produce bit-identical floats.
func scoreLayer(current, past []jdspec.SkillWeight, key func(string) string) LayerResult {
	lr := LayerResult{
		MatchingSkills: make([]string, 0, len(current)),
		MissingSkills:  make([]string, 0),
	}
	if len(current) == 0 {
		return lr
	}
	if len(past) == 0 {
		for _, sw := range current {
			lr.MissingSkills = append(lr.MissingSkills, sw.Name)
		}
		return lr
	}

	pastWeights := make(map[string]float64, len(past))
	for _, sw := range past {
		pastWeights[key(sw.Name)] = sw.Weight
	}

	for _, sw := range current {
		pw, ok := pastWeights[key(sw.Name)]
		if !ok {
			lr.MissingSkills = append(lr.MissingSkills, sw.Name)
			continue
		}
		lr.Score += sw.Weight * pw
		lr.MatchingSkills = append(lr.MatchingSkills, sw.Name)
	}
	lr.Score = clampUnit(lr.Score)
	return lr
}

func identitySimilarity(name string) string {
	return name
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
