package correlation

import (
	"bid-match/internal/domain/bid"
	"bid-match/internal/domain/jdspec"
	"bid-match/internal/domain/skillname"
)

// CalculateBidMatch applies the same weighted-match formula to two bids.
// Unlike the JD path, bid skill names never went through the dictionary, so
// comparison lowercases both sides ad hoc. Kept as a separate entry point
// on purpose: the two calling contexts make different input guarantees.
func CalculateBidMatch(current, past *bid.Bid) Result {
	breakdown := make(map[jdspec.TechLayer]LayerResult, 6)
	overall := 0.0

	for _, layer := range jdspec.Layers() {
		lr := scoreLayer(current.SkillsForLayer(layer), past.SkillsForLayer(layer), skillname.Normalize)
		lr.LayerWeight = current.LayerWeights[layer]
		breakdown[layer] = lr
		overall += lr.Score * lr.LayerWeight
	}

	return Result{
		OverallScore:   clampUnit(overall),
		LayerBreakdown: breakdown,
	}
}
