package dto

type SkillWeightRequest struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// JDSpecRequest is the create/replace payload for a weighted skill profile.
// Both maps must carry exactly the six layer keys.
type JDSpecRequest struct {
	Role         string                          `json:"role"`
	LayerWeights map[string]float64              `json:"layer_weights"`
	Skills       map[string][]SkillWeightRequest `json:"skills"`
}
