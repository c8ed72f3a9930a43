package dto

type BidRequest struct {
	Title        string                          `json:"title"`
	Company      string                          `json:"company"`
	LayerWeights map[string]float64              `json:"layer_weights"`
	Skills       map[string][]SkillWeightRequest `json:"skills"`
}
