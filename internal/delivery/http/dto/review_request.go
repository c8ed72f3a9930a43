package dto

type ApproveCanonicalRequest struct {
	Category string `json:"category"`
}

type ApproveVariationRequest struct {
	CanonicalName string `json:"canonical_name"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}
