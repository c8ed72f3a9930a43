package dto

type AddSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type AddVariationRequest struct {
	Variation     string `json:"variation"`
	CanonicalName string `json:"canonical_name"`
}

type RenameSkillRequest struct {
	NewName string `json:"new_name"`
}
