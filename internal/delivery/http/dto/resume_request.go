package dto

type ResumeRequest struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}
