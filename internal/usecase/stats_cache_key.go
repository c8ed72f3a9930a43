package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// statsCacheKeyPrefix must match the prefix the cache invalidates on; see
// internal/infrastructure/cache.
const statsCacheKeyPrefix = "stats:usage:"

type statsCacheKeyInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Category  string `json:"category"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

func statisticsCacheKey(p StatisticsParams) string {
	in := statsCacheKeyInput{
		Category:  p.Category,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
	}
	if p.StartDate != nil {
		in.StartDate = p.StartDate.UTC().Format(time.RFC3339)
	}
	if p.EndDate != nil {
		in.EndDate = p.EndDate.UTC().Format(time.RFC3339)
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return statsCacheKeyPrefix + hex.EncodeToString(sum[:])
}
