// Package bid holds the tracked job-application ("bid") aggregate. A bid
// carries the same six-layer weighted skill shape as a JD spec, but its
// skill names stay free-form: nothing canonicalizes them.
package bid

import (
	"errors"
	"time"

	"bid-match/internal/domain/jdspec"

	"github.com/google/uuid"
)

var ErrEmptyTitle = errors.New("bid title is empty")

type Bid struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Company      string              `json:"company"`
	LayerWeights jdspec.LayerWeights `json:"layer_weights"`
	Skills       jdspec.LayerSkills  `json:"skills"`
	CreatedAt    time.Time           `json:"created_at"`
}

type Input struct {
	ID           string
	Title        string
	Company      string
	LayerWeights jdspec.LayerWeights
	Skills       jdspec.LayerSkills
}

// New validates the six-layer shape and weight sums and returns the bid.
func New(in Input) (*Bid, error) {
	if in.Title == "" {
		return nil, ErrEmptyTitle
	}
	if err := jdspec.ValidateLayerWeights(in.LayerWeights); err != nil {
		return nil, err
	}
	if err := jdspec.ValidateLayerSkills(in.Skills); err != nil {
		return nil, err
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	b := &Bid{
		ID:           id,
		Title:        in.Title,
		Company:      in.Company,
		LayerWeights: make(jdspec.LayerWeights, len(in.LayerWeights)),
		Skills:       make(jdspec.LayerSkills, len(in.Skills)),
		CreatedAt:    time.Now().UTC(),
	}
	for l, w := range in.LayerWeights {
		b.LayerWeights[l] = w
	}
	for l, skills := range in.Skills {
		copied := make([]jdspec.SkillWeight, len(skills))
		copy(copied, skills)
		b.Skills[l] = copied
	}
	return b, nil
}

// SkillsForLayer returns a copy of the ordered skill list for one layer.
func (b *Bid) SkillsForLayer(l jdspec.TechLayer) []jdspec.SkillWeight {
	src := b.Skills[l]
	out := make([]jdspec.SkillWeight, len(src))
	copy(out, src)
	return out
}
