// Package jdspec holds the canonical JD specification: an immutable,
// construction-validated six-layer weighted skill profile.
package jdspec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Spec is a validated weighted skill profile for a role. It is immutable
// once constructed; updates replace the whole document by id.
type Spec struct {
	id                string
	role              string
	layerWeights      LayerWeights
	skills            LayerSkills
	dictionaryVersion string
	createdAt         time.Time
}

// Input carries the raw material for a Spec. ID is optional; a UUID is
// assigned when empty.
type Input struct {
	ID                string
	Role              string
	LayerWeights      LayerWeights
	Skills            LayerSkills
	DictionaryVersion string
}

// New validates in and returns a fully constructed Spec, or the first
// violated invariant. Checks run in a fixed order: layer completeness,
// layer weight sum, per-layer skill weight sums, skill identifiers,
// dictionary version format. A failed check leaves no partial object.
func New(in Input) (*Spec, error) {
	if err := checkLayerCompleteness(in.LayerWeights, in.Skills); err != nil {
		return nil, err
	}
	if err := ValidateLayerWeights(in.LayerWeights); err != nil {
		return nil, err
	}
	if err := ValidateLayerSkills(in.Skills); err != nil {
		return nil, err
	}
	if err := validateSkillNames(in.Skills); err != nil {
		return nil, err
	}
	if !IsValidDictionaryVersion(in.DictionaryVersion) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDictionaryVersion, in.DictionaryVersion)
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &Spec{
		id:                id,
		role:              in.Role,
		layerWeights:      copyLayerWeights(in.LayerWeights),
		skills:            copyLayerSkills(in.Skills),
		dictionaryVersion: in.DictionaryVersion,
		createdAt:         time.Now().UTC(),
	}, nil
}

func checkLayerCompleteness(w LayerWeights, s LayerSkills) error {
	for l := range w {
		if !IsValidLayer(l) {
			return fmt.Errorf("%w: layerWeights key %q", ErrUnknownLayer, l)
		}
	}
	for l := range s {
		if !IsValidLayer(l) {
			return fmt.Errorf("%w: skills key %q", ErrUnknownLayer, l)
		}
	}
	for _, l := range layerOrder {
		if _, ok := w[l]; !ok {
			return fmt.Errorf("%w: layerWeights missing %q", ErrMissingLayer, l)
		}
	}
	for _, l := range layerOrder {
		if _, ok := s[l]; !ok {
			return fmt.Errorf("%w: skills missing %q", ErrMissingLayer, l)
		}
	}
	return nil
}

func (s *Spec) ID() string                { return s.id }
func (s *Spec) Role() string              { return s.role }
func (s *Spec) DictionaryVersion() string { return s.dictionaryVersion }
func (s *Spec) CreatedAt() time.Time      { return s.createdAt }

// LayerWeight returns the weight the spec assigns to a layer.
func (s *Spec) LayerWeight(l TechLayer) float64 {
	return s.layerWeights[l]
}

// LayerWeights returns a copy of the full layer-weight map.
func (s *Spec) LayerWeights() LayerWeights {
	return copyLayerWeights(s.layerWeights)
}

// Skills returns a deep copy of the full per-layer skill map.
func (s *Spec) Skills() LayerSkills {
	return copyLayerSkills(s.skills)
}

// SkillsForLayer returns a copy of the ordered skill list for one layer.
func (s *Spec) SkillsForLayer(l TechLayer) []SkillWeight {
	src := s.skills[l]
	out := make([]SkillWeight, len(src))
	copy(out, src)
	return out
}

func copyLayerWeights(w LayerWeights) LayerWeights {
	out := make(LayerWeights, len(layerOrder))
	for _, l := range layerOrder {
		out[l] = w[l]
	}
	return out
}

func copyLayerSkills(s LayerSkills) LayerSkills {
	out := make(LayerSkills, len(layerOrder))
	for _, l := range layerOrder {
		skills := make([]SkillWeight, len(s[l]))
		copy(skills, s[l])
		out[l] = skills
	}
	return out
}

type specDocument struct {
	ID                string                   `json:"id"`
	Role              string                   `json:"role"`
	LayerWeights      map[string]float64       `json:"layer_weights"`
	Skills            map[string][]SkillWeight `json:"skills"`
	DictionaryVersion string                   `json:"dictionary_version"`
	CreatedAt         time.Time                `json:"created_at"`
}

// MarshalJSON serializes the spec as the persisted document shape.
func (s *Spec) MarshalJSON() ([]byte, error) {
	doc := specDocument{
		ID:                s.id,
		Role:              s.role,
		LayerWeights:      make(map[string]float64, len(layerOrder)),
		Skills:            make(map[string][]SkillWeight, len(layerOrder)),
		DictionaryVersion: s.dictionaryVersion,
		CreatedAt:         s.createdAt,
	}
	for _, l := range layerOrder {
		doc.LayerWeights[string(l)] = s.layerWeights[l]
		skills := make([]SkillWeight, len(s.skills[l]))
		copy(skills, s.skills[l])
		doc.Skills[string(l)] = skills
	}
	return json.Marshal(doc)
}

// FromJSON rebuilds a Spec from a persisted document. All construction
// invariants are re-checked; CreatedAt is restored, not re-stamped, so the
// round trip is lossless.
func FromJSON(data []byte) (*Spec, error) {
	var doc specDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode jd spec: %w", err)
	}

	weights := make(LayerWeights, len(doc.LayerWeights))
	for k, v := range doc.LayerWeights {
		weights[TechLayer(k)] = v
	}
	skills := make(LayerSkills, len(doc.Skills))
	for k, v := range doc.Skills {
		skills[TechLayer(k)] = v
	}

	spec, err := New(Input{
		ID:                doc.ID,
		Role:              doc.Role,
		LayerWeights:      weights,
		Skills:            skills,
		DictionaryVersion: doc.DictionaryVersion,
	})
	if err != nil {
		return nil, err
	}
	if !doc.CreatedAt.IsZero() {
		spec.createdAt = doc.CreatedAt.UTC()
	}
	return spec, nil
}
