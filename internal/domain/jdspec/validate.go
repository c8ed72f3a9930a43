package jdspec

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	// WeightSumTolerance is the allowed drift around 1.0 for weight sums.
	WeightSumTolerance = 0.001

	// MaxSkillNameLength bounds a skill identifier after trimming.
	MaxSkillNameLength = 100
)

var (
	ErrMissingLayer             = errors.New("missing tech layer")
	ErrUnknownLayer             = errors.New("unknown tech layer")
	ErrLayerWeightsSum          = errors.New("layer weights must sum to 1.0")
	ErrLayerWeightOutOfRange    = errors.New("layer weight must be in [0,1]")
	ErrSkillWeightsSum          = errors.New("skill weights must sum to 1.0")
	ErrSkillWeightOutOfRange    = errors.New("skill weight must be in [0,1]")
	ErrEmptySkillName           = errors.New("skill name is empty")
	ErrSkillNameTooLong         = errors.New("skill name too long")
	ErrInvalidDictionaryVersion = errors.New("invalid dictionary version format")
)

var dictionaryVersionRe = regexp.MustCompile(`^\d{4}\.\d+$`)

// IsValidDictionaryVersion reports whether v matches the YYYY.N wire format.
func IsValidDictionaryVersion(v string) bool {
	return dictionaryVersionRe.MatchString(v)
}

// SkillWeight pairs a skill identifier with its relative weight inside a layer.
type SkillWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// LayerWeights maps every layer to its relative importance. The six values
// sum to 1.0 within tolerance.
type LayerWeights map[TechLayer]float64

// LayerSkills maps every layer to its ordered weighted skill list. An empty
// layer is valid and means "no skill requirement".
type LayerSkills map[TechLayer][]SkillWeight

// ValidateLayerWeights checks layer completeness and the 1.0 sum invariant.
func ValidateLayerWeights(w LayerWeights) error {
	for l := range w {
		if !IsValidLayer(l) {
			return fmt.Errorf("%w: layerWeights key %q", ErrUnknownLayer, l)
		}
	}
	sum := 0.0
	for _, l := range layerOrder {
		v, ok := w[l]
		if !ok {
			return fmt.Errorf("%w: layerWeights missing %q", ErrMissingLayer, l)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: layer %q has weight %g", ErrLayerWeightOutOfRange, l, v)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return fmt.Errorf("%w: got %.6f", ErrLayerWeightsSum, sum)
	}
	return nil
}

// ValidateLayerSkills checks layer completeness and, for each non-empty
// layer, the per-layer 1.0 skill-weight sum invariant.
func ValidateLayerSkills(s LayerSkills) error {
	for l := range s {
		if !IsValidLayer(l) {
			return fmt.Errorf("%w: skills key %q", ErrUnknownLayer, l)
		}
	}
	for _, l := range layerOrder {
		skills, ok := s[l]
		if !ok {
			return fmt.Errorf("%w: skills missing %q", ErrMissingLayer, l)
		}
		if len(skills) == 0 {
			continue
		}
		sum := 0.0
		for _, sw := range skills {
			if sw.Weight < 0 || sw.Weight > 1 {
				return fmt.Errorf("%w: layer %q skill %q has weight %g", ErrSkillWeightOutOfRange, l, sw.Name, sw.Weight)
			}
			sum += sw.Weight
		}
		if math.Abs(sum-1.0) > WeightSumTolerance {
			return fmt.Errorf("%w: layer %q got %.6f", ErrSkillWeightsSum, l, sum)
		}
	}
	return nil
}

// ValidateSkillName checks the identifier rules shared by specs and the
// review queue: non-empty after trimming, at most MaxSkillNameLength runes.
func ValidateSkillName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptySkillName
	}
	if len([]rune(trimmed)) > MaxSkillNameLength {
		return fmt.Errorf("%w: %d runes", ErrSkillNameTooLong, len([]rune(trimmed)))
	}
	return nil
}

func validateSkillNames(s LayerSkills) error {
	for _, l := range layerOrder {
		for _, sw := range s[l] {
			if err := ValidateSkillName(sw.Name); err != nil {
				return fmt.Errorf("layer %q: %w", l, err)
			}
		}
	}
	return nil
}
