// Package dictionary holds the canonical skill dictionary: a versioned
// registry mapping free-text skill names to canonical identifiers, with
// synonym/variation support.
package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"bid-match/internal/domain/jdspec"
	"bid-match/internal/domain/skillname"
)

var (
	ErrInvalidVersionFormat = errors.New("invalid dictionary version format")
	ErrEmptyName            = errors.New("skill name is empty")
	ErrInvalidCategory      = errors.New("invalid skill category")
	ErrDuplicateSkill       = errors.New("skill already exists")
	ErrCanonicalNotFound    = errors.New("canonical skill not found")
	ErrSkillNotFound        = errors.New("skill not found")
)

// CanonicalSkill is the authoritative record for a technology name.
type CanonicalSkill struct {
	Name      string           `json:"name"`
	Category  jdspec.TechLayer `json:"category"`
	CreatedAt time.Time        `json:"created_at"`
}

// Dictionary is the process-wide canonical skill registry. A name is either
// a canonical skill or a variation pointing at one, never both. Every
// mutating edit bumps the YYYY.N version suffix.
type Dictionary struct {
	version    string
	skills     map[string]CanonicalSkill
	variations map[string]string
}

// New creates an empty dictionary at the given YYYY.N version.
func New(version string) (*Dictionary, error) {
	if !jdspec.IsValidDictionaryVersion(version) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersionFormat, version)
	}
	return &Dictionary{
		version:    version,
		skills:     make(map[string]CanonicalSkill),
		variations: make(map[string]string),
	}, nil
}

// Version returns the current YYYY.N version string.
func (d *Dictionary) Version() string {
	return d.version
}

// AddCanonicalSkill registers a new canonical skill under the normalized
// name and bumps the version.
func (d *Dictionary) AddCanonicalSkill(name string, category jdspec.TechLayer) error {
	key := skillname.Normalize(name)
	if key == "" {
		return ErrEmptyName
	}
	if !jdspec.IsValidLayer(category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if d.isKnownName(key) {
		return fmt.Errorf("%w: %q", ErrDuplicateSkill, key)
	}

	d.skills[key] = CanonicalSkill{Name: key, Category: category, CreatedAt: time.Now().UTC()}
	d.incrementVersion()
	return nil
}

// AddSkillVariation maps a variation name onto an existing canonical skill
// and bumps the version. Re-adding an existing variation is a duplicate,
// even when it points at the same canonical skill.
func (d *Dictionary) AddSkillVariation(variation, canonicalName string) error {
	varKey := skillname.Normalize(variation)
	if varKey == "" {
		return ErrEmptyName
	}
	canonKey := skillname.Normalize(canonicalName)
	if _, ok := d.skills[canonKey]; !ok {
		return fmt.Errorf("%w: %q", ErrCanonicalNotFound, canonKey)
	}
	if d.isKnownName(varKey) {
		return fmt.Errorf("%w: %q", ErrDuplicateSkill, varKey)
	}

	d.variations[varKey] = canonKey
	d.incrementVersion()
	return nil
}

// RemoveCanonicalSkill deletes a canonical skill, cascades removal of every
// variation pointing at it, and bumps the version.
func (d *Dictionary) RemoveCanonicalSkill(name string) error {
	key := skillname.Normalize(name)
	if _, ok := d.skills[key]; !ok {
		return fmt.Errorf("%w: %q", ErrSkillNotFound, key)
	}

	delete(d.skills, key)
	for v, canon := range d.variations {
		if canon == key {
			delete(d.variations, v)
		}
	}
	d.incrementVersion()
	return nil
}

// RenameCanonicalSkill is a composite of remove+add that carries the old
// skill's variations over to the new name, so variation history survives
// the rename. The category is preserved.
func (d *Dictionary) RenameCanonicalSkill(oldName, newName string) error {
	oldKey := skillname.Normalize(oldName)
	existing, ok := d.skills[oldKey]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSkillNotFound, oldKey)
	}
	newKey := skillname.Normalize(newName)
	if newKey == "" {
		return ErrEmptyName
	}
	if newKey != oldKey && d.isKnownName(newKey) {
		return fmt.Errorf("%w: %q", ErrDuplicateSkill, newKey)
	}

	carried := d.VariationsFor(oldKey)
	if err := d.RemoveCanonicalSkill(oldKey); err != nil {
		return err
	}
	if err := d.AddCanonicalSkill(newKey, existing.Category); err != nil {
		return err
	}
	for _, v := range carried {
		if v == newKey {
			continue
		}
		if err := d.AddSkillVariation(v, newKey); err != nil {
			return err
		}
	}
	return nil
}

// MapToCanonical resolves a free-text name to its canonical identifier.
// Canonical skills win over variations. The second result is false when the
// name is unknown.
func (d *Dictionary) MapToCanonical(name string) (string, bool) {
	key := skillname.Normalize(name)
	if key == "" {
		return "", false
	}
	if _, ok := d.skills[key]; ok {
		return key, true
	}
	if canon, ok := d.variations[key]; ok {
		return canon, true
	}
	return "", false
}

// HasSkill reports whether the normalized name is a canonical skill.
func (d *Dictionary) HasSkill(name string) bool {
	_, ok := d.skills[skillname.Normalize(name)]
	return ok
}

// CanonicalSkill returns the canonical record for a name, when present.
func (d *Dictionary) CanonicalSkill(name string) (CanonicalSkill, bool) {
	s, ok := d.skills[skillname.Normalize(name)]
	return s, ok
}

// AllSkills returns every canonical skill sorted by name.
func (d *Dictionary) AllSkills() []CanonicalSkill {
	out := make([]CanonicalSkill, 0, len(d.skills))
	for _, s := range d.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SkillsByCategory returns the canonical skills in one layer, sorted by name.
func (d *Dictionary) SkillsByCategory(category jdspec.TechLayer) []CanonicalSkill {
	out := make([]CanonicalSkill, 0)
	for _, s := range d.skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// VariationsFor returns the variation names pointing at a canonical skill,
// sorted.
func (d *Dictionary) VariationsFor(canonicalName string) []string {
	canonKey := skillname.Normalize(canonicalName)
	out := make([]string, 0)
	for v, canon := range d.variations {
		if canon == canonKey {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// SkillCount returns the number of canonical skills.
func (d *Dictionary) SkillCount() int {
	return len(d.skills)
}

// incrementVersion bumps the numeric suffix after the year. The version
// never decreases or repeats across edits.
func (d *Dictionary) incrementVersion() {
	parts := strings.SplitN(d.version, ".", 2)
	year := parts[0]
	suffix, err := strconv.Atoi(parts[1])
	if err != nil {
		suffix = 0
	}
	d.version = fmt.Sprintf("%s.%d", year, suffix+1)
}

func (d *Dictionary) isKnownName(key string) bool {
	if _, ok := d.skills[key]; ok {
		return true
	}
	_, ok := d.variations[key]
	return ok
}

type dictionaryDocument struct {
	Version    string                    `json:"version"`
	Skills     map[string]CanonicalSkill `json:"skills"`
	Variations map[string]string         `json:"variations"`
}

// MarshalJSON serializes the dictionary as the persisted singleton document.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	doc := dictionaryDocument{
		Version:    d.version,
		Skills:     make(map[string]CanonicalSkill, len(d.skills)),
		Variations: make(map[string]string, len(d.variations)),
	}
	for k, v := range d.skills {
		doc.Skills[k] = v
	}
	for k, v := range d.variations {
		doc.Variations[k] = v
	}
	return json.Marshal(doc)
}

// FromJSON rebuilds a dictionary from its persisted document, re-checking
// the version format and that every variation references a canonical skill.
func FromJSON(data []byte) (*Dictionary, error) {
	var doc dictionaryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	d, err := New(doc.Version)
	if err != nil {
		return nil, err
	}
	for k, v := range doc.Skills {
		d.skills[k] = v
	}
	for k, v := range doc.Variations {
		if _, ok := d.skills[v]; !ok {
			return nil, fmt.Errorf("%w: variation %q references %q", ErrCanonicalNotFound, k, v)
		}
		if _, ok := d.skills[k]; ok {
			return nil, fmt.Errorf("%w: %q is both canonical and variation", ErrDuplicateSkill, k)
		}
		d.variations[k] = v
	}
	return d, nil
}
