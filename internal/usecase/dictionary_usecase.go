package usecase

import (
	"context"
	"errors"
	"fmt"

	"bid-match/internal/domain/dictionary"
	"bid-match/internal/domain/jdspec"
	"bid-match/internal/repository"
)

type DictionaryUsecase interface {
	List(ctx context.Context) ([]dictionary.CanonicalSkill, string, error)
	ListByCategory(ctx context.Context, category string) ([]dictionary.CanonicalSkill, error)
	VariationsFor(ctx context.Context, canonicalName string) ([]string, error)
	AddSkill(ctx context.Context, name, category string) (string, error)
	AddVariation(ctx context.Context, variation, canonicalName string) (string, error)
	RemoveSkill(ctx context.Context, name string) (string, error)
	RenameSkill(ctx context.Context, oldName, newName string) (string, error)
	Version(ctx context.Context) (string, error)
	AllVersions(ctx context.Context) ([]string, error)
}

// DictionaryAdmin exposes the curation surface of the canonical skill
// dictionary. Every mutation returns the dictionary version it produced.
type DictionaryAdmin struct {
	dictionaries repository.DictionaryRepository
	cache        StatsCache
}

func NewDictionaryUsecase(dictionaries repository.DictionaryRepository, cache StatsCache) *DictionaryAdmin {
	return &DictionaryAdmin{dictionaries: dictionaries, cache: cache}
}

func (u *DictionaryAdmin) List(ctx context.Context) ([]dictionary.CanonicalSkill, string, error) {
	dict, _, err := u.dictionaries.GetCurrent(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return dict.AllSkills(), dict.Version(), nil
}

func (u *DictionaryAdmin) ListByCategory(ctx context.Context, category string) ([]dictionary.CanonicalSkill, error) {
	layer, err := jdspec.ParseLayer(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	dict, _, err := u.dictionaries.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return dict.SkillsByCategory(layer), nil
}

func (u *DictionaryAdmin) VariationsFor(ctx context.Context, canonicalName string) ([]string, error) {
	dict, _, err := u.dictionaries.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !dict.HasSkill(canonicalName) {
		return nil, ErrSkillNotFound
	}
	return dict.VariationsFor(canonicalName), nil
}

func (u *DictionaryAdmin) AddSkill(ctx context.Context, name, category string) (string, error) {
	layer, err := jdspec.ParseLayer(category)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return u.mutate(ctx, func(dict *dictionary.Dictionary) error {
		return dict.AddCanonicalSkill(name, layer)
	})
}

func (u *DictionaryAdmin) AddVariation(ctx context.Context, variation, canonicalName string) (string, error) {
	return u.mutate(ctx, func(dict *dictionary.Dictionary) error {
		return dict.AddSkillVariation(variation, canonicalName)
	})
}

// RemoveSkill deletes a canonical skill and every variation pointing at it.
func (u *DictionaryAdmin) RemoveSkill(ctx context.Context, name string) (string, error) {
	return u.mutate(ctx, func(dict *dictionary.Dictionary) error {
		return dict.RemoveCanonicalSkill(name)
	})
}

// RenameSkill moves a canonical skill to a new identifier, carrying its
// variations along.
func (u *DictionaryAdmin) RenameSkill(ctx context.Context, oldName, newName string) (string, error) {
	return u.mutate(ctx, func(dict *dictionary.Dictionary) error {
		return dict.RenameCanonicalSkill(oldName, newName)
	})
}

func (u *DictionaryAdmin) Version(ctx context.Context) (string, error) {
	version, err := u.dictionaries.GetVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return version, nil
}

func (u *DictionaryAdmin) AllVersions(ctx context.Context) ([]string, error) {
	versions, err := u.dictionaries.AllVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return versions, nil
}

// mutate loads the current dictionary, applies one edit, and saves it back
// under the revision observed at load time.
func (u *DictionaryAdmin) mutate(ctx context.Context, edit func(*dictionary.Dictionary) error) (string, error) {
	dict, rev, err := u.dictionaries.GetCurrent(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := edit(dict); err != nil {
		return "", mapDictionaryError(err)
	}
	if err := u.dictionaries.Save(ctx, dict, rev); err != nil {
		if errors.Is(err, repository.ErrConcurrentModification) {
			return "", ErrConflict
		}
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if u.cache != nil {
		_ = u.cache.InvalidateStatistics(ctx)
	}
	return dict.Version(), nil
}

func mapDictionaryError(err error) error {
	switch {
	case errors.Is(err, dictionary.ErrDuplicateSkill):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, dictionary.ErrCanonicalNotFound), errors.Is(err, dictionary.ErrSkillNotFound):
		return ErrSkillNotFound
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
