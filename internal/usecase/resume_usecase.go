package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bid-match/internal/domain/skillname"
	"bid-match/internal/repository"

	"github.com/google/uuid"
)

type ResumeInput struct {
	Name   string
	Skills []string
}

type ResumeUsecase interface {
	Create(ctx context.Context, in ResumeInput) (repository.Resume, error)
	Get(ctx context.Context, id string) (repository.Resume, error)
	List(ctx context.Context) ([]repository.Resume, error)
	Delete(ctx context.Context, id string) error
}

type Resumes struct {
	resumes repository.ResumeRepository
	cache   StatsCache
}

func NewResumeUsecase(resumes repository.ResumeRepository, cache StatsCache) *Resumes {
	return &Resumes{resumes: resumes, cache: cache}
}

// Create stores a resume skill inventory. Blank entries are dropped and the
// rest deduplicated case-insensitively, keeping first occurrence order.
func (u *Resumes) Create(ctx context.Context, in ResumeInput) (repository.Resume, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.Resume{}, fmt.Errorf("%w: resume name is empty", ErrInvalidInput)
	}

	skills := make([]string, 0, len(in.Skills))
	seen := make(map[string]struct{}, len(in.Skills))
	for _, s := range in.Skills {
		key := skillname.Normalize(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, strings.TrimSpace(s))
	}

	r := repository.Resume{
		ID:        uuid.NewString(),
		Name:      name,
		Skills:    skills,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.resumes.Save(ctx, r); err != nil {
		return repository.Resume{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if u.cache != nil {
		_ = u.cache.InvalidateStatistics(ctx)
	}
	return r, nil
}

func (u *Resumes) Get(ctx context.Context, id string) (repository.Resume, error) {
	r, err := u.resumes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Resume{}, ErrResumeNotFound
		}
		return repository.Resume{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return r, nil
}

func (u *Resumes) List(ctx context.Context) ([]repository.Resume, error) {
	resumes, err := u.resumes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return resumes, nil
}

func (u *Resumes) Delete(ctx context.Context, id string) error {
	if err := u.resumes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResumeNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if u.cache != nil {
		_ = u.cache.InvalidateStatistics(ctx)
	}
	return nil
}
