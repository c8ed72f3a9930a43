package usecase

import (
	"context"
	"errors"
	"fmt"

	"bid-match/internal/domain/dictionary"
	"bid-match/internal/domain/jdspec"
	"bid-match/internal/domain/reviewqueue"
	"bid-match/internal/domain/skillname"
	"bid-match/internal/repository"

	"github.com/google/uuid"
)

type SkillInput struct {
	Name   string
	Weight float64
}

type JDSpecInput struct {
	Role         string
	LayerWeights map[string]float64
	Skills       map[string][]SkillInput
}

type JDSpecUsecase interface {
	Create(ctx context.Context, in JDSpecInput) (*jdspec.Spec, error)
	Get(ctx context.Context, id string) (*jdspec.Spec, error)
	List(ctx context.Context) ([]*jdspec.Spec, error)
	Update(ctx context.Context, id string, in JDSpecInput) (*jdspec.Spec, error)
	Delete(ctx context.Context, id string) error
}

type JDSpec struct {
	specs        repository.JDSpecRepository
	dictionaries repository.DictionaryRepository
	queues       repository.QueueRepository
	cache        StatsCache
	notifier     QueueNotifier
}

func NewJDSpecUsecase(
	specs repository.JDSpecRepository,
	dictionaries repository.DictionaryRepository,
	queues repository.QueueRepository,
	cache StatsCache,
	notifier QueueNotifier,
) *JDSpec {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &JDSpec{specs: specs, dictionaries: dictionaries, queues: queues, cache: cache, notifier: notifier}
}

func (u *JDSpec) Create(ctx context.Context, in JDSpecInput) (*jdspec.Spec, error) {
	spec, changedQueue, err := u.buildSpec(ctx, uuid.NewString(), in)
	if err != nil {
		return nil, err
	}
	if err := u.specs.Save(ctx, spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := u.flushQueue(ctx, changedQueue); err != nil {
		return nil, err
	}
	u.invalidateStats(ctx)
	return spec, nil
}

func (u *JDSpec) Get(ctx context.Context, id string) (*jdspec.Spec, error) {
	spec, err := u.specs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJDSpecNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return spec, nil
}

func (u *JDSpec) List(ctx context.Context) ([]*jdspec.Spec, error) {
	specs, err := u.specs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return specs, nil
}

// Update replaces the stored profile wholesale. The replacement runs through
// the full create pipeline, so skill names are re-resolved against the
// dictionary current at update time and new unknowns land in the queue.
func (u *JDSpec) Update(ctx context.Context, id string, in JDSpecInput) (*jdspec.Spec, error) {
	if _, err := u.specs.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJDSpecNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	spec, changedQueue, err := u.buildSpec(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if err := u.specs.Update(ctx, spec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJDSpecNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := u.flushQueue(ctx, changedQueue); err != nil {
		return nil, err
	}
	u.invalidateStats(ctx)
	return spec, nil
}

func (u *JDSpec) Delete(ctx context.Context, id string) error {
	if err := u.specs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJDSpecNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	u.invalidateStats(ctx)
	return nil
}

// queueUpdate carries the review-queue mutations accumulated while resolving
// one profile, so they are persisted only after the profile itself saved.
type queueUpdate struct {
	queue    *reviewqueue.Queue
	revision int64
	detected []string
}

// buildSpec validates the raw shape, resolves every skill name through the
// dictionary, and registers the unresolved ones on the review queue. The
// shape is validated before any queue mutation: a profile that fails
// validation must not leave detections behind.
func (u *JDSpec) buildSpec(ctx context.Context, id string, in JDSpecInput) (*jdspec.Spec, *queueUpdate, error) {
	dict, _, err := u.dictionaries.GetCurrent(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	queue, qrev, err := u.queues.GetCurrent(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	weights := toLayerWeights(in.LayerWeights)
	rawSkills := toLayerSkills(in.Skills)

	if _, err := jdspec.New(jdspec.Input{
		ID:                id,
		Role:              in.Role,
		LayerWeights:      weights,
		Skills:            rawSkills,
		DictionaryVersion: dict.Version(),
	}); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	resolved, detected, err := resolveSkills(dict, queue, rawSkills, id)
	if err != nil {
		return nil, nil, err
	}

	spec, err := jdspec.New(jdspec.Input{
		ID:                id,
		Role:              in.Role,
		LayerWeights:      weights,
		Skills:            resolved,
		DictionaryVersion: dict.Version(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	upd := &queueUpdate{queue: queue, revision: qrev, detected: detected}
	return spec, upd, nil
}

// resolveSkills rewrites each skill name to its canonical dictionary form.
// Names the dictionary does not know keep their normalized form and are
// recorded on the queue once per unique normalized name, even when the same
// spelling appears in several entries or layers.
func resolveSkills(dict *dictionary.Dictionary, queue *reviewqueue.Queue, raw jdspec.LayerSkills, sourceID string) (jdspec.LayerSkills, []string, error) {
	out := make(jdspec.LayerSkills, len(raw))
	var detected []string
	seen := make(map[string]struct{})

	for _, layer := range jdspec.Layers() {
		skills := raw[layer]
		resolved := make([]jdspec.SkillWeight, 0, len(skills))
		for _, s := range skills {
			name := skillname.Normalize(s.Name)
			if canon, ok := dict.MapToCanonical(name); ok {
				name = canon
			} else if _, dup := seen[name]; !dup {
				if err := queue.AddUnknownSkill(name, sourceID); err != nil {
					return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
				}
				seen[name] = struct{}{}
				detected = append(detected, name)
			}
			resolved = append(resolved, jdspec.SkillWeight{Name: name, Weight: s.Weight})
		}
		out[layer] = resolved
	}
	return out, detected, nil
}

// flushQueue persists the queue only when the profile actually detected
// something; an all-canonical profile leaves the stored queue untouched.
func (u *JDSpec) flushQueue(ctx context.Context, upd *queueUpdate) error {
	if upd == nil || len(upd.detected) == 0 {
		return nil
	}
	if err := u.queues.Save(ctx, upd.queue, upd.revision); err != nil {
		if errors.Is(err, repository.ErrConcurrentModification) {
			return ErrConflict
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	for _, name := range upd.detected {
		u.notifier.QueueUpdated(name, QueueActionDetected)
	}
	return nil
}

func (u *JDSpec) invalidateStats(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.InvalidateStatistics(ctx)
}

func toLayerWeights(in map[string]float64) jdspec.LayerWeights {
	out := make(jdspec.LayerWeights, len(in))
	for k, v := range in {
		out[jdspec.TechLayer(k)] = v
	}
	return out
}

func toLayerSkills(in map[string][]SkillInput) jdspec.LayerSkills {
	out := make(jdspec.LayerSkills, len(in))
	for k, skills := range in {
		converted := make([]jdspec.SkillWeight, 0, len(skills))
		for _, s := range skills {
			converted = append(converted, jdspec.SkillWeight{Name: s.Name, Weight: s.Weight})
		}
		out[jdspec.TechLayer(k)] = converted
	}
	return out
}
