package usecase

import (
	"context"
	"errors"
	"fmt"

	"bid-match/internal/domain/dictionary"
	"bid-match/internal/domain/jdspec"
	"bid-match/internal/domain/reviewqueue"
	"bid-match/internal/repository"
)

type ReviewUsecase interface {
	List(ctx context.Context) ([]reviewqueue.Item, error)
	Pending(ctx context.Context) ([]reviewqueue.Item, error)
	ApproveAsCanonical(ctx context.Context, skillName, category string) (reviewqueue.Decision, error)
	ApproveAsVariation(ctx context.Context, skillName, canonicalName string) (reviewqueue.Decision, error)
	Reject(ctx context.Context, skillName, reason string) (reviewqueue.Rejection, error)
}

type Review struct {
	queues       repository.QueueRepository
	dictionaries repository.DictionaryRepository
	cache        StatsCache
	notifier     QueueNotifier
}

func NewReviewUsecase(
	queues repository.QueueRepository,
	dictionaries repository.DictionaryRepository,
	cache StatsCache,
	notifier QueueNotifier,
) *Review {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Review{queues: queues, dictionaries: dictionaries, cache: cache, notifier: notifier}
}

func (u *Review) List(ctx context.Context) ([]reviewqueue.Item, error) {
	queue, _, err := u.queues.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return queue.Items(), nil
}

func (u *Review) Pending(ctx context.Context) ([]reviewqueue.Item, error) {
	queue, _, err := u.queues.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return queue.PendingItems(), nil
}

// ApproveAsCanonical promotes a pending queue item to a canonical dictionary
// skill. The dictionary entry is created first; if that fails the queue item
// stays pending and can be retried.
func (u *Review) ApproveAsCanonical(ctx context.Context, skillName, category string) (reviewqueue.Decision, error) {
	layer, err := jdspec.ParseLayer(category)
	if err != nil {
		return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	queue, qrev, err := u.queues.GetCurrent(ctx)
	if err != nil {
		return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	dict, drev, err := u.dictionaries.GetCurrent(ctx)
	if err != nil {
		return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !queue.HasSkill(skillName) {
		return reviewqueue.Decision{}, ErrQueueItemNotFound
	}
	if err := dict.AddCanonicalSkill(skillName, layer); err != nil {
		if errors.Is(err, dictionary.ErrDuplicateSkill) {
			return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	decision, err := queue.ApproveAsCanonical(skillName, layer)
	if err != nil {
		return reviewqueue.Decision{}, mapQueueError(err)
	}

	if err := u.saveBoth(ctx, dict, drev, queue, qrev); err != nil {
		return reviewqueue.Decision{}, err
	}
	u.notifier.QueueUpdated(decision.SkillName, QueueActionApproved)
	u.invalidateStats(ctx)
	return decision, nil
}

// ApproveAsVariation maps a pending queue item onto an existing canonical
// skill. The canonical target is verified against the dictionary before the
// queue item is touched, so a bad target leaves the item pending.
func (u *Review) ApproveAsVariation(ctx context.Context, skillName, canonicalName string) (reviewqueue.Decision, error) {
	queue, qrev, err := u.queues.GetCurrent(ctx)
	if err != nil {
		return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	dict, drev, err := u.dictionaries.GetCurrent(ctx)
	if err != nil {
		return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !queue.HasSkill(skillName) {
		return reviewqueue.Decision{}, ErrQueueItemNotFound
	}
	if !dict.HasSkill(canonicalName) {
		return reviewqueue.Decision{}, ErrSkillNotFound
	}
	if err := dict.AddSkillVariation(skillName, canonicalName); err != nil {
		if errors.Is(err, dictionary.ErrDuplicateSkill) {
			return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return reviewqueue.Decision{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	decision, err := queue.ApproveAsVariation(skillName, canonicalName)
	if err != nil {
		return reviewqueue.Decision{}, mapQueueError(err)
	}

	if err := u.saveBoth(ctx, dict, drev, queue, qrev); err != nil {
		return reviewqueue.Decision{}, err
	}
	u.notifier.QueueUpdated(decision.SkillName, QueueActionApproved)
	u.invalidateStats(ctx)
	return decision, nil
}

// Reject marks a pending item as rejected with a reason. The dictionary is
// not involved; only the queue document changes.
func (u *Review) Reject(ctx context.Context, skillName, reason string) (reviewqueue.Rejection, error) {
	queue, qrev, err := u.queues.GetCurrent(ctx)
	if err != nil {
		return reviewqueue.Rejection{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	rejection, err := queue.Reject(skillName, reason)
	if err != nil {
		return reviewqueue.Rejection{}, mapQueueError(err)
	}

	if err := u.queues.Save(ctx, queue, qrev); err != nil {
		if errors.Is(err, repository.ErrConcurrentModification) {
			return reviewqueue.Rejection{}, ErrConflict
		}
		return reviewqueue.Rejection{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	u.notifier.QueueUpdated(rejection.SkillName, QueueActionRejected)
	return rejection, nil
}

func (u *Review) saveBoth(ctx context.Context, dict *dictionary.Dictionary, drev int64, queue *reviewqueue.Queue, qrev int64) error {
	if err := u.dictionaries.Save(ctx, dict, drev); err != nil {
		if errors.Is(err, repository.ErrConcurrentModification) {
			return ErrConflict
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := u.queues.Save(ctx, queue, qrev); err != nil {
		if errors.Is(err, repository.ErrConcurrentModification) {
			return ErrConflict
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (u *Review) invalidateStats(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.InvalidateStatistics(ctx)
}

func mapQueueError(err error) error {
	switch {
	case errors.Is(err, reviewqueue.ErrNotFound):
		return ErrQueueItemNotFound
	case errors.Is(err, reviewqueue.ErrAlreadyProcessed):
		return fmt.Errorf("%w: %v", ErrAlreadyProcessed, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
