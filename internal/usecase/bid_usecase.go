package usecase

import (
	"context"
	"errors"
	"fmt"

	"bid-match/internal/domain/bid"
	"bid-match/internal/repository"
)

type BidInput struct {
	Title        string
	Company      string
	LayerWeights map[string]float64
	Skills       map[string][]SkillInput
}

type BidUsecase interface {
	Create(ctx context.Context, in BidInput) (*bid.Bid, error)
	Get(ctx context.Context, id string) (*bid.Bid, error)
	List(ctx context.Context) ([]*bid.Bid, error)
	Delete(ctx context.Context, id string) error
}

type Bids struct {
	bids repository.BidRepository
}

func NewBidUsecase(bids repository.BidRepository) *Bids {
	return &Bids{bids: bids}
}

// Create stores a tracked bid. Skill names are kept as submitted; bids never
// go through the dictionary.
func (u *Bids) Create(ctx context.Context, in BidInput) (*bid.Bid, error) {
	b, err := bid.New(bid.Input{
		Title:        in.Title,
		Company:      in.Company,
		LayerWeights: toLayerWeights(in.LayerWeights),
		Skills:       toLayerSkills(in.Skills),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := u.bids.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return b, nil
}

func (u *Bids) Get(ctx context.Context, id string) (*bid.Bid, error) {
	b, err := u.bids.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return b, nil
}

func (u *Bids) List(ctx context.Context) ([]*bid.Bid, error) {
	bids, err := u.bids.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return bids, nil
}

func (u *Bids) Delete(ctx context.Context, id string) error {
	if err := u.bids.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBidNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}
