package usecase

import (
	"context"
	"errors"
	"fmt"

	"bid-match/internal/domain/correlation"
	"bid-match/internal/domain/jdspec"
	"bid-match/internal/repository"
)

type CorrelationUsecase interface {
	CalculateJD(ctx context.Context, currentID, pastID string) (correlation.Result, error)
	CalculateBid(ctx context.Context, currentID, pastID string) (correlation.Result, error)
}

type Correlation struct {
	specs repository.JDSpecRepository
	bids  repository.BidRepository
}

func NewCorrelationUsecase(specs repository.JDSpecRepository, bids repository.BidRepository) *Correlation {
	return &Correlation{specs: specs, bids: bids}
}

// CalculateJD scores how well the past profile covers the current one. The
// two sides are not interchangeable: layer weights come from the current
// profile, so swapping the arguments changes the result.
func (u *Correlation) CalculateJD(ctx context.Context, currentID, pastID string) (correlation.Result, error) {
	current, err := u.loadSpec(ctx, currentID, ErrCurrentJDNotFound)
	if err != nil {
		return correlation.Result{}, err
	}
	past, err := u.loadSpec(ctx, pastID, ErrPastJDNotFound)
	if err != nil {
		return correlation.Result{}, err
	}
	return correlation.Calculate(current, past), nil
}

// CalculateBid scores two tracked bids against each other. Bid skill names
// never went through the dictionary, so matching is case-insensitive instead
// of canonical.
func (u *Correlation) CalculateBid(ctx context.Context, currentID, pastID string) (correlation.Result, error) {
	current, err := u.bids.FindByID(ctx, currentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return correlation.Result{}, ErrCurrentBidNotFound
		}
		return correlation.Result{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	past, err := u.bids.FindByID(ctx, pastID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return correlation.Result{}, ErrPastBidNotFound
		}
		return correlation.Result{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return correlation.CalculateBidMatch(current, past), nil
}

func (u *Correlation) loadSpec(ctx context.Context, id string, notFound error) (*jdspec.Spec, error) {
	spec, err := u.specs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return spec, nil
}
