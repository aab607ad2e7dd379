package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bpmutter/tappdin-backend/internal/model"
)

var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrCheckinEnqueue   = errors.New("checkin enqueue failed")
)

type AsyncCheckinPublisher interface {
	Publish(ctx context.Context, checkin model.Checkin) error
}

type CheckinService struct {
	beerRepo  BeerStore
	publisher AsyncCheckinPublisher
	feedCache CheckinFeedCache
}

type CreateCheckinInput struct {
	UserID uint
	BeerID uint
	Rating int
	Review string
}

func NewCheckinService(beerRepo BeerStore, publisher AsyncCheckinPublisher, feedCache CheckinFeedCache) *CheckinService {
	return &CheckinService{
		beerRepo:  beerRepo,
		publisher: publisher,
		feedCache: feedCache,
	}
}

// CreateCheckin validates the check-in and hands it to the async persist
// queue. The row is written by the worker; the caller gets back the accepted
// check-in, not a stored id.
func (s *CheckinService) CreateCheckin(input CreateCheckinInput) (*model.Checkin, error) {
	if input.UserID == 0 || input.BeerID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrRatingOutOfRange
	}

	beer, err := s.beerRepo.GetByID(input.BeerID)
	if err != nil {
		return nil, err
	}
	if beer == nil {
		return nil, ErrBeerNotFound
	}

	checkin := &model.Checkin{
		UserID:    input.UserID,
		BeerID:    input.BeerID,
		Rating:    input.Rating,
		Review:    strings.TrimSpace(input.Review),
		CreatedAt: time.Now(),
	}

	if s.publisher == nil {
		return nil, ErrCheckinEnqueue
	}
	ctx := context.Background()
	if s.feedCache != nil {
		_ = s.feedCache.MarkDirty(ctx, input.UserID)
		_ = s.feedCache.DeleteFeed(ctx, input.UserID)
	}
	if err := s.publisher.Publish(ctx, *checkin); err != nil {
		return nil, ErrCheckinEnqueue
	}

	return checkin, nil
}
