package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/bpmutter/tappdin-backend/internal/model"
)

type CheckinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

func (r *CheckinRepository) Create(checkin *model.Checkin) error {
	if err := r.db.Create(checkin).Error; err != nil {
		return fmt.Errorf("create checkin failed: %w", err)
	}
	return nil
}

func (r *CheckinRepository) ListByUserID(userID uint) ([]model.Checkin, error) {
	var checkins []model.Checkin
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Beer").
		Preload("Beer.Brewery").
		Order("created_at DESC").
		Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("list checkins by user failed: %w", err)
	}
	return checkins, nil
}

func (r *CheckinRepository) ListByBeerID(beerID uint) ([]model.Checkin, error) {
	var checkins []model.Checkin
	err := r.db.
		Where("beer_id = ?", beerID).
		Preload("Beer").
		Preload("Beer.Brewery").
		Order("created_at DESC").
		Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("list checkins by beer failed: %w", err)
	}
	return checkins, nil
}

func (r *CheckinRepository) ListTopRated(limit int) ([]model.Checkin, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var checkins []model.Checkin
	err := r.db.
		Preload("Beer").
		Preload("Beer.Brewery").
		Order("rating DESC").
		Limit(limit).
		Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("list top rated checkins failed: %w", err)
	}
	return checkins, nil
}
