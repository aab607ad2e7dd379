package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bpmutter/tappdin-backend/internal/model"
)

type BeerRepository struct {
	db *gorm.DB
}

func NewBeerRepository(db *gorm.DB) *BeerRepository {
	return &BeerRepository{db: db}
}

func (r *BeerRepository) ListAll() ([]model.Beer, error) {
	var beers []model.Beer
	if err := r.db.Preload("Brewery").Preload("BeerType").Find(&beers).Error; err != nil {
		return nil, fmt.Errorf("list beers failed: %w", err)
	}
	return beers, nil
}

func (r *BeerRepository) GetByID(id uint) (*model.Beer, error) {
	var beer model.Beer
	if err := r.db.Preload("Brewery").Preload("BeerType").First(&beer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query beer by id failed: %w", err)
	}
	return &beer, nil
}

func (r *BeerRepository) ListByBreweryID(breweryID uint) ([]model.Beer, error) {
	var beers []model.Beer
	err := r.db.
		Where("brewery_id = ?", breweryID).
		Preload("Brewery").
		Preload("BeerType").
		Find(&beers).Error
	if err != nil {
		return nil, fmt.Errorf("list beers by brewery failed: %w", err)
	}
	return beers, nil
}

func (r *BeerRepository) SearchByName(query string) ([]model.Beer, error) {
	var beers []model.Beer
	err := r.db.
		Where("name LIKE ?", "%"+query+"%").
		Preload("Brewery").
		Preload("BeerType").
		Find(&beers).Error
	if err != nil {
		return nil, fmt.Errorf("search beers failed: %w", err)
	}
	return beers, nil
}

// DeleteCascade removes the beer and its check-ins in one transaction so no
// check-in ever references a beer row that is gone.
func (r *BeerRepository) DeleteCascade(beerID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("beer_id = ?", beerID).Delete(&model.Checkin{}).Error; err != nil {
			return fmt.Errorf("delete beer checkins failed: %w", err)
		}
		if err := tx.Delete(&model.Beer{}, beerID).Error; err != nil {
			return fmt.Errorf("delete beer failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cascade delete beer failed: %w", err)
	}
	return nil
}
