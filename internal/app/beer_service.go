package app

import (
	"errors"
	"strings"

	"github.com/bpmutter/tappdin-backend/internal/model"
)

var ErrBeerNotFound = errors.New("beer not found")

type BeerStore interface {
	ListAll() ([]model.Beer, error)
	GetByID(id uint) (*model.Beer, error)
	ListByBreweryID(breweryID uint) ([]model.Beer, error)
	SearchByName(query string) ([]model.Beer, error)
	DeleteCascade(beerID uint) error
}

type BeerCheckinStore interface {
	ListByBeerID(beerID uint) ([]model.Checkin, error)
	ListTopRated(limit int) ([]model.Checkin, error)
}

type BeerService struct {
	beerRepo    BeerStore
	checkinRepo BeerCheckinStore
}

type BeerDetail struct {
	Beer     *model.Beer     `json:"beer"`
	Checkins []model.Checkin `json:"checkins"`
}

func NewBeerService(beerRepo BeerStore, checkinRepo BeerCheckinStore) *BeerService {
	return &BeerService{
		beerRepo:    beerRepo,
		checkinRepo: checkinRepo,
	}
}

func (s *BeerService) ListBeers() ([]model.Beer, error) {
	return s.beerRepo.ListAll()
}

func (s *BeerService) TopRated(limit int) ([]model.Checkin, error) {
	return s.checkinRepo.ListTopRated(limit)
}

func (s *BeerService) GetBeer(beerID uint) (*BeerDetail, error) {
	if beerID == 0 {
		return nil, ErrInvalidInput
	}

	beer, err := s.beerRepo.GetByID(beerID)
	if err != nil {
		return nil, err
	}
	if beer == nil {
		return nil, ErrBeerNotFound
	}

	checkins, err := s.checkinRepo.ListByBeerID(beerID)
	if err != nil {
		return nil, err
	}
	return &BeerDetail{Beer: beer, Checkins: checkins}, nil
}

func (s *BeerService) ListByBrewery(breweryID uint) ([]model.Beer, error) {
	if breweryID == 0 {
		return nil, ErrInvalidInput
	}
	return s.beerRepo.ListByBreweryID(breweryID)
}

func (s *BeerService) Search(query string) ([]model.Beer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}
	return s.beerRepo.SearchByName(query)
}

func (s *BeerService) DeleteBeer(beerID uint) (*model.Beer, error) {
	if beerID == 0 {
		return nil, ErrInvalidInput
	}

	beer, err := s.beerRepo.GetByID(beerID)
	if err != nil {
		return nil, err
	}
	if beer == nil {
		return nil, ErrBeerNotFound
	}

	if err := s.beerRepo.DeleteCascade(beerID); err != nil {
		return nil, err
	}
	return beer, nil
}
