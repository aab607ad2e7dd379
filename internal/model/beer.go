package model

import "time"

type Beer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BreweryID   uint      `gorm:"not null;index" json:"breweryId"`
	BeerTypeID  uint      `gorm:"not null;index" json:"beerTypeId"`
	Name        string    `gorm:"size:128;not null;index" json:"name"`
	ABV         float64   `json:"abv"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Brewery  *Brewery  `gorm:"foreignKey:BreweryID" json:"brewery,omitempty"`
	BeerType *BeerType `gorm:"foreignKey:BeerTypeID" json:"beerType,omitempty"`
}
