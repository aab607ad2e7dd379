package model

import "time"

type LikedBrewery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	BreweryID uint      `gorm:"not null;index" json:"breweryId"`
	CreatedAt time.Time `json:"createdAt"`
}
