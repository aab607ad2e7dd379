package model

import "time"

type Checkin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	BeerID    uint      `gorm:"not null;index" json:"beerId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Review    string    `gorm:"type:text" json:"review"`
	CreatedAt time.Time `json:"createdAt"`

	Beer *Beer `gorm:"foreignKey:BeerID" json:"beer,omitempty"`
}
