package model

import "time"

type Brewery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	City      string    `gorm:"size:64" json:"city"`
	State     string    `gorm:"size:64" json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
