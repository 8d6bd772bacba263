package models

import "time"

type Restaurant struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(150);index" json:"name" validate:"required,max=150"`
	Latitude  float64    `gorm:"index:idx_restaurants_geo" json:"latitude"`
	Longitude float64    `gorm:"index:idx_restaurants_geo" json:"longitude"`
	Cuisine   string     `gorm:"type:varchar(100);index" json:"cuisine" validate:"required,max=100"`
	Cost      string     `gorm:"type:varchar(10)" json:"cost"` // $, $$, $$$
	Rating    float64    `gorm:"default:0" json:"rating"`
	Address   string     `gorm:"type:varchar(255)" json:"address"`
	Menu      []MenuItem `json:"menu"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type MenuItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	RestaurantID uint    `gorm:"index" json:"-"`
	Name         string  `gorm:"type:varchar(150)" json:"name"`
	Price        float64 `json:"price"`
	Description  string  `gorm:"type:text" json:"description"`
}
