package models

import (
	"time"

	"gorm.io/gorm"
)

type Cart struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"uniqueIndex" json:"userId"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type CartItem struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	CartID     uint              `gorm:"index" json:"-"`
	MenuItem   CartMenuItem      `gorm:"embedded;embeddedPrefix:menu_" json:"menuItem"`
	Quantity   int               `gorm:"default:1" json:"quantity"`
	Restaurant CartRestaurantRef `gorm:"embedded;embeddedPrefix:restaurant_" json:"restaurant"`
}

// CartMenuItem is a snapshot of the menu entry at the time it was added, so a
// later menu edit does not change what the customer agreed to pay.
type CartMenuItem struct {
	Name        string  `gorm:"type:varchar(150)" json:"name"`
	Price       float64 `json:"price"`
	Description string  `gorm:"type:text" json:"description"`
}

type CartRestaurantRef struct {
	ID      uint   `json:"id"`
	Name    string `gorm:"type:varchar(150)" json:"name"`
	Address string `gorm:"type:varchar(255)" json:"address"`
}

// RecalculateTotal recomputes the cart total from its items.
func (c *Cart) RecalculateTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.MenuItem.Price * float64(item.Quantity)
	}
	c.TotalAmount = total
}

// BeforeSave keeps the stored total consistent with the items.
func (c *Cart) BeforeSave(tx *gorm.DB) error {
	c.RecalculateTotal()
	return nil
}
