package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
)

// cartRepository implements the CartRepository interface
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository instance
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetOrCreateByUserID loads the user's cart, creating an empty one on first access.
func (r *cartRepository) GetOrCreateByUserID(userID uint) (*models.Cart, error) {
	cart, err := r.GetByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save persists the cart and its items; the total is recomputed by the model hook.
func (r *cartRepository) Save(cart *models.Cart) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}

// DeleteItem removes a single item row from the cart.
func (r *cartRepository) DeleteItem(cartID, itemID uint) error {
	res := r.db.Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearItems removes every item from the cart.
func (r *cartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
