package repository

import (
	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByGoogleID(googleID string) (*models.User, error)
	GetByFacebookID(facebookID string) (*models.User, error)
	GetByResetTokenHash(hash string) (*models.User, error)
	Update(user *models.User) error
	ClearRefreshToken(id uint) error
}

// RestaurantRepository defines the interface for restaurant lookups
type RestaurantRepository interface {
	Create(restaurant *models.Restaurant) error
	GetByID(id uint) (*models.Restaurant, error)
	GetByAddress(address string) (*models.Restaurant, error)
	Filter(filter RestaurantFilter) ([]models.Restaurant, error)
	Nearby(lat, lon float64, radiusMeters float64) ([]models.Restaurant, error)
}

// RestaurantFilter narrows a restaurant listing; zero values mean "no filter".
type RestaurantFilter struct {
	Location  string // substring of the address
	Name      string // substring of the name
	Cuisine   string // exact match
	MinRating float64
}

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	GetOrCreateByUserID(userID uint) (*models.Cart, error)
	GetByUserID(userID uint) (*models.Cart, error)
	Save(cart *models.Cart) error
	DeleteItem(cartID, itemID uint) error
	ClearItems(cartID uint) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	Create(order *models.Order) error
	GetByPublicID(publicID string) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	List(limit int) ([]models.Order, error)
	Update(order *models.Order) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User       UserRepository
	Restaurant RestaurantRepository
	Cart       CartRepository
	Order      OrderRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Restaurant: NewRestaurantRepository(db),
		Cart:       NewCartRepository(db),
		Order:      NewOrderRepository(db),
	}
}
