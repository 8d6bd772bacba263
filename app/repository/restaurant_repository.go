package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
)

// restaurantRepository implements the RestaurantRepository interface
type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository instance
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *restaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.Preload("Menu").First(&restaurant, id).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetByAddress retrieves a restaurant by its exact address. Used as a
// fallback when a detail lookup receives a non-numeric identifier.
func (r *restaurantRepository) GetByAddress(address string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.Preload("Menu").Where("address = ?", address).First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Filter returns restaurants matching the given filter; empty filter fields
// are ignored.
func (r *restaurantRepository) Filter(filter RestaurantFilter) ([]models.Restaurant, error) {
	query := r.db.Preload("Menu")

	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where("address LIKE ?", "%"+loc+"%")
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if cuisine := strings.TrimSpace(filter.Cuisine); cuisine != "" {
		query = query.Where("cuisine = ?", cuisine)
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}

	var restaurants []models.Restaurant
	err := query.Find(&restaurants).Error
	return restaurants, err
}

// Nearby returns restaurants within radiusMeters of the given point, closest
// first. The distance computation is delegated to MySQL.
func (r *restaurantRepository) Nearby(lat, lon float64, radiusMeters float64) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	// POINT takes (longitude, latitude)
	err := r.db.Preload("Menu").
		Where("ST_Distance_Sphere(POINT(longitude, latitude), POINT(?, ?)) <= ?", lon, lat, radiusMeters).
		Order(fmt.Sprintf("ST_Distance_Sphere(POINT(longitude, latitude), POINT(%f, %f))", lon, lat)).
		Find(&restaurants).Error
	return restaurants, err
}
