package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
	"github.com/MarcoBender/GrubGo/app/repository"
	"github.com/MarcoBender/GrubGo/internal/pkg/cache"
)

const (
	// nearbyRadiusMeters is the fixed search radius for the nearby endpoint.
	nearbyRadiusMeters = 5000

	restaurantListCacheKey = "restaurants:list:all"
	restaurantListCacheTTL = 5 * time.Minute
)

// RestaurantController serves the restaurant catalogue: filtered listings,
// geo search and detail lookups.
type RestaurantController struct {
	restaurants repository.RestaurantRepository
}

func NewRestaurantController(restaurants repository.RestaurantRepository) *RestaurantController {
	return &RestaurantController{restaurants: restaurants}
}

// HandleList returns restaurants, optionally narrowed by location, name,
// cuisine and minimum rating. The unfiltered listing is cached.
func (r *RestaurantController) HandleList(c *fiber.Ctx) error {
	filter := repository.RestaurantFilter{
		Location: c.Query("location"),
		Name:     c.Query("name"),
		Cuisine:  c.Query("cuisine"),
	}
	if raw := c.Query("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "minRating must be a number"})
		}
		filter.MinRating = rating
	}

	unfiltered := filter == (repository.RestaurantFilter{})
	if unfiltered {
		if cached, err := cache.Get(restaurantListCacheKey); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}
	}

	restaurants, err := r.restaurants.Filter(filter)
	if err != nil {
		log.Printf("restaurant listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching restaurants"})
	}

	if unfiltered {
		if payload, err := json.Marshal(restaurants); err == nil {
			if err := cache.Set(restaurantListCacheKey, payload, restaurantListCacheTTL); err != nil {
				log.Printf("restaurant list cache write failed: %v", err)
			}
		}
	}

	return c.JSON(restaurants)
}

// HandleNearby returns restaurants within 5 km of the given point.
func (r *RestaurantController) HandleNearby(c *fiber.Ctx) error {
	rawLat, rawLon := c.Query("lat"), c.Query("lon")
	if rawLat == "" || rawLon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "lat and lon are required"})
	}

	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lon, errLon := strconv.ParseFloat(rawLon, 64)
	if errLat != nil || errLon != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "lat and lon must be numbers"})
	}

	restaurants, err := r.restaurants.Nearby(lat, lon, nearbyRadiusMeters)
	if err != nil {
		log.Printf("nearby restaurant search failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching nearby restaurants"})
	}

	return c.JSON(restaurants)
}

// HandleGet returns a single restaurant by numeric id, falling back to an
// exact address match for non-numeric identifiers.
func (r *RestaurantController) HandleGet(c *fiber.Ctx) error {
	raw := c.Params("id")

	var restaurant *models.Restaurant
	var err error
	if id, parseErr := strconv.ParseUint(raw, 10, 64); parseErr == nil {
		restaurant, err = r.restaurants.GetByID(uint(id))
	} else {
		restaurant, err = r.restaurants.GetByAddress(raw)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Restaurant not found"})
		}
		log.Printf("restaurant lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching restaurant"})
	}

	return c.JSON(restaurant)
}
