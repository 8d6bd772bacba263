package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MarcoBender/GrubGo/internal/pkg/env"
)

const geocodeTimeout = 10 * time.Second

// LocationController proxies forward-geocoding requests to LocationIQ so the
// API key never reaches the browser.
type LocationController struct {
	httpClient *http.Client
	baseURL    string
}

func NewLocationController() *LocationController {
	return &LocationController{
		httpClient: &http.Client{Timeout: geocodeTimeout},
		baseURL:    "https://us1.locationiq.com/v1/search.php",
	}
}

type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// HandleGeocode resolves a city name to coordinates.
func (l *LocationController) HandleGeocode(c *fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "City is required"})
	}

	query := url.Values{}
	query.Set("key", env.GetEnv("LOCATIONIQ_KEY", ""))
	query.Set("q", city)
	query.Set("format", "json")

	ctx, cancel := context.WithTimeout(c.UserContext(), geocodeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", l.baseURL, query.Encode()), nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "LocationIQ API error"})
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Printf("geocode request failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "LocationIQ API error"})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "LocationIQ API error"})
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "LocationIQ API error"})
	}
	if len(results) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}

	return c.JSON(fiber.Map{
		"lat":     results[0].Lat,
		"lon":     results[0].Lon,
		"address": results[0].DisplayName,
	})
}
