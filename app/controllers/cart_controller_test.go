package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoBender/GrubGo/app/repository"
)

func newCartTestApp(t *testing.T) *fiber.App {
	t.Helper()

	carts := repository.NewCartRepository(newTestDB(t))
	cart := NewCartController(carts)

	app := fiber.New()
	app.Get("/api/cart/:userId", cart.HandleGet)
	app.Post("/api/cart/:userId/items", cart.HandleAddItem)
	app.Put("/api/cart/:userId/items/:itemId", cart.HandleUpdateItem)
	app.Delete("/api/cart/:userId/items/:itemId", cart.HandleRemoveItem)
	app.Delete("/api/cart/:userId", cart.HandleClear)

	return app
}

func addCartItem(t *testing.T, app *fiber.App, userID uint, name string, price float64, quantity int) map[string]any {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/cart/%d/items", userID), fiber.Map{
		"menuItem":   fiber.Map{"name": name, "price": price},
		"quantity":   quantity,
		"restaurant": fiber.Map{"id": 1, "name": "Luigi's"},
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decodeBody(t, resp)
}

func TestCartGetCreatesEmptyCart(t *testing.T) {
	app := newCartTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cart/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["userId"])
	items, ok := body["items"].([]any)
	require.True(t, ok, "items must be an array, not null")
	assert.Empty(t, items)
	assert.Equal(t, float64(0), body["totalAmount"])
}

func TestCartAddItemComputesTotal(t *testing.T) {
	app := newCartTestApp(t)

	body := addCartItem(t, app, 1, "Margherita", 8.5, 2)
	assert.InDelta(t, 17.0, body["totalAmount"].(float64), 0.001)

	body = addCartItem(t, app, 1, "Cola", 2.5, 1)
	assert.InDelta(t, 19.5, body["totalAmount"].(float64), 0.001)
	assert.Len(t, body["items"].([]any), 2)
}

func TestCartAddItemMergesQuantity(t *testing.T) {
	app := newCartTestApp(t)

	addCartItem(t, app, 1, "Margherita", 8.5, 1)
	body := addCartItem(t, app, 1, "Margherita", 8.5, 2)

	items := body["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, float64(3), item["quantity"])
	assert.InDelta(t, 25.5, body["totalAmount"].(float64), 0.001)
}

func TestCartAddItemValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload fiber.Map
		message string
	}{
		{
			name:    "missing menu item",
			payload: fiber.Map{"restaurant": fiber.Map{"name": "Luigi's"}},
			message: "Menu item details are required",
		},
		{
			name:    "missing restaurant",
			payload: fiber.Map{"menuItem": fiber.Map{"name": "Margherita", "price": 8.5}},
			message: "Restaurant details are required",
		},
	}

	app := newCartTestApp(t)

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/cart/1/items", tc.payload), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.message, decodeBody(t, resp)["message"])
		})
	}
}

func TestCartUpdateItemQuantity(t *testing.T) {
	app := newCartTestApp(t)

	body := addCartItem(t, app, 1, "Margherita", 8.5, 1)
	item := body["items"].([]any)[0].(map[string]any)
	itemID := int(item["id"].(float64))

	resp, err := app.Test(jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/cart/1/items/%d", itemID), fiber.Map{
		"quantity": 5,
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.InDelta(t, 42.5, decodeBody(t, resp)["totalAmount"].(float64), 0.001)
}

func TestCartUpdateUnknownItem(t *testing.T) {
	app := newCartTestApp(t)
	addCartItem(t, app, 1, "Margherita", 8.5, 1)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/cart/1/items/999", fiber.Map{
		"quantity": 2,
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found in cart", decodeBody(t, resp)["message"])
}

func TestCartRemoveItem(t *testing.T) {
	app := newCartTestApp(t)

	body := addCartItem(t, app, 1, "Margherita", 8.5, 1)
	addCartItem(t, app, 1, "Cola", 2.5, 1)
	item := body["items"].([]any)[0].(map[string]any)
	itemID := int(item["id"].(float64))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/cart/1/items/%d", itemID), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	after := decodeBody(t, resp)
	assert.Len(t, after["items"].([]any), 1)
	assert.InDelta(t, 2.5, after["totalAmount"].(float64), 0.001)
}

func TestCartClear(t *testing.T) {
	app := newCartTestApp(t)
	addCartItem(t, app, 1, "Margherita", 8.5, 2)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/cart/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	items, ok := body["items"].([]any)
	require.True(t, ok, "items must be an array, not null")
	assert.Empty(t, items)
	assert.Equal(t, float64(0), body["totalAmount"])
}

func TestCartClearWithoutCart(t *testing.T) {
	app := newCartTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/cart/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Cart not found", decodeBody(t, resp)["message"])
}
