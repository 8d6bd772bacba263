package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoBender/GrubGo/app/models"
	"github.com/MarcoBender/GrubGo/app/repository"
	"github.com/MarcoBender/GrubGo/internal/pkg/usercontext"
)

// asUser mimics the access-token middleware for a fixed user id.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:     id,
			Name:       "Ada",
			Email:      "ada@example.com",
			IsLoggedIn: true,
		})
		return c.Next()
	}
}

func newOrderTestApp(t *testing.T, userID uint) *fiber.App {
	t.Helper()

	orders := repository.NewOrderRepository(newTestDB(t))
	order := NewOrderController(orders)

	app := fiber.New()
	grp := app.Group("/api/orders", asUser(userID))
	grp.Post("/create-order", order.HandleCreate)
	grp.Get("/user-orders", order.HandleUserOrders)
	grp.Get("/", order.HandleListAll)
	grp.Get("/:orderId", order.HandleGet)
	grp.Patch("/:orderId/status", order.HandleUpdateStatus)
	grp.Patch("/:orderId/cancel", order.HandleCancel)

	return app
}

func placeOrder(t *testing.T, app *fiber.App, userID uint, paymentMethod string) map[string]any {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/orders/create-order", fiber.Map{
		"deliveryInfo": fiber.Map{
			"name":    "Ada",
			"phone":   "12345",
			"address": "Baker Street 1",
			"city":    "London",
			"pincode": "NW1",
			"userId":  userID,
		},
		"cartItems": []fiber.Map{
			{
				"menuItem":   fiber.Map{"name": "Margherita", "price": 8.5},
				"quantity":   2,
				"restaurant": fiber.Map{"id": 1, "name": "Luigi's"},
			},
		},
		"totalAmount":   17.0,
		"paymentMethod": paymentMethod,
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
	return body
}

func TestOrderCreate(t *testing.T) {
	app := newOrderTestApp(t, 1)

	body := placeOrder(t, app, 1, models.PAYMENT_METHOD_CARD)
	assert.Len(t, body["orderId"].(string), 36)
	assert.Regexp(t, `^ORD\d+$`, body["orderNumber"])
}

func TestOrderCreateRejectsForeignUser(t *testing.T) {
	app := newOrderTestApp(t, 1)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/orders/create-order", fiber.Map{
		"deliveryInfo": fiber.Map{"name": "Eve", "userId": 2},
		"cartItems": []fiber.Map{
			{"menuItem": fiber.Map{"name": "Margherita", "price": 8.5}, "quantity": 1},
		},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestOrderCreateInvalidPaymentMethod(t *testing.T) {
	app := newOrderTestApp(t, 1)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/orders/create-order", fiber.Map{
		"deliveryInfo": fiber.Map{"name": "Ada", "userId": 1},
		"cartItems": []fiber.Map{
			{"menuItem": fiber.Map{"name": "Margherita", "price": 8.5}, "quantity": 1},
		},
		"paymentMethod": "barter",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid payment method", decodeBody(t, resp)["message"])
}

func TestOrderCodStaysPaymentPending(t *testing.T) {
	app := newOrderTestApp(t, 1)

	body := placeOrder(t, app, 1, models.PAYMENT_METHOD_COD)
	publicID := body["orderId"].(string)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/orders/"+publicID, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	order := decodeBody(t, resp)["order"].(map[string]any)
	assert.Equal(t, models.PAYMENT_STATUS_PENDING, order["paymentStatus"])
	assert.Equal(t, models.ORDER_STATUS_CONFIRMED, order["orderStatus"])
}

func TestOrderUserOrdersNewestFirst(t *testing.T) {
	app := newOrderTestApp(t, 1)
	placeOrder(t, app, 1, models.PAYMENT_METHOD_CARD)
	placeOrder(t, app, 1, models.PAYMENT_METHOD_CARD)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/orders/user-orders?userId=1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	orders := decodeBody(t, resp)["orders"].([]any)
	assert.Len(t, orders, 2)
}

func TestOrderUserOrdersForbiddenForOthers(t *testing.T) {
	app := newOrderTestApp(t, 1)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/orders/user-orders?userId=2", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestOrderGetUnknown(t *testing.T) {
	app := newOrderTestApp(t, 1)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/orders/no-such-order", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Order not found", decodeBody(t, resp)["message"])
}

func TestOrderStatusTransitions(t *testing.T) {
	app := newOrderTestApp(t, 1)
	publicID := placeOrder(t, app, 1, models.PAYMENT_METHOD_CARD)["orderId"].(string)

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/api/orders/"+publicID+"/status", fiber.Map{
		"orderStatus": models.ORDER_STATUS_DELIVERED,
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	order := decodeBody(t, resp)["order"].(map[string]any)
	assert.Equal(t, models.ORDER_STATUS_DELIVERED, order["orderStatus"])
	assert.NotNil(t, order["deliveredAt"])
}

func TestOrderStatusRejectsUnknownState(t *testing.T) {
	app := newOrderTestApp(t, 1)
	publicID := placeOrder(t, app, 1, models.PAYMENT_METHOD_CARD)["orderId"].(string)

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/api/orders/"+publicID+"/status", fiber.Map{
		"orderStatus": "shipped",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid order status", decodeBody(t, resp)["message"])
}

func TestOrderCancel(t *testing.T) {
	app := newOrderTestApp(t, 1)
	publicID := placeOrder(t, app, 1, models.PAYMENT_METHOD_CARD)["orderId"].(string)

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/api/orders/"+publicID+"/cancel", fiber.Map{}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	order := decodeBody(t, resp)["order"].(map[string]any)
	assert.Equal(t, models.ORDER_STATUS_CANCELLED, order["orderStatus"])
	assert.NotNil(t, order["cancelledAt"])
}

func TestOrderCancelDeliveredRefused(t *testing.T) {
	app := newOrderTestApp(t, 1)
	publicID := placeOrder(t, app, 1, models.PAYMENT_METHOD_CARD)["orderId"].(string)

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/api/orders/"+publicID+"/status", fiber.Map{
		"orderStatus": models.ORDER_STATUS_DELIVERED,
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/api/orders/"+publicID+"/cancel", fiber.Map{}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot cancel delivered orders", decodeBody(t, resp)["message"])
}
