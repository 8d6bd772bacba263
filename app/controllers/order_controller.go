package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
	"github.com/MarcoBender/GrubGo/app/repository"
	"github.com/MarcoBender/GrubGo/internal/pkg/usercontext"
)

// listOrdersLimit caps the admin-style listing to the most recent orders.
const listOrdersLimit = 100

// OrderController handles order placement and tracking.
type OrderController struct {
	orders repository.OrderRepository
}

func NewOrderController(orders repository.OrderRepository) *OrderController {
	return &OrderController{orders: orders}
}

type createOrderRequest struct {
	DeliveryInfo   models.DeliveryInfo `json:"deliveryInfo"`
	CartItems      []orderItemPayload  `json:"cartItems"`
	TotalAmount    float64             `json:"totalAmount"`
	PaymentMethod  string              `json:"paymentMethod"`
	PaymentDetails string              `json:"paymentDetails"`
}

type orderItemPayload struct {
	MenuItem   models.CartMenuItem      `json:"menuItem"`
	Quantity   int                      `json:"quantity"`
	Restaurant models.CartRestaurantRef `json:"restaurant"`
}

type updateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

// HandleCreate places a new order for the authenticated user.
func (o *OrderController) HandleCreate(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	if req.DeliveryInfo.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "User ID is required"})
	}
	if req.DeliveryInfo.UserID != usercontext.GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Forbidden"})
	}
	if len(req.CartItems) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Order items are required"})
	}

	method := req.PaymentMethod
	switch method {
	case models.PAYMENT_METHOD_CARD, models.PAYMENT_METHOD_UPI, models.PAYMENT_METHOD_COD:
	case "":
		method = models.PAYMENT_METHOD_CARD
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid payment method"})
	}

	// Cash on delivery stays pending until handover; everything else is
	// treated as settled by the (out of scope) payment front end.
	paymentStatus := models.PAYMENT_STATUS_PAID
	if method == models.PAYMENT_METHOD_COD {
		paymentStatus = models.PAYMENT_STATUS_PENDING
	}

	publicID, orderNumber := models.NewOrderIdentifiers()

	items := make([]models.OrderItem, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, models.OrderItem{
			MenuItem:   item.MenuItem,
			Quantity:   item.Quantity,
			Restaurant: item.Restaurant,
		})
	}

	order := &models.Order{
		PublicID:         publicID,
		OrderNumber:      orderNumber,
		DeliveryInfo:     req.DeliveryInfo,
		Items:            items,
		TotalAmount:      req.TotalAmount,
		PaymentMethod:    method,
		PaymentStatus:    paymentStatus,
		PaymentReference: req.PaymentDetails,
		OrderStatus:      models.ORDER_STATUS_CONFIRMED,
	}

	if err := o.orders.Create(order); err != nil {
		log.Printf("order create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error creating order"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Order created successfully",
		"orderId":     order.PublicID,
		"orderNumber": order.OrderNumber,
	})
}

// HandleUserOrders returns the authenticated user's orders, newest first.
// The user id may arrive as a query parameter or a path parameter.
func (o *OrderController) HandleUserOrders(c *fiber.Ctx) error {
	raw := c.Query("userId")
	if raw == "" {
		raw = c.Params("userId")
	}
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User ID is required"})
	}

	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	if uint(userID) != usercontext.GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}

	orders, err := o.orders.GetByUserID(uint(userID))
	if err != nil {
		log.Printf("user orders fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching user orders"})
	}

	return c.JSON(fiber.Map{"orders": orders})
}

// HandleListAll returns the most recent orders across all users.
func (o *OrderController) HandleListAll(c *fiber.Ctx) error {
	orders, err := o.orders.List(listOrdersLimit)
	if err != nil {
		log.Printf("order listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching orders"})
	}

	return c.JSON(orders)
}

// HandleGet returns a single order by its public id.
func (o *OrderController) HandleGet(c *fiber.Ctx) error {
	order, ok := o.loadOwnOrder(c)
	if !ok {
		return nil
	}

	return c.JSON(fiber.Map{"order": order})
}

// HandleUpdateStatus moves an order through its delivery states.
func (o *OrderController) HandleUpdateStatus(c *fiber.Ctx) error {
	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil || !models.ValidOrderStatus(req.OrderStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order status"})
	}

	order, err := o.orders.GetByPublicID(c.Params("orderId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		}
		log.Printf("order lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating order status"})
	}

	order.OrderStatus = req.OrderStatus
	if req.OrderStatus == models.ORDER_STATUS_DELIVERED {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := o.orders.Update(order); err != nil {
		log.Printf("order status update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating order status"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Order status updated", "order": order})
}

// HandleCancel cancels an order unless it was already delivered.
func (o *OrderController) HandleCancel(c *fiber.Ctx) error {
	order, ok := o.loadOwnOrder(c)
	if !ok {
		return nil
	}

	if order.OrderStatus == models.ORDER_STATUS_DELIVERED {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot cancel delivered orders"})
	}

	now := time.Now()
	order.OrderStatus = models.ORDER_STATUS_CANCELLED
	order.CancelledAt = &now

	if err := o.orders.Update(order); err != nil {
		log.Printf("order cancel failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error cancelling order"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Order cancelled successfully", "order": order})
}

// loadOwnOrder resolves :orderId and enforces that the authenticated user
// placed the order. When ok is false the response has already been written.
func (o *OrderController) loadOwnOrder(c *fiber.Ctx) (*models.Order, bool) {
	order, err := o.orders.GetByPublicID(c.Params("orderId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
			return nil, false
		}
		log.Printf("order lookup failed: %v", err)
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching order"})
		return nil, false
	}

	if order.DeliveryInfo.UserID != usercontext.GetUserID(c) {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
		return nil, false
	}

	return order, true
}
