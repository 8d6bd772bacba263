package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
	"github.com/MarcoBender/GrubGo/app/repository"
)

// CartController manages the per-user shopping cart. All routes are guarded
// by the access-token middleware plus an owner check on :userId.
type CartController struct {
	carts repository.CartRepository
}

func NewCartController(carts repository.CartRepository) *CartController {
	return &CartController{carts: carts}
}

type addCartItemRequest struct {
	MenuItem   models.CartMenuItem      `json:"menuItem"`
	Quantity   int                      `json:"quantity"`
	Restaurant models.CartRestaurantRef `json:"restaurant"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGet returns the user's cart, creating an empty one on first access.
func (ct *CartController) HandleGet(c *fiber.Ctx) error {
	userID := paramUserID(c)

	cart, err := ct.carts.GetOrCreateByUserID(userID)
	if err != nil {
		log.Printf("cart fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching cart"})
	}

	return c.JSON(cart)
}

// HandleAddItem adds an item, merging quantities when the same menu item from
// the same restaurant is already present.
func (ct *CartController) HandleAddItem(c *fiber.Ctx) error {
	userID := paramUserID(c)

	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if req.MenuItem.Name == "" || req.MenuItem.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Menu item details are required"})
	}
	if req.Restaurant.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Restaurant details are required"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	cart, err := ct.carts.GetOrCreateByUserID(userID)
	if err != nil {
		log.Printf("cart fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error adding item to cart"})
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].MenuItem.Name == req.MenuItem.Name && cart.Items[i].Restaurant.Name == req.Restaurant.Name {
			cart.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			CartID:     cart.ID,
			MenuItem:   req.MenuItem,
			Quantity:   req.Quantity,
			Restaurant: req.Restaurant,
		})
	}

	if err := ct.carts.Save(cart); err != nil {
		log.Printf("cart save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error adding item to cart"})
	}

	return c.JSON(cart)
}

// HandleUpdateItem sets the quantity of a cart item.
func (ct *CartController) HandleUpdateItem(c *fiber.Ctx) error {
	userID := paramUserID(c)

	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil || req.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Valid quantity is required"})
	}

	itemID, err := strconv.ParseUint(c.Params("itemId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid item id"})
	}

	cart, err := ct.carts.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Cart not found"})
		}
		log.Printf("cart fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating cart item"})
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == uint(itemID) {
			cart.Items[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Item not found in cart"})
	}

	if err := ct.carts.Save(cart); err != nil {
		log.Printf("cart save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating cart item"})
	}

	return c.JSON(cart)
}

// HandleRemoveItem deletes a single item from the cart.
func (ct *CartController) HandleRemoveItem(c *fiber.Ctx) error {
	userID := paramUserID(c)

	itemID, err := strconv.ParseUint(c.Params("itemId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid item id"})
	}

	cart, err := ct.carts.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Cart not found"})
		}
		log.Printf("cart fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error removing item from cart"})
	}

	if err := ct.carts.DeleteItem(cart.ID, uint(itemID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Item not found in cart"})
		}
		log.Printf("cart item delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error removing item from cart"})
	}

	cart, err = ct.carts.GetByUserID(userID)
	if err != nil {
		log.Printf("cart reload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error removing item from cart"})
	}
	if err := ct.carts.Save(cart); err != nil {
		log.Printf("cart save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error removing item from cart"})
	}

	return c.JSON(cart)
}

// HandleClear empties the cart.
func (ct *CartController) HandleClear(c *fiber.Ctx) error {
	userID := paramUserID(c)

	cart, err := ct.carts.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Cart not found"})
		}
		log.Printf("cart fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error clearing cart"})
	}

	if err := ct.carts.ClearItems(cart.ID); err != nil {
		log.Printf("cart clear failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error clearing cart"})
	}

	cart.Items = []models.CartItem{}
	if err := ct.carts.Save(cart); err != nil {
		log.Printf("cart save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error clearing cart"})
	}

	return c.JSON(cart)
}

// paramUserID reads the :userId route parameter. The owner-check middleware
// has already validated it.
func paramUserID(c *fiber.Ctx) uint {
	id, _ := strconv.ParseUint(c.Params("userId"), 10, 64)
	return uint(id)
}
