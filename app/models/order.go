package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	ORDER_STATUS_CONFIRMED        = "confirmed"
	ORDER_STATUS_PREPARING        = "preparing"
	ORDER_STATUS_OUT_FOR_DELIVERY = "out_for_delivery"
	ORDER_STATUS_DELIVERED        = "delivered"
	ORDER_STATUS_CANCELLED        = "cancelled"

	PAYMENT_METHOD_CARD = "card"
	PAYMENT_METHOD_UPI  = "upi"
	PAYMENT_METHOD_COD  = "cod"

	PAYMENT_STATUS_PENDING = "pending"
	PAYMENT_STATUS_PAID    = "paid"
	PAYMENT_STATUS_FAILED  = "failed"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case ORDER_STATUS_CONFIRMED, ORDER_STATUS_PREPARING, ORDER_STATUS_OUT_FOR_DELIVERY,
		ORDER_STATUS_DELIVERED, ORDER_STATUS_CANCELLED:
		return true
	}
	return false
}

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	PublicID    string `gorm:"type:varchar(36);uniqueIndex" json:"id"`
	OrderNumber string `gorm:"type:varchar(32);uniqueIndex" json:"orderId"`

	DeliveryInfo DeliveryInfo `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryInfo"`
	Items        []OrderItem  `json:"items"`
	TotalAmount  float64      `json:"totalAmount"`

	PaymentMethod    string `gorm:"type:varchar(10);default:'card'" json:"paymentMethod"`
	PaymentStatus    string `gorm:"type:varchar(10);default:'pending'" json:"paymentStatus"`
	PaymentReference string `gorm:"type:varchar(100);default:null" json:"paymentReference,omitempty"`

	OrderStatus string     `gorm:"type:varchar(20);default:'confirmed'" json:"orderStatus"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	DeliveredAt *time.Time `gorm:"type:timestamp;default:null" json:"deliveredAt,omitempty"`
	CancelledAt *time.Time `gorm:"type:timestamp;default:null" json:"cancelledAt,omitempty"`
}

type DeliveryInfo struct {
	Name         string `gorm:"type:varchar(150)" json:"name" validate:"required"`
	Email        string `gorm:"type:varchar(200)" json:"email"`
	Phone        string `gorm:"type:varchar(30)" json:"phone" validate:"required"`
	Address      string `gorm:"type:varchar(255)" json:"address" validate:"required"`
	City         string `gorm:"type:varchar(100)" json:"city" validate:"required"`
	Pincode      string `gorm:"type:varchar(20)" json:"pincode" validate:"required"`
	Instructions string `gorm:"type:text" json:"instructions"`
	UserID       uint   `gorm:"index" json:"userId"`
}

type OrderItem struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	OrderID    uint              `gorm:"index" json:"-"`
	MenuItem   CartMenuItem      `gorm:"embedded;embeddedPrefix:menu_" json:"menuItem"`
	Quantity   int               `gorm:"default:1" json:"quantity"`
	Restaurant CartRestaurantRef `gorm:"embedded;embeddedPrefix:restaurant_" json:"restaurant"`
}

// NewOrderIdentifiers returns the opaque public id and the human-facing order
// number for a freshly placed order.
func NewOrderIdentifiers() (publicID string, orderNumber string) {
	publicID = uuid.NewString()
	orderNumber = fmt.Sprintf("ORD%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
	return publicID, orderNumber
}
