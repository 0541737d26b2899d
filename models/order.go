package models

import "time"

// OrderStatus represents all possible states of an order, from the in-progress
// cart through payment to a terminal state.
type OrderStatus string

const (
	StatusCart      OrderStatus = "cart"
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          uint        `json:"user_id" gorm:"not null"`
	User            *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID    uint        `json:"restaurant_id" gorm:"not null"`
	Restaurant      *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'cart'"`
	TotalAmount     float64     `json:"total_amount" gorm:"default:0"`
	PaymentIntentID string      `json:"-"`
	OrderItems      []OrderItem `json:"order_items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	OrderID      uint    `json:"order_id" gorm:"not null"`
	MenuItemID   uint    `json:"menu_item_id" gorm:"not null"`
	Quantity     int     `json:"quantity" gorm:"not null"`
	PriceAtTime  float64 `json:"price_at_time" gorm:"not null"` // snapshot price at add-time
	MenuItemName string  `json:"menu_item_name"`                // snapshot name
}

// CalculateTotal recomputes the order total from its line items.
func (o *Order) CalculateTotal() float64 {
	var total float64
	for _, item := range o.OrderItems {
		total += item.PriceAtTime * float64(item.Quantity)
	}
	o.TotalAmount = total
	return total
}

// HasItems reports whether the order carries at least one line item.
// A zero-item cart is kept in cart status, callers display it as "no cart".
func (o *Order) HasItems() bool {
	return len(o.OrderItems) > 0
}
