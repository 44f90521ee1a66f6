package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderServed    OrderStatus = "served"
)

// Valid reports whether s is one of the three known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderServed:
		return true
	}
	return false
}

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	TableNumber int         `json:"table_number" gorm:"not null;index"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Notes       string      `json:"notes,omitempty"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt   time.Time   `json:"created_at"`
}
