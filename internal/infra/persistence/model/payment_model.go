package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentModel mirrors the 'payments' table. Failed attempts are stored
// alongside completed ones, so receipt_number is nullable-unique.
type PaymentModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Method          string     `gorm:"type:varchar(20);not null"`
	Operator        string     `gorm:"type:varchar(20)"`
	PhoneNumber     string     `gorm:"type:varchar(30)"`
	Amount          float64    `gorm:"not null"`
	Status          string     `gorm:"type:varchar(20);not null"`
	ReceiptNumber   *string    `gorm:"type:varchar(64);unique"`
	CustomerID      *uuid.UUID `gorm:"type:uuid;index"`
	CustomerEmail   string     `gorm:"type:varchar(255)"`
	DeliveryAddress string     `gorm:"type:varchar(255)"`
	PaymentDate     time.Time  `gorm:"not null"`

	Items []OrderItemModel `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PaymentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(100);not null"`
	Quantity    int       `gorm:"not null"`
	Price       float64   `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
