package model

import "time"

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusApproved        OrderStatus = "APPROVED"
	OrderStatusInProgress      OrderStatus = "IN_PROGRESS"
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusPaid            OrderStatus = "PAID"
	OrderStatusAwaitingSignOff OrderStatus = "AWAITING_SIGN_OFF"
	OrderStatusSigned          OrderStatus = "SIGNED"
	OrderStatusCompleted       OrderStatus = "COMPLETED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	// OrderStatusSold marks the purchase of an already built house.
	OrderStatusSold OrderStatus = "SOLD"
)

type Order struct {
	ID             int64       `gorm:"column:id;primaryKey" json:"id"`
	IDUser         int64       `gorm:"column:id_user" json:"id_user"`
	IDHouse        int64       `gorm:"column:id_house" json:"id_house"`
	Status         OrderStatus `gorm:"column:status" json:"status"`
	ContractPrice  float64     `gorm:"column:contract_price" json:"contract_price"`
	CreateDate     time.Time   `gorm:"column:create_date" json:"create_date"`
	UpdateDate     *time.Time  `gorm:"column:update_date" json:"update_date,omitempty"`
	PaymentDate    *time.Time  `gorm:"column:payment_date" json:"payment_date,omitempty"`
	SignOffDate    *time.Time  `gorm:"column:sign_off_date" json:"sign_off_date,omitempty"`
	CompletionDate *time.Time  `gorm:"column:completion_date" json:"completion_date,omitempty"`

	User  *User  `gorm:"-" json:"user,omitempty"`
	House *House `gorm:"-" json:"house,omitempty"`
}

func (Order) TableName() string { return "orders" }
