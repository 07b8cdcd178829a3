package model

import "time"

// ContractDocument bundles everything the contract PDF needs.
type ContractDocument struct {
	Order Order
	User  User
	House House
}

// OrdersReport is the flattened input for the orders spreadsheet export.
type OrdersReport struct {
	GeneratedAt time.Time
	Orders      []Order
}
