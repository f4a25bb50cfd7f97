package domain

// LineStatus represents whether a tax rate was found for a line item.
type LineStatus string

const (
	LineStatusResolved   LineStatus = "resolved"
	LineStatusUnresolved LineStatus = "unresolved"
)

// OrderStatus represents the aggregate resolution state of an order.
// An order is resolved only when every one of its lines is resolved.
type OrderStatus string

const (
	OrderStatusResolved   OrderStatus = "resolved"
	OrderStatusUnresolved OrderStatus = "unresolved"
)
