package domain

import "time"

const (
	EventCustomerRegistered    = "customer.registered"
	EventCustomerUpdated       = "customer.updated"
	EventCustomerStatusChanged = "customer.status_changed"
	EventProductCreated        = "product.created"
	EventProductStatusChanged  = "product.status_changed"
	EventProductDeleted        = "product.deleted"
)

const (
	EntityCustomer = "customer"
	EntityProduct  = "product"
)

// StatusEvent is published whenever a lifecycle flag flips (customer
// active, product availability) or an entity is created/removed. The audit
// worker consumes it and writes the audit trail.
type StatusEvent struct {
	EventType string    `json:"event_type"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Reason    string    `json:"reason"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
