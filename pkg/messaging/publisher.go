package messaging

import (
	"context"
)

const (
	UsersCreatedSubject         = "catalog.users.created"
	UsersUpdatedSubject         = "catalog.users.updated"
	UsersDeletedSubject         = "catalog.users.deleted"
	ProductsCreatedSubject      = "catalog.products.created"
	ProductsUpdatedSubject      = "catalog.products.updated"
	ProductsDeletedSubject      = "catalog.products.deleted"
	ProductsStockChangedSubject = "catalog.products.stock_changed"

	// CatalogSubjects matches every subject above.
	CatalogSubjects = "catalog.>"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
