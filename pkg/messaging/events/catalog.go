package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/catalog/pkg/messaging"
	"github.com/google/uuid"
)

// Action is the kind of change a RecordEvent reports.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Collection names the record collection an event belongs to.
type Collection string

const (
	CollectionUsers    Collection = "users"
	CollectionProducts Collection = "products"
)

// RecordEvent reports a committed create, update or delete of a record.
// Record is the record state after the change and is omitted for deletes.
type RecordEvent struct {
	Collection Collection `json:"collection"`
	Action     Action     `json:"action"`
	ID         uuid.UUID  `json:"id"`
	Record     any        `json:"record,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func (e RecordEvent) Subject() string {
	switch e.Collection {
	case CollectionUsers:
		switch e.Action {
		case ActionCreated:
			return messaging.UsersCreatedSubject
		case ActionUpdated:
			return messaging.UsersUpdatedSubject
		case ActionDeleted:
			return messaging.UsersDeletedSubject
		}
	case CollectionProducts:
		switch e.Action {
		case ActionCreated:
			return messaging.ProductsCreatedSubject
		case ActionUpdated:
			return messaging.ProductsUpdatedSubject
		case ActionDeleted:
			return messaging.ProductsDeletedSubject
		}
	}
	return "catalog." + string(e.Collection) + "." + string(e.Action)
}

func (e RecordEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// StockChangedEvent reports a committed stock adjustment.
type StockChangedEvent struct {
	ProductID   uuid.UUID `json:"product_id"`
	SKU         string    `json:"sku"`
	Delta       int       `json:"delta"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"is_available"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e StockChangedEvent) Subject() string {
	return messaging.ProductsStockChangedSubject
}

func (e StockChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
