package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/abgdnv/catalog/pkg/messaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RecordEvent_Subject(t *testing.T) {
	testCases := []struct {
		collection Collection
		action     Action
		expected   string
	}{
		{CollectionUsers, ActionCreated, messaging.UsersCreatedSubject},
		{CollectionUsers, ActionUpdated, messaging.UsersUpdatedSubject},
		{CollectionUsers, ActionDeleted, messaging.UsersDeletedSubject},
		{CollectionProducts, ActionCreated, messaging.ProductsCreatedSubject},
		{CollectionProducts, ActionUpdated, messaging.ProductsUpdatedSubject},
		{CollectionProducts, ActionDeleted, messaging.ProductsDeletedSubject},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			// given
			event := RecordEvent{Collection: tc.collection, Action: tc.action}
			// when
			subject := event.Subject()
			// then
			assert.Equal(t, tc.expected, subject)
		})
	}
}

func Test_StockChangedEvent_Payload(t *testing.T) {
	// given
	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	event := StockChangedEvent{
		ProductID:  id,
		SKU:        "WH-001",
		Delta:      -20,
		Stock:      30,
		OccurredAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	// when
	data, err := event.Payload()

	// then
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id.String(), decoded["product_id"])
	assert.EqualValues(t, -20, decoded["delta"])
	assert.EqualValues(t, 30, decoded["stock"])
	assert.Equal(t, false, decoded["is_available"])
	assert.Equal(t, messaging.ProductsStockChangedSubject, event.Subject())
}
