package amqp

import (
	"encoding/json"
	"fmt"

	"budget/internal/store"
)

// Change events on the wire are plain JSON copies of store.Change. They
// carry no document fields: consumers re-query the store, so a stale or
// duplicated event costs one redundant snapshot and nothing else.

func EncodeChange(ch store.Change) ([]byte, error) {
	return json.Marshal(ch)
}

func DecodeChange(data []byte) (store.Change, error) {
	var ch store.Change
	if err := json.Unmarshal(data, &ch); err != nil {
		return store.Change{}, fmt.Errorf("unmarshal change: %w", err)
	}
	switch ch.Collection {
	case store.CollectionTransactions, store.CollectionCategories:
	default:
		return store.Change{}, fmt.Errorf("unknown collection %q", ch.Collection)
	}
	switch ch.Op {
	case store.OpCreate, store.OpDelete:
	default:
		return store.Change{}, fmt.Errorf("unknown op %q", ch.Op)
	}
	if ch.UserID == "" {
		return store.Change{}, fmt.Errorf("change without user id")
	}
	return ch, nil
}
