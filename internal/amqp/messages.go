package amqp

import (
	"encoding/json"
	"time"

	"bizledger/internal/core"
)

// ChangeMessage is the wire form of a store change. It names the entity but
// does not carry it; consumers read the current state from their own store.
type ChangeMessage struct {
	Store     string    `json:"store"`
	Op        string    `json:"op"`
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Revision  uint64    `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(c core.Change) *ChangeMessage {
	return &ChangeMessage{
		Store:     c.Store,
		Op:        c.Op,
		Entity:    c.Entity,
		ID:        c.ID,
		Revision:  c.Revision,
		Timestamp: time.Now(),
	}
}

// Change converts the message back to a core.Change.
func (m *ChangeMessage) Change() core.Change {
	return core.Change{Store: m.Store, Op: m.Op, Entity: m.Entity, ID: m.ID, Revision: m.Revision}
}

// RoutingKey returns "<prefix>.<store>.<entity>.<op>".
func (m *ChangeMessage) RoutingKey(prefix string) string {
	return prefix + "." + m.Store + "." + m.Entity + "." + m.Op
}

// BindingKey matches every routing key under prefix.
func BindingKey(prefix string) string {
	return prefix + ".#"
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
