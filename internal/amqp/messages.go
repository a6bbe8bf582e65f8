package amqp

import (
	"encoding/json"
	"time"
)

// SlotChangedMessage tells other tracker instances that a named storage
// slot was rewritten. It carries no payload: the receiver reloads the slot
// from its own storage, mirroring how a browser tab reacts to an external
// storage event.
type SlotChangedMessage struct {
	Slot      string    `json:"slot"`
	Origin    string    `json:"origin"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSlotChangedMessage(slot, origin string) *SlotChangedMessage {
	return &SlotChangedMessage{
		Slot:      slot,
		Origin:    origin,
		Timestamp: time.Now(),
	}
}

func (m *SlotChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SlotChangedMessageFromJSON(data []byte) (*SlotChangedMessage, error) {
	var msg SlotChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
