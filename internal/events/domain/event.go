// Package domain defines the event feed entities: the outbox row written alongside every
// successful mutation and the typed payloads carried by each event type.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the delivery status of an event.
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusFailed    Status = "failed"
)

// Type names an event kind.
type Type string

// Event types emitted by the registry, template store, session manager and token ledger.
const (
	IssuerAdded      Type = "IssuerAdded"
	IssuerRemoved    Type = "IssuerRemoved"
	IssuerUpdated    Type = "IssuerUpdated"
	AdminTransferred Type = "AdminTransferred"
	Paused           Type = "Paused"
	Unpaused         Type = "Unpaused"

	TemplateCreated     Type = "TemplateCreated"
	TemplateUpdated     Type = "TemplateUpdated"
	TemplateDeactivated Type = "TemplateDeactivated"
	TemplateReactivated Type = "TemplateReactivated"

	SessionCreated         Type = "SessionCreated"
	SessionEnded           Type = "SessionEnded"
	SessionMintIncremented Type = "SessionMintIncremented"

	TokenMinted  Type = "TokenMinted"
	TokenRevoked Type = "TokenRevoked"
	BatchMinted  Type = "BatchMinted"
)

var knownTypes = map[Type]struct{}{
	IssuerAdded: {}, IssuerRemoved: {}, IssuerUpdated: {}, AdminTransferred: {}, Paused: {}, Unpaused: {},
	TemplateCreated: {}, TemplateUpdated: {}, TemplateDeactivated: {}, TemplateReactivated: {},
	SessionCreated: {}, SessionEnded: {}, SessionMintIncremented: {},
	TokenMinted: {}, TokenRevoked: {}, BatchMinted: {},
}

// IsKnown reports whether t is an event type this service emits.
func (t Type) IsKnown() bool {
	_, ok := knownTypes[t]
	return ok
}

// Event is a row of the transactional outbox.
type Event struct {
	ID          uuid.UUID
	Type        Type
	Payload     string
	Status      Status
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent builds a pending event with a JSON encoded payload.
func NewEvent(eventType Type, payload any, now time.Time) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}

	return &Event{
		ID:        uuid.Must(uuid.NewV7()),
		Type:      eventType,
		Payload:   string(data),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate reports why an event cannot be delivered: an unknown type or a payload that is
// not a JSON object.
func (e *Event) Validate() error {
	if !e.Type.IsKnown() {
		return fmt.Errorf("unknown event type %q", e.Type)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(e.Payload), &payload); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	return nil
}

// Message is the envelope delivered to publishers and stream subscribers.
type Message struct {
	ID        uuid.UUID       `json:"id"`
	Type      Type            `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Message converts the event into its delivery envelope. Call Validate first.
func (e *Event) Message() Message {
	return Message{
		ID:        e.ID,
		Type:      e.Type,
		Payload:   json.RawMessage(e.Payload),
		CreatedAt: e.CreatedAt,
	}
}
