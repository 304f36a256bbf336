package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

const (
	EventTypeRoundStarted      = "RoundStarted"
	EventTypePersonArrived     = "PersonArrived"
	EventTypePersonBoarded     = "PersonBoarded"
	EventTypePersonDisembarked = "PersonDisembarked"
	EventTypeElevatorMoved     = "ElevatorMoved"
	EventTypeRoundEnded        = "RoundEnded"
)

// Payload keys used by Filter predicates.
const (
	payloadKeyRunID = "RunID"
	payloadKeyRound = "Round"
)

type RoundStarted struct {
	RunID string
	Round int
}

type PersonArrived struct {
	RunID    string
	Round    int
	PersonID string
	Start    int
	Target   int
}

type PersonBoarded struct {
	RunID    string
	Round    int
	PersonID string
	Elevator int
	Floor    int
	WaitTime int
}

type PersonDisembarked struct {
	RunID    string
	Round    int
	PersonID string
	Elevator int
	Floor    int
	WaitTime int
}

type ElevatorMoved struct {
	RunID      string
	Round      int
	Elevator   int
	Direction  string
	Floor      int
	Passengers int
}

type RoundEnded struct {
	RunID string
	Round int
}

// EventMetadata links the events of one run: CorrelationID is the run ID and
// CausationID points at the previous event of the run, or the run ID for the first one.
type EventMetadata struct {
	MessageID     string
	CausationID   string
	CorrelationID string
}

func buildEventMetadata(messageID, causationID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// storableEventFrom encodes a payload and its metadata.
func storableEventFrom(eventType string, occurredAt time.Time, payload any, metadata EventMetadata) (StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(payload)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingEventFailed, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingEventFailed, err)
	}

	return BuildStorableEvent(eventType, occurredAt, payloadJSON, metadataJSON)
}

// EventMetadataFrom decodes the metadata of a StorableEvent.
func EventMetadataFrom(event StorableEvent) (EventMetadata, error) {
	metadata := EventMetadata{}
	if err := jsoniter.ConfigFastest.Unmarshal(event.MetadataJSON, &metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingEventFailed, err)
	}

	return metadata, nil
}

// DomainEventFrom decodes the payload of a StorableEvent into the struct matching its type.
func DomainEventFrom(event StorableEvent) (any, error) {
	switch event.EventType {
	case EventTypeRoundStarted:
		return decodePayload[RoundStarted](event)
	case EventTypePersonArrived:
		return decodePayload[PersonArrived](event)
	case EventTypePersonBoarded:
		return decodePayload[PersonBoarded](event)
	case EventTypePersonDisembarked:
		return decodePayload[PersonDisembarked](event)
	case EventTypeElevatorMoved:
		return decodePayload[ElevatorMoved](event)
	case EventTypeRoundEnded:
		return decodePayload[RoundEnded](event)
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrMappingEventFailed, event.EventType)
	}
}

func decodePayload[T any](event StorableEvent) (any, error) {
	var payload T
	if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingEventFailed, err)
	}

	return payload, nil
}
