package journal

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

type StorableEvents = []StorableEvent

// StorableEvent is the row shape of the journal table.
// Build it with BuildStorableEvent so both JSON documents are known to be valid.
type StorableEvent struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

func BuildStorableEvent(eventType string, occurredAt time.Time, payloadJSON, metadataJSON []byte) (StorableEvent, error) {
	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return StorableEvent{}, ErrInvalidMetadataJSON
	}

	return StorableEvent{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}
