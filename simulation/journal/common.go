package journal

import (
	"errors"
)

var (
	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrEmptyTableName              = errors.New("empty table name supplied")
	ErrNilStore                    = errors.New("journal store must not be nil")
	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrAppendingEventFailed        = errors.New("appending events failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrConcurrencyConflict         = errors.New("concurrency conflict, fewer rows than events were inserted")
	ErrCreatingSchemaFailed        = errors.New("creating journal schema failed")
	ErrInvalidPayloadJSON          = errors.New("payload json is not valid")
	ErrInvalidMetadataJSON         = errors.New("metadata json is not valid")
	ErrMappingEventFailed          = errors.New("mapping storable event failed")
)

// MaxSequenceNumberUint is the highest sequence number of the events matching a Filter, 0 when there are none.
type MaxSequenceNumberUint = uint
