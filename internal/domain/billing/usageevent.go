package billing

import (
	"fmt"
	"time"

	"beacon/internal/shared/id"
)

// UsageEvent is one immutable recorded unit of metered consumption for an
// organization and metric. Events are append-only: they are never updated
// or deleted after insert.
type UsageEvent struct {
	id         uint
	sid        string
	orgSID     string
	metric     Metric
	quantity   int
	recordedAt time.Time
}

func NewUsageEvent(orgSID string, metric Metric, recordedAt time.Time) (*UsageEvent, error) {
	if orgSID == "" {
		return nil, fmt.Errorf("organization SID is required")
	}
	if metric == "" {
		return nil, fmt.Errorf("metric is required")
	}
	if recordedAt.IsZero() {
		return nil, fmt.Errorf("recorded time is required")
	}

	return &UsageEvent{
		sid:        id.NewUsageEventID(),
		orgSID:     orgSID,
		metric:     metric,
		quantity:   1,
		recordedAt: recordedAt,
	}, nil
}

func ReconstructUsageEvent(eid uint, sid, orgSID string, metric Metric, quantity int, recordedAt time.Time) (*UsageEvent, error) {
	if eid == 0 {
		return nil, fmt.Errorf("usage event ID cannot be zero")
	}
	return &UsageEvent{
		id:         eid,
		sid:        sid,
		orgSID:     orgSID,
		metric:     metric,
		quantity:   quantity,
		recordedAt: recordedAt,
	}, nil
}

func (e *UsageEvent) ID() uint {
	return e.id
}

func (e *UsageEvent) SID() string {
	return e.sid
}

func (e *UsageEvent) OrgSID() string {
	return e.orgSID
}

func (e *UsageEvent) Metric() Metric {
	return e.metric
}

func (e *UsageEvent) Quantity() int {
	return e.quantity
}

func (e *UsageEvent) RecordedAt() time.Time {
	return e.recordedAt
}

// SetID sets the internal ID (only for persistence layer use)
func (e *UsageEvent) SetID(eid uint) error {
	if e.id != 0 {
		return fmt.Errorf("usage event ID is already set")
	}
	if eid == 0 {
		return fmt.Errorf("usage event ID cannot be zero")
	}
	e.id = eid
	return nil
}
