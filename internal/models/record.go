package models

import "time"

// TransformationRecord is one successful transformation, immutable once
// created. Timestamp is a millisecond epoch to stay compatible with ledgers
// exported from the legacy web client.
type TransformationRecord struct {
	ID          string `json:"id"`
	Original    string `json:"original"`
	Transformed string `json:"transformed"`
	Mode        string `json:"mode"`
	Timestamp   int64  `json:"timestamp"`
}

// Time converts the ms-epoch timestamp back to wall-clock time.
func (r TransformationRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}
