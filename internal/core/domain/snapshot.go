package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Snapshot is a JSON copy of a row as it was before its last update.
// It is stored in the datos_anteriores column and rendered verbatim.
type Snapshot []byte

// NewSnapshot serializes v into a Snapshot.
func NewSnapshot(v any) (Snapshot, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return Snapshot(b), nil
}

// Scan implements sql.Scanner; NULL yields an empty snapshot.
func (s *Snapshot) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
	case []byte:
		*s = append(Snapshot(nil), v...)
	case string:
		*s = Snapshot(v)
	default:
		return fmt.Errorf("snapshot: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (s Snapshot) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return []byte(s), nil
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(s), nil
}
