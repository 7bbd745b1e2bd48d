package timefmt

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// StorageTime carries a start value in its 19-character storage
// representation. It implements sql.Scanner and driver.Valuer so the model
// keeps the canonical textual form while the database column stays a real
// timestamp.
type StorageTime string

func (st StorageTime) String() string {
	return string(st)
}

// Scan converts a scanned column value into the storage representation.
// Drivers hand timestamps back as time.Time; string and []byte are accepted
// for drivers (and sqlmock rows) that return text.
func (st *StorageTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*st = ""
	case time.Time:
		*st = StorageTime(v.Format(StorageLayout))
	case []byte:
		*st = StorageTime(v)
	case string:
		*st = StorageTime(v)
	default:
		return fmt.Errorf("cannot scan %T into StorageTime", src)
	}
	return nil
}

// Value parses the storage representation into a time.Time for the driver.
// An empty value writes NULL.
func (st StorageTime) Value() (driver.Value, error) {
	if st == "" {
		return nil, nil
	}
	t, err := time.Parse(StorageLayout, string(st))
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return t, nil
}
