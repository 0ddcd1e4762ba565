package types

import "database/sql/driver"

// NullTimeString is a TimeString that may be NULL in the database,
// mirroring the sql.Null* types.
type NullTimeString struct {
	TimeString TimeString
	Valid      bool
}

// Ptr returns the value as a pointer, nil when NULL.
func (n NullTimeString) Ptr() *TimeString {
	if !n.Valid {
		return nil
	}
	ts := n.TimeString
	return &ts
}

// Scan implements sql.Scanner.
func (n *NullTimeString) Scan(src interface{}) error {
	if src == nil {
		n.TimeString, n.Valid = "", false
		return nil
	}
	var ts TimeString
	if err := ts.Scan(src); err != nil {
		return err
	}
	n.TimeString, n.Valid = ts, true
	return nil
}

// Value implements driver.Valuer.
func (n NullTimeString) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.TimeString.Value()
}
