package dto

import "encoding/json"

// Optional distinguishes a JSON field that was omitted from one explicitly
// set to null. Partial task updates need all three states: absent leaves the
// column untouched, null clears it, a value replaces it.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked when the key is present in the payload, so
// Set marks presence and Valid marks a non-null value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the value; unset and null both encode as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
