package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque record identifier. The store API emits both numeric and string IDs; both decode to
// their decimal text.
type ID string

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}
