package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload of e as T. Payloads published in process are
// already T or *T; payloads read back from JSON arrive as maps and are re-encoded.
func DecodePayload[T any](payload interface{}) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("decode %T payload: nil pointer", out)
		}
		return *v, nil
	case nil:
		return out, fmt.Errorf("decode %T payload: no payload", out)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("decode %T payload: %w", out, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %T payload: %w", out, err)
	}
	return out, nil
}
