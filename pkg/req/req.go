package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const maxBodyBytes = 1 << 20

// Decode reads one JSON value of type T. Unknown fields are ignored.
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, errors.New("empty body")
	}

	err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&payload)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty body")
		}
		return payload, fmt.Errorf("decode body: %w", err)
	}

	return payload, nil
}
