package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	ContentTypeJSON        = "application/json"
	ContentTypeText        = "text/plain; charset=utf-8"
	ContentTypeOctetStream = "application/octet-stream"
)

// Encode turns a payload into a message body. Byte slices pass through untouched,
// strings are sent as UTF-8 text and everything else is marshalled to JSON.
func Encode(v any) ([]byte, string, error) {
	switch value := v.(type) {
	case []byte:
		return value, ContentTypeOctetStream, nil
	case string:
		return []byte(value), ContentTypeText, nil
	case json.RawMessage:
		return value, ContentTypeJSON, nil
	}

	body, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("could not encode payload: %w", err)
	}

	return body, ContentTypeJSON, nil
}

// Decode is the inverse of Encode for consumers that do not know the payload type:
// a JSON document decodes to its generic Go value, anything else comes back as a string.
func Decode(body []byte) any {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return string(body)
	}

	return value
}

// formatExpiration renders a TTL the way the broker expects it: whole milliseconds as a string.
func formatExpiration(ttl time.Duration) string {
	if ttl < 0 {
		ttl = 0
	}

	return strconv.FormatInt(ttl.Milliseconds(), 10)
}
