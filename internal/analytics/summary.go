package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Summary holds the fields the proxy keeps from the upstream summary.
// A nil field means the upstream did not report it.
type Summary struct {
	Visits    json.RawMessage
	Pageviews json.RawMessage
	Series    json.RawMessage
}

// ParseSummary decodes an upstream summary body. Counts are read from the top
// level first and from the nested "total" object second. JSON null is treated
// as absent. A body that is valid JSON but not an object yields an empty Summary.
func ParseSummary(raw []byte) (Summary, error) {
	if !json.Valid(raw) {
		return Summary{}, fmt.Errorf("parse summary: invalid JSON payload")
	}

	obj, ok := asObject(raw)
	if !ok {
		return Summary{}, nil
	}
	total, _ := asObject(obj["total"])

	return Summary{
		Visits:    firstPresent(obj["visits"], total["visits"]),
		Pageviews: firstPresent(obj["pageviews"], total["pageviews"]),
		Series:    present(obj["series"]),
	}, nil
}

func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func present(v json.RawMessage) json.RawMessage {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return nil
	}
	return v
}

func firstPresent(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if p := present(v); p != nil {
			return p
		}
	}
	return nil
}
