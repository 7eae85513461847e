package analytics

import (
	"bytes"
	"encoding/json"
)

// MaxTopPages caps the number of top-page entries in a response
const MaxTopPages = 5

// TopPagesShape identifies which layout an upstream top-pages payload uses
type TopPagesShape int

const (
	ShapeUnknown TopPagesShape = iota
	// ShapePages is an object with a "pages" array
	ShapePages
	// ShapeTop is an object with a "top" array
	ShapeTop
	// ShapeList is a bare array
	ShapeList
)

func (s TopPagesShape) String() string {
	switch s {
	case ShapePages:
		return "pages"
	case ShapeTop:
		return "top"
	case ShapeList:
		return "list"
	default:
		return "unknown"
	}
}

// classifyTopPages picks the shape of raw and returns the list it carries.
// Precedence is pages, then top, then a bare array.
func classifyTopPages(raw []byte) (TopPagesShape, []json.RawMessage) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ShapeUnknown, nil
	}

	switch raw[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return ShapeUnknown, nil
		}
		return ShapeList, list
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return ShapeUnknown, nil
		}
		if list, ok := arrayField(obj, "pages"); ok {
			return ShapePages, list
		}
		if list, ok := arrayField(obj, "top"); ok {
			return ShapeTop, list
		}
	}
	return ShapeUnknown, nil
}

func arrayField(obj map[string]json.RawMessage, key string) ([]json.RawMessage, bool) {
	v := bytes.TrimSpace(obj[key])
	if len(v) == 0 || v[0] != '[' {
		return nil, false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err != nil {
		return nil, false
	}
	return list, true
}

// NormalizeTopPages extracts at most MaxTopPages entries from any supported
// shape. Unknown or malformed payloads yield an empty, non-nil list.
func NormalizeTopPages(raw []byte) []json.RawMessage {
	_, list := classifyTopPages(raw)
	if len(list) > MaxTopPages {
		list = list[:MaxTopPages]
	}
	if list == nil {
		return []json.RawMessage{}
	}
	return list
}
