package types

import "encoding/json"

// TimeRange is the queried analytics window, serialized as ISO-8601 UTC timestamps
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SummaryResponse is the compact analytics payload returned by the summary proxy.
// Visits and Pageviews serialize as null when the upstream did not report them.
type SummaryResponse struct {
	Range     TimeRange         `json:"range"`
	ProjectID string            `json:"projectId"`
	Visits    json.RawMessage   `json:"visits"`
	Pageviews json.RawMessage   `json:"pageviews"`
	Series    json.RawMessage   `json:"series,omitempty"`
	TopPages  []json.RawMessage `json:"topPages"`
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}
