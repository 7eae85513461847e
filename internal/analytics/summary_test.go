package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		visits    string
		pageviews string
		series    string
	}{
		{name: "top level", raw: `{"visits":100,"pageviews":250}`, visits: "100", pageviews: "250"},
		{name: "nested total", raw: `{"total":{"visits":50,"pageviews":80}}`, visits: "50", pageviews: "80"},
		{name: "top level wins", raw: `{"visits":1,"total":{"visits":2,"pageviews":3}}`, visits: "1", pageviews: "3"},
		{name: "zero is a value", raw: `{"visits":0,"total":{"visits":7}}`, visits: "0"},
		{name: "null falls back", raw: `{"visits":null,"total":{"visits":7}}`, visits: "7"},
		{name: "series kept", raw: `{"visits":1,"series":[{"t":"2025-01-01","v":1}]}`, visits: "1", series: `[{"t":"2025-01-01","v":1}]`},
		{name: "null series dropped", raw: `{"series":null}`},
		{name: "total not an object", raw: `{"total":5}`},
		{name: "array payload", raw: `[1,2,3]`},
		{name: "null payload", raw: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := ParseSummary([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.visits, string(summary.Visits))
			assert.Equal(t, tt.pageviews, string(summary.Pageviews))
			assert.Equal(t, tt.series, string(summary.Series))
		})
	}
}

func TestParseSummaryInvalidJSON(t *testing.T) {
	_, err := ParseSummary([]byte(`<html>oops</html>`))
	assert.Error(t, err)
}
