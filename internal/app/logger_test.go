package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name      string
		level     string
		format    string
		wantDebug bool
		wantWarn  bool
		wantJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", wantDebug: true, wantWarn: true},
		{name: "info json", level: "info", format: "json", wantWarn: true, wantJSON: true},
		{name: "error suppresses warn", level: "error", format: "text"},
		{name: "unknown level falls back to info", level: "verbose", format: "JSON", wantWarn: true, wantJSON: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(tc.level, tc.format, &buf)

			logger.Debug("debug record")
			assert.Equal(t, tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug record")))

			buf.Reset()
			logger.Warn("warn record", "model", "M")
			assert.Equal(t, tc.wantWarn, buf.Len() > 0)
			if tc.wantWarn && tc.wantJSON {
				var rec map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
				assert.Equal(t, "M", rec["model"])
			}
		})
	}
}
