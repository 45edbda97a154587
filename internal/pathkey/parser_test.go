// internal/pathkey/parser_test.go
package pathkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  Key
	}{
		{name: "single segment", raw: "main", expected: New("main")},
		{name: "nested", raw: "main.S.T", expected: New("main", "S", "T")},
		{name: "underscores", raw: "_m.sub_1", expected: New("_m", "sub_1")},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - empty segment", raw: "main..S", expectErr: true},
		{name: "error - leading digit", raw: "main.1S", expectErr: true},
		{name: "error - hyphen", raw: "main.a-b", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(k), "expected %s, got %s", tc.expected, k)
		})
	}
}
