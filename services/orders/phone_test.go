package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ten digits", "9876543210", "9876543210"},
		{"spaced", "98765 43210", "9876543210"},
		{"plus country code and dash", "+91 98765-43210", "9876543210"},
		{"bare country code", "919876543210", "9876543210"},
		{"empty falls back to placeholder", "", "9999999999"},
		{"no digits falls back to placeholder", "n/a", "9999999999"},
		{"short number kept as-is", "98-76-54", "987654"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.input))
		})
	}
}
