package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLenientInt(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  int
		ok    bool
	}{
		{"plain", "93", 93, true},
		{"thousands separator", "1,000", 1000, true},
		{"trailing qualifier", "500(0/sec)", 500, true},
		{"surrounding whitespace", "  42  ", 42, true},
		{"no digits", "unlimited", 0, false},
		{"empty", "", 0, false},
		{"leading text", "v2023", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LenientInt(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripDomain(t *testing.T) {
	assert.Equal(t, "node042", StripDomain("node042.hpc.example.com"))
	assert.Equal(t, "node042", StripDomain("node042"))
	assert.Equal(t, ".hidden", StripDomain(".hidden"))
}
