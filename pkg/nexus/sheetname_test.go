package nexus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UID Generator", "UID Generator"},
		{"IP: Geospatial Data Extraction", "IP_ Geospatial Data Extraction"},
		{`a\b/c?d*e[f]g`, "a_b_c_d_e_f_g"},
		{"  'quoted'  ", "quoted"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
		{strings.Repeat("ü", 35), strings.Repeat("ü", 31)},
		// Cut lands on a space, which is trimmed
		{strings.Repeat("a", 30) + " tail", strings.Repeat("a", 30)},
	}

	for _, tt := range tests {
		got, err := SanitizeSheetName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSanitizeSheetNameEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "''"} {
		_, err := SanitizeSheetName(in)
		assert.ErrorIs(t, err, ErrValidation, "%q", in)
	}
}
