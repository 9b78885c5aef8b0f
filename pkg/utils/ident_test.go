package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangar-service/internal/domain/errs"
)

func TestParseIdent(t *testing.T) {
	tests := []struct {
		input      string
		wantCode   string
		wantNumber string
	}{
		{input: "EK221", wantCode: "EK", wantNumber: "221"},
		{input: "EK 221", wantCode: "EK", wantNumber: "221"},
		{input: "Emirates 221", wantCode: "EK", wantNumber: "221"},
		{input: "  emirates   221 ", wantCode: "EK", wantNumber: "221"},
		{input: "ek221", wantCode: "EK", wantNumber: "221"},
		{input: "UAE221", wantCode: "UAE", wantNumber: "221"},
		{input: "UA 1A", wantCode: "UA", wantNumber: "1A"},
		{input: "Lufthansa 400", wantCode: "LH", wantNumber: "400"},
		{input: "United Airlines 90", wantCode: "UA", wantNumber: "90"},
		{input: "QF1", wantCode: "QF", wantNumber: "1"},
		{input: "AI 101", wantCode: "AI", wantNumber: "101"},
		{input: "BA 123", wantCode: "BA", wantNumber: "123"},
		{input: "LA 800", wantCode: "LA", wantNumber: "800"},
		{input: "ET 500", wantCode: "ET", wantNumber: "500"},
		{input: "AS 1", wantCode: "AS", wantNumber: "1"},
		{input: "SA 1", wantCode: "SA", wantNumber: "1"},
		{input: "AA 100", wantCode: "AA", wantNumber: "100"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIdent(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, got.AirlineCode)
			assert.Equal(t, tt.wantNumber, got.FlightNumber)
			assert.Equal(t, tt.input, got.Original)
		})
	}
}

func TestParseIdent_SameAirlineForAllForms(t *testing.T) {
	var codes []string
	for _, in := range []string{"EK221", "EK 221", "Emirates 221"} {
		id, err := ParseIdent(in)
		require.NoError(t, err)
		codes = append(codes, id.AirlineCode)
		assert.Equal(t, "EK221", id.String())
	}
	assert.Equal(t, []string{"EK", "EK", "EK"}, codes)
}

func TestParseIdent_Failures(t *testing.T) {
	for _, in := range []string{"", "221", "E221", "EMIRATES", "Nowhere Air 12", "EK-221", "ABCD221"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseIdent(in)
			var parseErr *errs.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, in, parseErr.Input)
		})
	}
}

func TestParseIdent_SpacedMatchesGlued(t *testing.T) {
	for _, code := range []string{"AI", "BA", "LA", "ET", "AS", "SA", "AA", "EK", "UA", "QF", "LH"} {
		t.Run(code, func(t *testing.T) {
			glued, err := ParseIdent(code + "42")
			require.NoError(t, err)
			spaced, err := ParseIdent(code + " 42")
			require.NoError(t, err)
			assert.Equal(t, glued.String(), spaced.String())
		})
	}
}
