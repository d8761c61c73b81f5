package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain sats", input: "150000", want: 150_000},
		{name: "negative sats", input: "-25000", want: -25_000},
		{name: "zero", input: "0", want: 0},
		{name: "btc suffix", input: "0.0015btc", want: 150_000},
		{name: "btc suffix uppercase", input: "0.0015BTC", want: 150_000},
		{name: "whole btc", input: "1btc", want: 100_000_000},
		{name: "negative btc", input: "-0.5btc", want: -50_000_000},
		{name: "surrounding whitespace", input: "  42  ", want: 42},
		{name: "fractional sats rejected", input: "1.5", wantErr: true},
		{name: "too many btc decimals", input: "0.123456789btc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "lots", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolMark(t *testing.T) {
	assert.Equal(t, "yes", boolMark(true))
	assert.Equal(t, "no", boolMark(false))
}
