package reconciler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dayMs   = int64(24 * 60 * 60 * 1000)
	monthMs = 30 * dayMs
	yearMs  = 365 * dayMs
)

func TestParseEpochMs(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{name: "json number", in: float64(1698123456789), want: 1698123456789},
		{name: "numeric string", in: "1698123456789", want: 1698123456789},
		{name: "padded string", in: " 1698123456789 ", want: 1698123456789},
		{name: "json.Number", in: json.Number("1698123456789"), want: 1698123456789},
		{name: "int64", in: int64(42), want: 42},
		{name: "absent", in: nil, wantErr: true},
		{name: "garbage string", in: "not-a-number", wantErr: true},
		{name: "fractional", in: float64(1.5), wantErr: true},
		{name: "bool", in: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEpochMs(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrInvalidTimestamp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitize_CorrectsShortWindows(t *testing.T) {
	purchased := int64(1698123456789)

	tests := []struct {
		name      string
		productID string
		gapMs     int64
		wantGapMs int64
		corrected bool
	}{
		{name: "monthly three minutes apart", productID: "premium_monthly", gapMs: 3 * 60 * 1000, wantGapMs: monthMs, corrected: true},
		{name: "monthly just under threshold", productID: "premium_monthly", gapMs: 29*dayMs - 1, wantGapMs: monthMs, corrected: true},
		{name: "monthly exactly at threshold", productID: "premium_monthly", gapMs: 29 * dayMs, wantGapMs: 29 * dayMs},
		{name: "monthly full period", productID: "premium_monthly", gapMs: monthMs, wantGapMs: monthMs},
		{name: "yearly minutes apart", productID: "premium_yearly", gapMs: 5 * 60 * 1000, wantGapMs: yearMs, corrected: true},
		{name: "yearly just under threshold", productID: "premium_yearly", gapMs: 364*dayMs - 1, wantGapMs: yearMs, corrected: true},
		{name: "yearly exactly at threshold", productID: "premium_yearly", gapMs: 364 * dayMs, wantGapMs: 364 * dayMs},
		{name: "annual sentinel", productID: "$rc_annual", gapMs: 0, wantGapMs: yearMs, corrected: true},
		{name: "empty product defaults to monthly", productID: "", gapMs: 0, wantGapMs: monthMs, corrected: true},
		{name: "unknown product defaults to monthly", productID: "mystery_sku", gapMs: monthMs, wantGapMs: monthMs},
		{name: "too-long window passes through", productID: "premium_monthly", gapMs: 10 * yearMs, wantGapMs: 10 * yearMs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, e, corrected := Sanitize(purchased, purchased+tt.gapMs, tt.productID)
			assert.Equal(t, purchased, p, "purchase timestamp must never change")
			assert.Equal(t, tt.corrected, corrected)
			assert.Equal(t, tt.wantGapMs, e-p)
			if !tt.corrected {
				assert.Equal(t, purchased+tt.gapMs, e, "valid windows must pass through untouched")
			}
		})
	}
}
