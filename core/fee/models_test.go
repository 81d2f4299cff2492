package fee

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kalashala/kalashala/core"
)

func TestPeriodOf(t *testing.T) {
	assert.Equal(t, Period("2024-01"), PeriodOf(time.Date(2024, 1, 31, 23, 59, 0, 0, time.Local)))
	assert.Equal(t, Period("2024-02"), PeriodOf(time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)))
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Period
		wantErr bool
	}{
		{name: "valid", in: "2024-03", want: "2024-03"},
		{name: "padded", in: " 2024-03 ", want: "2024-03"},
		{name: "bad month", in: "2024-13", wantErr: true},
		{name: "unpadded month", in: "2024-3", wantErr: true},
		{name: "full date", in: "2024-03-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePeriod() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmountFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    string
		wantErr bool
	}{
		{name: "zero", in: 0, want: "0"},
		{name: "positive", in: 1500.5, want: "1500.5"},
		{name: "negative", in: -1, wantErr: true},
		{name: "NaN", in: math.NaN(), wantErr: true},
		{name: "+Inf", in: math.Inf(1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AmountFromFloat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("AmountFromFloat() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				_, ok := err.(*core.ValidationError)
				assert.True(t, ok, "want a *core.ValidationError, got %T", err)
				return
			}
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("1200.00")
	assert.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1200)))

	for _, in := range []string{"-5", "abc", ""} {
		_, err = ParseAmount(in)
		assert.Error(t, err, "ParseAmount(%q)", in)
	}
}

func TestParseStatusFilter(t *testing.T) {
	for in, want := range map[string]Status{"": "", "ALL": "", "paid": Paid, "UNPAID": Unpaid} {
		got, err := ParseStatusFilter(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "ParseStatusFilter(%q)", in)
	}
	_, err := ParseStatusFilter("LATE")
	assert.Error(t, err)
}

func TestUnpaidStatus(t *testing.T) {
	st := UnpaidStatus("2024-01")
	assert.Equal(t, Unpaid, st.Status)
	assert.False(t, st.FeeID.Valid)
	assert.False(t, st.Amount.Valid)
	assert.False(t, st.PaymentDate.Valid)
}
