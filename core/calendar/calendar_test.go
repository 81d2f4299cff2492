package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h, min, s, ms int) time.Time {
	return time.Date(y, m, d, h, min, s, ms*int(time.Millisecond), time.Local)
}

func freezeNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = orig })
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
	}{
		{name: "midnight", in: date(2024, 1, 15, 0, 0, 0, 0)},
		{name: "noon", in: date(2024, 1, 15, 12, 30, 0, 0)},
		{name: "last millisecond", in: date(2024, 1, 15, 23, 59, 59, 999)},
	}
	want := date(2024, 1, 15, 0, 0, 0, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDay(tt.in)
			assert.True(t, got.Equal(want), "NormalizeDay() = %v, want %v", got, want)
			assert.True(t, NormalizeDay(got).Equal(got), "NormalizeDay() is not idempotent")
			assert.False(t, got.After(tt.in))
			assert.False(t, EndOfDay(tt.in).Before(tt.in))
		})
	}
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(date(2023, 2, 28, 8, 0, 0, 0))
	assert.True(t, got.Equal(date(2023, 2, 28, 23, 59, 59, 999)), "EndOfDay() = %v", got)
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(date(2024, 1, 15, 0, 0, 0, 1), date(2024, 1, 15, 23, 0, 0, 0)))
	assert.False(t, SameDay(date(2024, 1, 15, 23, 59, 59, 999), date(2024, 1, 16, 0, 0, 0, 0)))
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "date", in: "2024-01-15", want: date(2024, 1, 15, 0, 0, 0, 0)},
		{name: "datetime", in: "2024-01-15T17:45:00", want: date(2024, 1, 15, 0, 0, 0, 0)},
		{name: "padded", in: " 2024-01-15 ", want: date(2024, 1, 15, 0, 0, 0, 0)},
		{name: "garbage", in: "15/01/2024", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "impossible day", in: "2023-02-29", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDay() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				assert.True(t, IsInvalidDate(err))
				return
			}
			assert.True(t, got.Equal(tt.want), "ParseDay() = %v, want %v", got, tt.want)
		})
	}
}

func TestResolvePeriod(t *testing.T) {
	today := date(2024, 6, 10, 0, 0, 0, 0)
	freezeNow(t, today)

	tests := []struct {
		name    string
		spec    string
		ref     time.Time
		year    int
		want    Range
		wantErr bool
	}{
		{
			name: "weekly", spec: "WEEKLY", ref: today,
			want: Range{Start: date(2024, 6, 3, 0, 0, 0, 0), End: today},
		},
		{
			name: "monthly", spec: "MONTHLY", ref: today,
			want: Range{Start: date(2024, 5, 10, 0, 0, 0, 0), End: today},
		},
		{
			name: "yearly lower case", spec: "yearly", ref: today,
			want: Range{Start: date(2023, 6, 10, 0, 0, 0, 0), End: today},
		},
		{
			name: "relative end capped at now", spec: "WEEKLY", ref: date(2024, 6, 20, 0, 0, 0, 0),
			want: Range{Start: date(2024, 6, 13, 0, 0, 0, 0), End: today},
		},
		{
			name: "february non leap", spec: "1", ref: today, year: 2023,
			want: Range{Start: date(2023, 2, 1, 0, 0, 0, 0), End: date(2023, 2, 28, 23, 59, 59, 999)},
		},
		{
			name: "february leap", spec: "1", ref: today, year: 2024,
			want: Range{Start: date(2024, 2, 1, 0, 0, 0, 0), End: date(2024, 2, 29, 23, 59, 59, 999)},
		},
		{
			name: "month defaults to reference year", spec: "11", ref: today,
			want: Range{Start: date(2024, 12, 1, 0, 0, 0, 0), End: date(2024, 12, 31, 23, 59, 59, 999)},
		},
		{
			name: "current month not capped", spec: "5", ref: today,
			want: Range{Start: date(2024, 6, 1, 0, 0, 0, 0), End: date(2024, 6, 30, 23, 59, 59, 999)},
		},
		{name: "month index too large", spec: "12", ref: today, wantErr: true},
		{name: "negative month index", spec: "-1", ref: today, wantErr: true},
		{name: "unknown", spec: "DAILY", ref: today, wantErr: true},
		{name: "empty", spec: "", ref: today, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePeriod(tt.spec, tt.ref, tt.year)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResolvePeriod() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				assert.True(t, IsUnknownPeriod(err))
				return
			}
			assert.True(t, got.Start.Equal(tt.want.Start), "Start = %v, want %v", got.Start, tt.want.Start)
			assert.True(t, got.End.Equal(tt.want.End), "End = %v, want %v", got.End, tt.want.End)
		})
	}
}

func TestResolvePeriod_absoluteMonthIgnoresNow(t *testing.T) {
	for _, now := range []time.Time{date(2020, 1, 1, 0, 0, 0, 0), date(2030, 7, 4, 15, 0, 0, 0)} {
		freezeNow(t, now)
		got, err := ResolvePeriod("1", now, 2023)
		require.NoError(t, err)
		assert.True(t, got.Start.Equal(date(2023, 2, 1, 0, 0, 0, 0)))
		assert.True(t, got.End.Equal(date(2023, 2, 28, 23, 59, 59, 999)))
	}
}

func TestRange(t *testing.T) {
	r := Range{Start: date(2023, 2, 1, 0, 0, 0, 0), End: date(2023, 2, 28, 23, 59, 59, 999)}
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(date(2023, 3, 1, 0, 0, 0, 0)))
	assert.False(t, r.Empty())
	assert.True(t, Range{Start: r.End, End: r.Start}.Empty())
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "weekly", PeriodLabel("WEEKLY"))
	assert.Equal(t, "month_1", PeriodLabel("0"))
	assert.Equal(t, "month_12", PeriodLabel("11"))
	assert.Equal(t, "custom", PeriodLabel("nope"))
}
