package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUTC(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed.UTC()
}

func TestParseTimeLocal(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "morning", input: "09:00", wantHour: 9, wantMinute: 0},
		{name: "midnight", input: "00:00", wantHour: 0, wantMinute: 0},
		{name: "end of day", input: "23:59", wantHour: 23, wantMinute: 59},
		{name: "missing colon", input: "0900", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "not numeric", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseTimeLocal(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err), "expected a validation error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestWeekdayConversions(t *testing.T) {
	assert.Equal(t, time.Monday, ToGoWeekday(Monday))
	assert.Equal(t, time.Sunday, ToGoWeekday(Sunday))
	assert.Equal(t, Monday, FromGoWeekday(time.Monday))
	assert.Equal(t, Sunday, FromGoWeekday(time.Sunday))

	// Round trip over the whole range
	for wd := Monday; wd <= Sunday; wd++ {
		assert.Equal(t, wd, FromGoWeekday(ToGoWeekday(wd)))
	}
}

func TestLoadTimezone(t *testing.T) {
	_, err := LoadTimezone("Europe/Berlin")
	require.NoError(t, err)

	_, err = LoadTimezone("Not/AZone")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = LoadTimezone("")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestComputeFirstRun(t *testing.T) {
	tests := []struct {
		name      string
		weekday   int
		timeLocal string
		tz        string
		after     string
		want      string
	}{
		{
			// Wednesday afternoon, next Monday 09:00 Berlin (CEST, UTC+2)
			name:      "next occurrence later in week",
			weekday:   Monday,
			timeLocal: "09:00",
			tz:        "Europe/Berlin",
			after:     "2025-09-03T12:00:00Z",
			want:      "2025-09-08T07:00:00Z",
		},
		{
			// Monday 08:00 local, 09:00 still ahead on the same day
			name:      "same day not yet passed",
			weekday:   Monday,
			timeLocal: "09:00",
			tz:        "Europe/Berlin",
			after:     "2025-09-08T06:00:00Z",
			want:      "2025-09-08T07:00:00Z",
		},
		{
			// Monday 10:00 local, 09:00 already passed, a full week out
			name:      "same day already passed",
			weekday:   Monday,
			timeLocal: "09:00",
			tz:        "Europe/Berlin",
			after:     "2025-09-08T08:00:00Z",
			want:      "2025-09-15T07:00:00Z",
		},
		{
			// Exactly at the boundary counts as not passed
			name:      "exact boundary",
			weekday:   Monday,
			timeLocal: "09:00",
			tz:        "Europe/Berlin",
			after:     "2025-09-08T07:00:00Z",
			want:      "2025-09-08T07:00:00Z",
		},
		{
			// 02:30 does not exist on 2025-03-09 in New York (spring forward
			// skips 02:00-03:00); the next valid instant is 03:30 EDT.
			name:      "skipped wall clock resolves forward",
			weekday:   Sunday,
			timeLocal: "02:30",
			tz:        "America/New_York",
			after:     "2025-03-08T12:00:00Z",
			want:      "2025-03-09T07:30:00Z",
		},
		{
			// 01:30 occurs twice on 2025-11-02 in New York (fall back); the
			// later reading, 01:30 EST, wins.
			name:      "repeated wall clock resolves to later instant",
			weekday:   Sunday,
			timeLocal: "01:30",
			tz:        "America/New_York",
			after:     "2025-11-01T12:00:00Z",
			want:      "2025-11-02T06:30:00Z",
		},
		{
			name:      "utc zone is plain arithmetic",
			weekday:   Friday,
			timeLocal: "18:30",
			tz:        "UTC",
			after:     "2025-09-01T00:00:00Z",
			want:      "2025-09-05T18:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFirstRun(tt.weekday, tt.timeLocal, tt.tz, mustUTC(t, tt.after))
			require.NoError(t, err)
			assert.Equal(t, mustUTC(t, tt.want), got)
			assert.Equal(t, time.UTC, got.Location(), "result must be in UTC")
		})
	}
}

func TestComputeFirstRunValidation(t *testing.T) {
	after := mustUTC(t, "2025-09-03T12:00:00Z")

	_, err := ComputeFirstRun(7, "09:00", "Europe/Berlin", after)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = ComputeFirstRun(Monday, "9am", "Europe/Berlin", after)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = ComputeFirstRun(Monday, "09:00", "Mars/Olympus", after)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAdvanceByOneWeek(t *testing.T) {
	tests := []struct {
		name      string
		weekday   int
		timeLocal string
		tz        string
		previous  string
		want      string
	}{
		{
			// Plain week with no transition: exactly 168 hours
			name:      "plain week",
			weekday:   Monday,
			timeLocal: "09:00",
			tz:        "Europe/Berlin",
			previous:  "2025-09-08T07:00:00Z",
			want:      "2025-09-15T07:00:00Z",
		},
		{
			// Spring forward in New York: Sunday 07:00 EST becomes 07:00 EDT,
			// so the UTC instant moves from 12:00Z to 11:00Z.
			name:      "across spring forward wall clock holds",
			weekday:   Sunday,
			timeLocal: "07:00",
			tz:        "America/New_York",
			previous:  "2025-03-02T12:00:00Z",
			want:      "2025-03-09T11:00:00Z",
		},
		{
			// Fall back: Sunday 07:00 EDT becomes 07:00 EST, 11:00Z to 12:00Z.
			name:      "across fall back wall clock holds",
			weekday:   Sunday,
			timeLocal: "07:00",
			tz:        "America/New_York",
			previous:  "2025-10-26T11:00:00Z",
			want:      "2025-11-02T12:00:00Z",
		},
		{
			// The advanced week lands inside the spring-forward gap: 02:30 does
			// not exist on 2025-03-09, so the run fires at 03:30 EDT instead.
			name:      "advanced week lands in skipped gap",
			weekday:   Sunday,
			timeLocal: "02:30",
			tz:        "America/New_York",
			previous:  "2025-03-02T07:30:00Z",
			want:      "2025-03-09T07:30:00Z",
		},
		{
			// The week after a gap-shifted run returns to the requested reading.
			name:      "wall clock recovers after skipped week",
			weekday:   Sunday,
			timeLocal: "02:30",
			tz:        "America/New_York",
			previous:  "2025-03-09T07:30:00Z",
			want:      "2025-03-16T06:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AdvanceByOneWeek(mustUTC(t, tt.previous), tt.weekday, tt.timeLocal, tt.tz)
			require.NoError(t, err)
			assert.Equal(t, mustUTC(t, tt.want), got)
		})
	}
}

func TestAdvanceByOneWeekChain(t *testing.T) {
	// Advancing repeatedly must always read the schedule's wall clock in its
	// zone and always move strictly forward, even through both DST
	// transitions of a year.
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	current, err := ComputeFirstRun(Sunday, "07:00", "America/New_York", mustUTC(t, "2025-01-02T00:00:00Z"))
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		next, err := AdvanceByOneWeek(current, Sunday, "07:00", "America/New_York")
		require.NoError(t, err)
		assert.True(t, next.After(current), "next run must be strictly after the previous")

		local := next.In(loc)
		assert.Equal(t, time.Sunday, local.Weekday())
		assert.Equal(t, 7, local.Hour())
		assert.Equal(t, 0, local.Minute())

		current = next
	}
}

func TestEffectiveFireTime(t *testing.T) {
	nominal := mustUTC(t, "2025-09-08T07:00:00Z")

	assert.Equal(t, nominal, EffectiveFireTime(nominal, 0))
	assert.Equal(t, mustUTC(t, "2025-09-08T06:50:00Z"), EffectiveFireTime(nominal, 10))
	assert.Equal(t, mustUTC(t, "2025-09-07T07:00:00Z"), EffectiveFireTime(nominal, MaxAdvanceMinutes))
}
