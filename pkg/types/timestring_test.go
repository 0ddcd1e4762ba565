package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	for _, bad := range []string{"", "9:30:00", "25:00", "12:60", "noon", "12.30"} {
		_, err := NewTimeStringFromString(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    TimeString
	}{
		{0, "00:00"},
		{570, "09:30"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		ts, err := NewTimeStringFromMinutes(tt.minutes)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ts)
	}

	_, err := NewTimeStringFromMinutes(-1)
	assert.Error(t, err)

	_, err = NewTimeStringFromMinutes(1440)
	assert.Error(t, err)
}

func TestMinutesRoundTrip(t *testing.T) {
	ts := TimeString("14:45")

	m, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 14*60+45, m)

	back, err := NewTimeStringFromMinutes(m)
	require.NoError(t, err)
	assert.Equal(t, ts, back)
}

func TestAddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	got, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	// Переход через полночь запрещен
	_, err = TimeString("23:45").AddMinutes(30)
	assert.Error(t, err)
}

func TestOrdering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))

	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestScan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("from HH:MM:SS text", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("14:30:00"))
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("09:15:00")))
		assert.Equal(t, TimeString("09:15"), ts)
	})

	t.Run("nil resets", func(t *testing.T) {
		ts := TimeString("09:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.Error(t, err)
}
