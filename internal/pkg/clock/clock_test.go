package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZonedClockUsesBusinessTimezone(t *testing.T) {
	c, err := New("Europe/Istanbul")
	require.NoError(t, err)

	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	assert.Equal(t, time.Now().In(loc).Format(DateLayout), c.Today())
}

func TestNewRejectsUnknownZone(t *testing.T) {
	_, err := New("Mars/Olympus")
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	c := Fixed(time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-15", c.Today())
}

func TestAddDays(t *testing.T) {
	d, err := AddDays("2024-03-01", -6)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-24", d)

	_, err = AddDays("2024/03/01", 1)
	assert.Error(t, err)
}
