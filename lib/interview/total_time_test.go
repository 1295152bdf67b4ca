package interview

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTotalTime(t *testing.T) {
	clock := func(hour, minute int) *datatypes.Time {
		value := datatypes.NewTime(hour, minute, 0, 0)
		return &value
	}
	require.Equal(t, "1 hour 30 minutes", TotalTime(clock(10, 0), clock(11, 30)))
	require.Equal(t, "2 hours", TotalTime(clock(9, 0), clock(11, 0)))
	require.Equal(t, "45 minutes", TotalTime(clock(9, 15), clock(10, 0)))
	require.Equal(t, "1 minute", TotalTime(clock(9, 0), clock(9, 1)))
	require.Equal(t, "2 hours", TotalTime(clock(23, 0), clock(1, 0)))
	require.Equal(t, "", TotalTime(clock(9, 0), clock(9, 0)))
	require.Equal(t, "", TotalTime(nil, clock(9, 0)))
}
