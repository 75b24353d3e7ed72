package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid() Grid {
	return Grid{StartHour: 7, EndHour: 22, PixelsPerHour: 60}
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

func TestBlockInsideWindow(t *testing.T) {
	block, visible := testGrid().Block(at(9, 30), at(10, 15))
	require.True(t, visible)

	assert.InDelta(t, 150, block.Top, 0.001)
	assert.InDelta(t, 45, block.Height, 0.001)
	assert.False(t, block.Truncated)
	assert.Equal(t, "09:30 - 10:15", block.Label())
}

func TestBlockTruncatedBeforeWindow(t *testing.T) {
	block, visible := testGrid().Block(at(6, 0), at(8, 0))
	require.True(t, visible)

	assert.InDelta(t, 0, block.Top, 0.001)
	assert.InDelta(t, 60, block.Height, 0.001)
	assert.True(t, block.Truncated)
	// Label keeps the true range even though geometry was clipped.
	assert.Equal(t, "06:00 - 08:00", block.Label())
}

func TestBlockTruncatedAfterWindow(t *testing.T) {
	block, visible := testGrid().Block(at(21, 0), at(23, 0))
	require.True(t, visible)

	assert.InDelta(t, 14*60, block.Top, 0.001)
	assert.InDelta(t, 60, block.Height, 0.001)
	assert.True(t, block.Truncated)
}

func TestBlockSuppressedOutsideWindow(t *testing.T) {
	grid := testGrid()

	_, visible := grid.Block(at(5, 0), at(6, 30))
	assert.False(t, visible, "event entirely before window must be suppressed")

	_, visible = grid.Block(at(22, 0), at(23, 0))
	assert.False(t, visible, "event at/after window end must be suppressed")
}

func TestBlockClampsInvertedRangeToOneHour(t *testing.T) {
	block, visible := testGrid().Block(at(10, 0), at(9, 0))
	require.True(t, visible)

	assert.InDelta(t, 180, block.Top, 0.001)
	assert.InDelta(t, 60, block.Height, 0.001)
	assert.Equal(t, "10:00 - 11:00", block.Label())
}

func TestHoursAndHeight(t *testing.T) {
	grid := testGrid()
	hours := grid.Hours()

	require.Len(t, hours, 15)
	assert.Equal(t, 7, hours[0])
	assert.Equal(t, 21, hours[len(hours)-1])
	assert.InDelta(t, 900, grid.Height(), 0.001)
}

func TestScrollOffsetCentersCurrentHour(t *testing.T) {
	offset, ok := testGrid().ScrollOffset(at(14, 10))
	require.True(t, ok)
	assert.InDelta(t, 7*60-30, offset, 0.001)
}

func TestScrollOffsetClampedAtWindowStart(t *testing.T) {
	offset, ok := testGrid().ScrollOffset(at(7, 5))
	require.True(t, ok)
	assert.InDelta(t, 0, offset, 0.001)
}

func TestScrollOffsetDisabledOutsideWindow(t *testing.T) {
	_, ok := testGrid().ScrollOffset(at(3, 0))
	assert.False(t, ok)
}
