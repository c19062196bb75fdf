package queuestatus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoller(now time.Time) *Poller {
	return &Poller{
		Threshold: DefaultThreshold,
		Now:       func() time.Time { return now },
		Location:  time.UTC,
	}
}

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func TestTick_FirstObservationPosts(t *testing.T) {
	p := testPoller(day(1).Add(9 * time.Hour))

	// The loop starts assuming a live queue; a dead queue on the first
	// tick is a transition worth announcing.
	st, update := p.Tick(State{Queueing: true, InRotation: true}, 3)

	require.NotNil(t, update)
	assert.False(t, update.Queueing)
	assert.Equal(t, 3, update.Count)
	assert.False(t, st.Queueing)
	assert.Equal(t, day(1), st.Day)
}

func TestTick_NoChangeStaysSilent(t *testing.T) {
	p := testPoller(day(1).Add(10 * time.Hour))
	st := State{Queueing: false, Day: day(1), InRotation: true}

	next, update := p.Tick(st, 4)

	assert.Nil(t, update)
	assert.Equal(t, st, next)
}

func TestTick_QueueComesAlive(t *testing.T) {
	p := testPoller(day(1).Add(11 * time.Hour))
	st := State{Queueing: false, Day: day(1), InRotation: true}

	next, update := p.Tick(st, 15)

	require.NotNil(t, update)
	assert.True(t, update.Queueing)
	assert.Equal(t, 15, update.Count)
	assert.True(t, next.Queueing)
}

func TestTick_ThresholdBoundary(t *testing.T) {
	p := testPoller(day(1).Add(11 * time.Hour))
	st := State{Queueing: false, Day: day(1), InRotation: true}

	_, update := p.Tick(st, 9)
	assert.Nil(t, update)

	_, update = p.Tick(st, 10)
	require.NotNil(t, update)
	assert.True(t, update.Queueing)
}

func TestTick_QueueDies(t *testing.T) {
	p := testPoller(day(1).Add(12 * time.Hour))
	st := State{Queueing: true, Day: day(1), InRotation: true}

	next, update := p.Tick(st, 2)

	require.NotNil(t, update)
	assert.False(t, update.Queueing)
	assert.False(t, next.Queueing)
}

func TestTick_DayRolloverPostsAndFlipsRotation(t *testing.T) {
	p := testPoller(day(2).Add(1 * time.Minute))
	st := State{Queueing: false, Day: day(1), InRotation: true}

	next, update := p.Tick(st, 4)

	require.NotNil(t, update)
	assert.False(t, update.Queueing)
	assert.False(t, update.InRotation)
	assert.Equal(t, day(3), update.RotationChange)
	assert.Equal(t, day(2), next.Day)
	assert.False(t, next.InRotation)
}

func TestTick_TwoDayGapKeepsRotation(t *testing.T) {
	// An even number of elapsed midnights leaves the rotation flag where
	// it was.
	p := testPoller(day(3).Add(1 * time.Minute))
	st := State{Queueing: false, Day: day(1), InRotation: true}

	next, update := p.Tick(st, 4)

	require.NotNil(t, update)
	assert.True(t, next.InRotation)
}

func TestTick_SameDayKeepsRotation(t *testing.T) {
	p := testPoller(day(1).Add(23 * time.Hour))
	st := State{Queueing: false, Day: day(1), InRotation: false}

	next, update := p.Tick(st, 20)

	require.NotNil(t, update)
	assert.False(t, next.InRotation)
	assert.False(t, update.InRotation)
}
