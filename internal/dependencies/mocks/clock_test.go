package mocks_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
)

type MockClockSuite struct {
	suite.Suite
	clock *mocks.MockClock
	start time.Time
}

func TestMockClockSuite(t *testing.T) {
	suite.Run(t, new(MockClockSuite))
}

func (s *MockClockSuite) SetupTest() {
	s.start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.clock = mocks.NewMockClock(s.start)
}

func (s *MockClockSuite) TestTimerFiresOnlyWhenDue() {
	fired := false
	s.clock.AfterFunc(200*time.Millisecond, func() { fired = true })

	s.clock.Advance(199 * time.Millisecond)
	s.False(fired)

	s.clock.Advance(time.Millisecond)
	s.True(fired)
	s.Equal(0, s.clock.Pending())
}

func (s *MockClockSuite) TestStoppedTimerNeverFires() {
	fired := false
	t := s.clock.AfterFunc(time.Second, func() { fired = true })

	s.True(t.Stop())
	s.False(t.Stop())

	s.clock.Advance(time.Minute)
	s.False(fired)
}

func (s *MockClockSuite) TestTimersFireInOrder() {
	var order []int
	s.clock.AfterFunc(2*time.Second, func() { order = append(order, 2) })
	s.clock.AfterFunc(time.Second, func() { order = append(order, 1) })
	s.clock.AfterFunc(time.Second, func() { order = append(order, 3) })

	s.clock.Advance(5 * time.Second)

	s.Equal([]int{1, 3, 2}, order)
	s.Equal(s.start.Add(5*time.Second), s.clock.Now())
}

func (s *MockClockSuite) TestCallbackMaySchedule() {
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			s.clock.AfterFunc(time.Second, tick)
		}
	}
	s.clock.AfterFunc(time.Second, tick)

	s.clock.Advance(10 * time.Second)

	s.Equal(3, count)
}
