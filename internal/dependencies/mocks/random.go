package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
)

// MockRandom replays queued values. With an empty queue Intn returns 0,
// so strategies pick the first candidate, and String returns "".
type MockRandom struct {
	mu      sync.Mutex
	ints    []int
	strings []string
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn pops the next queued int. A queued value outside [0, n) is a test
// bug and panics.
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("mocks: queued Intn value %d out of range [0, %d)", v, n))
	}
	return v
}

// String pops the next queued string, ignoring length and alphabet
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.strings) == 0 {
		return ""
	}
	v := r.strings[0]
	r.strings = r.strings[1:]
	return v
}

func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
}

func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}

// Remaining returns how many queued ints have not been used
func (r *MockRandom) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ints)
}
