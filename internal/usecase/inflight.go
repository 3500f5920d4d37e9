package usecase

import (
	"fmt"
	"strings"
	"sync"

	"evdealer/internal/domain/errs"
)

var ErrOperationInFlight = errs.Policy("another operation is already in flight")

// InFlightGuard allows one outstanding mutating operation per key (order or
// quotation id). Keys are independent; nothing is shared across them.
type InFlightGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{keys: make(map[string]struct{})}
}

// Acquire marks key busy. The returned release must be called once the
// operation returned, whatever its outcome.
func (g *InFlightGuard) Acquire(key string) (release func(), err error) {
	key = strings.TrimSpace(key)
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.keys[key]; busy {
		return nil, fmt.Errorf("%w: %s", ErrOperationInFlight, key)
	}
	g.keys[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether key has an operation in flight.
func (g *InFlightGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.keys[strings.TrimSpace(key)]
	return busy
}
