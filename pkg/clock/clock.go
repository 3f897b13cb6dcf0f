// Package clock abstrae la hora actual para poder fijarla en pruebas.
package clock

import (
	"sync"
	"time"
)

// Clock devuelve la hora actual.
type Clock interface {
	Now() time.Time
}

// RealClock usa time.Now.
type RealClock struct{}

// NewRealClock construye el reloj del sistema.
func NewRealClock() RealClock { return RealClock{} }

func (RealClock) Now() time.Time { return time.Now() }

// MockClock es un reloj controlable para pruebas.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock crea un reloj fijo en t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set mueve el reloj a t.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance adelanta el reloj d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
