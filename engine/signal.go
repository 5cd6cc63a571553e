package engine

import (
	"sync"
	"time"
)

// UpdateFunc is a per-frame callback receiving the elapsed game time
type UpdateFunc func(dt time.Duration)

// Signal fans a frame tick out to connected callbacks in connection order
type Signal struct {
	mu    sync.Mutex
	conns []*Connection
}

// Connection is a subscription returned by Signal.Connect
type Connection struct {
	signal *Signal
	fn     UpdateFunc
}

// Connect subscribes fn; callbacks connected during Emit run from the next Emit
func (s *Signal) Connect(fn UpdateFunc) *Connection {
	c := &Connection{signal: s, fn: fn}
	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.mu.Unlock()
	return c
}

// Disconnect removes the subscription, safe to call more than once
func (c *Connection) Disconnect() {
	s := c.signal
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, conn := range s.conns {
		if conn == c {
			s.conns = append(s.conns[:i:i], s.conns[i+1:]...)
			return
		}
	}
}

// Connected reports whether the subscription is still active
func (c *Connection) Connected() bool {
	s := c.signal
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conn := range s.conns {
		if conn == c {
			return true
		}
	}
	return false
}

// Emit invokes every connected callback with dt
func (s *Signal) Emit(dt time.Duration) {
	s.mu.Lock()
	conns := s.conns
	s.mu.Unlock()

	for _, c := range conns {
		c.fn(dt)
	}
}

// Len returns the number of active connections
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}
