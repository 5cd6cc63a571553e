package status

import "sync/atomic"

// MaxStringLen caps string metrics in runes so HUD cells stay aligned
const MaxStringLen = 16

// AtomicString is a string metric; the zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cut to MaxStringLen runes
func (s *AtomicString) Store(val string) {
	val = truncateRunes(val, MaxStringLen)
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
