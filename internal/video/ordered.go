package video

import (
	"fmt"
	"sync"
)

// OrderedSink restores ascending turn order in front of a FrameSink.
// Compositing workers may finish frames out of order; OrderedSink
// holds early arrivals until every predecessor has been delivered.
type OrderedSink struct {
	mu      sync.Mutex
	dst     FrameSink
	next    int
	pending map[int]Frame
}

// NewOrderedSink wraps dst, expecting frames for turns 1..N.
func NewOrderedSink(dst FrameSink) *OrderedSink {
	return &OrderedSink{
		dst:     dst,
		next:    1,
		pending: make(map[int]Frame),
	}
}

// Append delivers the frame to the destination once all earlier turns
// have been delivered; until then it is buffered.
func (s *OrderedSink) Append(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Turn < s.next {
		return fmt.Errorf("frame for turn %d already delivered", f.Turn)
	}
	if _, dup := s.pending[f.Turn]; dup {
		return fmt.Errorf("duplicate frame for turn %d", f.Turn)
	}

	s.pending[f.Turn] = f
	for {
		next, ok := s.pending[s.next]
		if !ok {
			return nil
		}
		delete(s.pending, s.next)
		if err := s.dst.Append(next); err != nil {
			return err
		}
		s.next++
	}
}

// Drained verifies every buffered frame was delivered. Call after all
// producers have finished.
func (s *OrderedSink) Drained() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) > 0 {
		return fmt.Errorf("%d frames still waiting on turn %d", len(s.pending), s.next)
	}
	return nil
}
