package session

import "sync"

// MediaHandle is a scoped acquisition of a playable media resource. It
// generalizes the create-on-load / revoke-on-replace blob URL lifecycle:
// release runs exactly once, when the handle is superseded or the session
// ends.
type MediaHandle struct {
	URI     string
	release func()
	once    sync.Once
}

func NewMediaHandle(uri string, release func()) *MediaHandle {
	return &MediaHandle{URI: uri, release: release}
}

// Release frees the underlying resource. Safe to call more than once.
func (h *MediaHandle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		if h.release != nil {
			h.release()
		}
	})
}

// MediaSlot holds at most one live MediaHandle, releasing the previous
// holder whenever a new one is swapped in.
type MediaSlot struct {
	mu      sync.Mutex
	current *MediaHandle
}

// Swap installs handle, releasing whatever was there before.
func (s *MediaSlot) Swap(handle *MediaHandle) {
	s.mu.Lock()
	prev := s.current
	s.current = handle
	s.mu.Unlock()

	prev.Release()
}

// Current returns the live handle, or nil.
func (s *MediaSlot) Current() *MediaHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close releases the live handle and empties the slot.
func (s *MediaSlot) Close() {
	s.Swap(nil)
}
