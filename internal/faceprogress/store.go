// Package faceprogress tracks the progress of the face detection job running
// for a video asset.
package faceprogress

import "github.com/kozaktomas/photo-prefs/internal/observable"

// Progress is the state of an in-flight face detection job. A published
// Progress is never modified.
type Progress struct {
	AssetID   string `json:"assetId"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
}

// Store holds at most one active Progress. A nil value means no job is active.
type Store struct {
	value *observable.Value[*Progress]
}

// NewStore creates an idle store.
func NewStore() *Store {
	return &Store{value: observable.New[*Progress](nil)}
}

// SetProgress records the progress of the job for assetID. Reaching or passing
// total clears the store. The active record is replaced regardless of which
// asset it belonged to.
func (s *Store) SetProgress(assetID string, processed, total int) {
	if processed >= total {
		s.value.Set(nil)
		return
	}
	s.value.Set(&Progress{AssetID: assetID, Processed: processed, Total: total})
}

// Reset clears the store.
func (s *Store) Reset() {
	s.value.Set(nil)
}

// Get returns the active progress, or nil when idle.
func (s *Store) Get() *Progress {
	return s.value.Get()
}

// Subscribe registers fn, which receives the current value immediately and
// every later change until the returned func is called.
func (s *Store) Subscribe(fn func(*Progress)) func() {
	return s.value.Subscribe(fn)
}
