package uplink

import (
	"sync"

	"github.com/keating/ivy-monitor/internal/logic"
)

// FakeUploader records uploaded snapshots. Safe for concurrent use — the
// upload task calls it from its own goroutine.
type FakeUploader struct {
	mu sync.Mutex

	readings []logic.Reading

	// Err, if set, will be returned by Upload.
	Err error
}

// NewFakeUploader creates a FakeUploader.
func NewFakeUploader() *FakeUploader {
	return &FakeUploader{}
}

// Upload records the snapshot.
func (f *FakeUploader) Upload(r logic.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.readings = append(f.readings, r)
	return nil
}

// Readings returns a copy of all recorded snapshots.
func (f *FakeUploader) Readings() []logic.Reading {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]logic.Reading, len(f.readings))
	copy(out, f.readings)
	return out
}

// Count returns the number of recorded uploads.
func (f *FakeUploader) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.readings)
}

// FakeConnectivity reports a fixed connectivity state.
type FakeConnectivity struct {
	Connected bool
}

// IsConnected reports the configured state.
func (f *FakeConnectivity) IsConnected() bool {
	return f.Connected
}
