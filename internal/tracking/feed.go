package tracking

import (
	"sync"
	"sync/atomic"
)

// Object is a detected bounding box in tracking camera space.
// Y is the top edge in a y-up camera frame, so the centre sits at Y - H/2.
type Object struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Feed holds the latest set of tracked objects. A producer goroutine publishes
// whole frames; the render loop copies the current frame once per tick.
type Feed struct {
	mu      sync.Mutex
	latest  []Object
	seq     uint64
	readSeq uint64

	// frames published but never read
	dropped atomic.Uint64
}

func NewFeed() *Feed {
	return &Feed{}
}

// Publish replaces the latest frame. The slice is copied.
func (f *Feed) Publish(objects []Object) {
	frame := make([]Object, len(objects))
	copy(frame, objects)

	f.mu.Lock()
	if f.seq != f.readSeq {
		f.dropped.Add(1)
	}
	f.latest = frame
	f.seq++
	f.mu.Unlock()
}

// Snapshot returns a copy of the latest frame and whether it is newer than
// the previous snapshot.
func (f *Feed) Snapshot(dst []Object) ([]Object, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dst = append(dst[:0], f.latest...)
	fresh := f.seq != f.readSeq
	f.readSeq = f.seq
	return dst, fresh
}

// Dropped reports how many frames were overwritten before being read.
func (f *Feed) Dropped() uint64 { return f.dropped.Load() }
