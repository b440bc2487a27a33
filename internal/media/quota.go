package media

import (
	"errors"
	"sync"
)

// Default per-submission limits. Documents are counted but not capped.
const (
	DefaultMaxImages = 25
	DefaultMaxVideos = 1
)

// ErrQuotaExceeded is returned when a reservation would exceed the
// per-category limit. It is raised before any network activity.
var ErrQuotaExceeded = errors.New("media: category quota exceeded")

// Usage is a point-in-time snapshot of quota consumption.
type Usage struct {
	ImagesUsed    int
	ImagesMax     int
	VideosUsed    int
	VideosMax     int
	DocumentsUsed int
}

// Quota tracks per-category media counts for one submission. Reserve and
// Release are atomic, so concurrent upload attempts cannot overshoot a
// limit between check and increment.
type Quota struct {
	mu        sync.Mutex
	used      map[Category]int
	maxImages int
	maxVideos int
}

// NewQuota creates a quota with the given image and video limits.
func NewQuota(maxImages, maxVideos int) *Quota {
	return &Quota{
		used:      make(map[Category]int),
		maxImages: maxImages,
		maxVideos: maxVideos,
	}
}

// Reserve claims one slot in the category, failing with ErrQuotaExceeded
// when the category is full. Document reservations always succeed.
func (q *Quota) Reserve(c Category) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch c {
	case CategoryImage:
		if q.used[c] >= q.maxImages {
			return ErrQuotaExceeded
		}
	case CategoryVideo:
		if q.used[c] >= q.maxVideos {
			return ErrQuotaExceeded
		}
	}
	q.used[c]++
	return nil
}

// Release returns one slot to the category. Releasing below zero clamps,
// so a stray double release cannot open extra capacity.
func (q *Quota) Release(c Category) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used[c] > 0 {
		q.used[c]--
	}
}

// Snapshot reports current usage against the limits.
func (q *Quota) Snapshot() Usage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Usage{
		ImagesUsed:    q.used[CategoryImage],
		ImagesMax:     q.maxImages,
		VideosUsed:    q.used[CategoryVideo],
		VideosMax:     q.maxVideos,
		DocumentsUsed: q.used[CategoryDocument],
	}
}
