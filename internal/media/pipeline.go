// internal/media/pipeline.go
//
// The pipeline drives pick-then-upload for one submission. Quota is
// reserved before any picker or network activity, a failed upload returns
// its slot so retrying is free, and removing an asset never deletes the
// remote copy.

package media

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Pipeline coordinates picking, quota accounting and uploads.
type Pipeline struct {
	mu      sync.Mutex
	quota   *Quota
	picker  Picker
	storage Storage
	assets  []*Asset
}

// NewPipeline creates a pipeline over the given picker and storage.
func NewPipeline(picker Picker, storage Storage, quota *Quota) *Pipeline {
	return &Pipeline{quota: quota, picker: picker, storage: storage}
}

// RequestUpload reserves quota, asks the picker for a file and uploads it.
// A cancelled pick returns (nil, nil) and leaves the quota untouched. A
// full category fails with ErrQuotaExceeded before the picker opens.
func (p *Pipeline) RequestUpload(ctx context.Context, category Category) (*Asset, error) {
	if err := p.quota.Reserve(category); err != nil {
		return nil, err
	}

	sel, err := p.picker.Pick(category)
	if err != nil {
		p.quota.Release(category)
		return nil, fmt.Errorf("media: pick %s: %w", category, err)
	}
	if sel == nil {
		p.quota.Release(category)
		return nil, nil
	}

	asset := &Asset{
		Handle:    uuid.NewString(),
		Category:  category,
		LocalPath: sel.Path,
		DataURI:   sel.DataURI,
		Status:    StatusPicked,
	}
	p.mu.Lock()
	p.assets = append(p.assets, asset)
	p.mu.Unlock()

	return p.upload(ctx, asset)
}

// Retry re-attempts a failed upload. Only assets in the failed state are
// retryable; the quota slot is reserved again for the attempt.
func (p *Pipeline) Retry(ctx context.Context, handle string) (*Asset, error) {
	p.mu.Lock()
	asset := p.findLocked(handle)
	if asset == nil {
		p.mu.Unlock()
		return nil, fmt.Errorf("media: no asset %s", handle)
	}
	if asset.Status != StatusFailed {
		p.mu.Unlock()
		return nil, fmt.Errorf("media: asset %s is %s, only failed uploads retry", handle, asset.Status)
	}
	p.mu.Unlock()

	if err := p.quota.Reserve(asset.Category); err != nil {
		return nil, err
	}
	return p.upload(ctx, asset)
}

// Remove drops an asset from the submission. The quota slot is returned
// unless the asset had already failed and released it. The remote copy,
// if any, is left in place.
func (p *Pipeline) Remove(handle string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, a := range p.assets {
		if a.Handle != handle {
			continue
		}
		if a.Status != StatusFailed {
			p.quota.Release(a.Category)
		}
		p.assets = append(p.assets[:i], p.assets[i+1:]...)
		return
	}
}

// Assets returns a snapshot of every tracked asset in pick order.
func (p *Pipeline) Assets() []Asset {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Asset, len(p.assets))
	for i, a := range p.assets {
		out[i] = *a
	}
	return out
}

// UploadedURLs returns the remote URLs of uploaded assets in the category,
// in pick order. This is what submission payloads consume.
func (p *Pipeline) UploadedURLs(category Category) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var urls []string
	for _, a := range p.assets {
		if a.Category == category && a.Status == StatusUploaded {
			urls = append(urls, a.RemoteURL)
		}
	}
	return urls
}

// Usage reports quota consumption for display.
func (p *Pipeline) Usage() Usage {
	return p.quota.Snapshot()
}

// Reset forgets all assets and returns every held slot. Used after a
// successful submission; remote copies are not touched.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.assets {
		if a.Status != StatusFailed {
			p.quota.Release(a.Category)
		}
	}
	p.assets = nil
}

func (p *Pipeline) upload(ctx context.Context, asset *Asset) (*Asset, error) {
	p.mu.Lock()
	asset.Status = StatusUploading
	p.mu.Unlock()

	var url string
	var err error
	if asset.Category == CategoryVideo {
		url, err = p.storage.UploadVideo(ctx, asset.LocalPath)
	} else {
		url, err = p.storage.UploadImage(ctx, asset.DataURI)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.findLocked(asset.Handle) == nil {
		// Removed while in flight. The removal released the slot.
		return nil, err
	}
	if err != nil {
		asset.Status = StatusFailed
		p.quota.Release(asset.Category)
		snap := *asset
		return &snap, err
	}
	asset.Status = StatusUploaded
	asset.RemoteURL = url
	snap := *asset
	return &snap, nil
}

func (p *Pipeline) findLocked(handle string) *Asset {
	for _, a := range p.assets {
		if a.Handle == handle {
			return a
		}
	}
	return nil
}
