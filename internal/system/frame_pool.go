package system

import (
	"image"
	"sync"
)

// FramePool reuses RGBA frame buffers of equal size across encodes
type FramePool struct {
	mu    sync.Mutex
	pools map[image.Point]*sync.Pool
}

var frames = NewFramePool()

func NewFramePool() *FramePool {
	return &FramePool{pools: make(map[image.Point]*sync.Pool)}
}

// GetImage returns a frame with the bounds of rect from the shared pool
func GetImage(rect image.Rectangle) *image.RGBA {
	return frames.Get(rect)
}

// PutImage hands a frame back to the shared pool
func PutImage(img *image.RGBA) {
	frames.Put(img)
}

func (p *FramePool) pool(rect image.Rectangle) *sync.Pool {
	size := rect.Size()
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.pools[size]
	if !ok {
		pool = &sync.Pool{New: func() any {
			return image.NewRGBA(image.Rectangle{Max: size})
		}}
		p.pools[size] = pool
	}
	return pool
}

// Get returns a frame whose bounds equal rect. Pixel contents are undefined.
func (p *FramePool) Get(rect image.Rectangle) *image.RGBA {
	img := p.pool(rect).Get().(*image.RGBA)
	img.Rect = rect
	return img
}

func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Empty() {
		return
	}
	p.pool(img.Rect).Put(img)
}
