package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/taigrr/diorama/pkg/render"
)

// Options configures a set of texture units.
type Options struct {
	// MaxSize bounds the larger side of loaded textures; 0 disables it.
	MaxSize int
	Logger  *slog.Logger
}

// binding is what a unit holds: a texture, the file it came from ("" for
// textures set directly) and the sequence number of the request that
// produced it.
type binding struct {
	tex  *render.Texture
	path string
	seq  uint64
}

// Units is a fixed set of texture units. Every unit starts as a transparent
// placeholder and is replaced atomically once its image has loaded, so the
// render loop never blocks on I/O. Requests are ordered by when they were
// made: a load that finishes after a newer request for the same unit is
// dropped.
type Units struct {
	units   [render.MaxTextureUnits]atomic.Pointer[binding]
	seq     atomic.Uint64
	maxSize int
	log     *slog.Logger

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// NewUnits returns units holding placeholders.
func NewUnits(opts Options) *Units {
	u := &Units{maxSize: opts.MaxSize, log: opts.Logger}
	if u.log == nil {
		u.log = slog.Default()
	}
	for i := range u.units {
		u.units[i].Store(&binding{tex: render.NewPlaceholderTexture()})
	}
	return u
}

func checkUnit(unit int) error {
	if unit < 0 || unit >= render.MaxTextureUnits {
		return fmt.Errorf("texture unit %d out of range [0, %d)", unit, render.MaxTextureUnits)
	}
	return nil
}

// Texture returns the texture bound to unit, or nil for an invalid unit.
func (u *Units) Texture(unit int) *render.Texture {
	if checkUnit(unit) != nil {
		return nil
	}
	return u.units[unit].Load().tex
}

// publish installs b unless the unit already holds the result of a newer
// request. It reports whether b was installed.
func (u *Units) publish(unit int, b *binding) bool {
	for {
		cur := u.units[unit].Load()
		if cur.seq > b.seq {
			return false
		}
		if u.units[unit].CompareAndSwap(cur, b) {
			return true
		}
	}
}

// Set binds tex to unit directly. A nil tex restores the placeholder.
// Loads requested before Set no longer replace tex when they finish.
func (u *Units) Set(unit int, tex *render.Texture) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	if tex == nil {
		tex = render.NewPlaceholderTexture()
	}
	u.publish(unit, &binding{tex: tex, seq: u.seq.Add(1)})
	return nil
}

// Loaded reports whether unit holds a texture decoded from a file.
func (u *Units) Loaded(unit int) bool {
	return u.Path(unit) != ""
}

// Path returns the file the texture in unit was decoded from, or "" when
// the unit holds a placeholder or a texture set directly.
func (u *Units) Path(unit int) string {
	if checkUnit(unit) != nil {
		return ""
	}
	return u.units[unit].Load().path
}

// Load decodes path into unit synchronously.
func (u *Units) Load(unit int, path string) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	return u.load(unit, path, u.seq.Add(1))
}

// load decodes path and publishes it as request seq.
func (u *Units) load(unit int, path string, seq uint64) error {
	tex, err := LoadTexture(path, u.maxSize)
	if err != nil {
		return fmt.Errorf("load texture %d: %w", unit, err)
	}
	if !u.publish(unit, &binding{tex: tex, path: path, seq: seq}) {
		u.log.Debug("stale texture load dropped", "unit", unit, "path", path)
		return nil
	}
	u.log.Debug("texture loaded", "unit", unit, "path", path, "width", tex.Width, "height", tex.Height)
	return nil
}

// LoadAsync decodes path into unit on a goroutine. Until it finishes the
// unit keeps its current texture. The request is ordered at call time, so
// a later Load, LoadAsync or Set for the same unit wins even when this one
// finishes last. Failures are logged and reported by Wait.
func (u *Units) LoadAsync(ctx context.Context, unit int, path string) {
	seq := u.seq.Add(1)
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		if ctx.Err() != nil {
			u.fail(ctx.Err())
			return
		}
		if err := checkUnit(unit); err != nil {
			u.fail(err)
			return
		}
		u.log.Debug("texture load started", "unit", unit, "path", path)
		if err := u.load(unit, path, seq); err != nil {
			u.log.Warn("texture load failed", "unit", unit, "path", path, "err", err)
			u.fail(err)
		}
	}()
}

func (u *Units) fail(err error) {
	u.mu.Lock()
	u.errs = append(u.errs, err)
	u.mu.Unlock()
}

// Wait blocks until all pending loads finish or ctx is done. It returns the
// joined load errors collected so far.
func (u *Units) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	err := errors.Join(u.errs...)
	u.errs = nil
	return err
}
