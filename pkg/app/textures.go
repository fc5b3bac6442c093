package app

import (
	"context"
	"fmt"

	"github.com/taigrr/diorama/pkg/assets"
	"github.com/taigrr/diorama/pkg/config"
	"github.com/taigrr/diorama/pkg/render"
)

// Patterns returns the generated textures used for units without an image
// file: bark-brown checks, brick-red checks and an icy gradient.
func Patterns() []*render.Texture {
	bark := render.NewCheckerTexture(32, 32, 4, render.RGB(110, 72, 40), render.RGB(80, 50, 28))
	brick := render.NewCheckerTexture(32, 32, 8, render.RGB(170, 60, 45), render.RGB(120, 110, 105))
	ice := render.NewGradientTexture(32, 32, render.RGB(200, 230, 255), render.RGB(120, 170, 230))
	return []*render.Texture{bark, brick, ice}
}

// Textures binds the configured images to texture units. Units without a
// path get a pattern; the files load in the background. With watching
// enabled the returned watcher must be run by the caller; it is nil
// otherwise.
func Textures(ctx context.Context, units *assets.Units, cfg config.TexturesConfig) (*assets.Watcher, error) {
	for i, tex := range Patterns() {
		if i < len(cfg.Paths) && cfg.Paths[i] != "" {
			continue
		}
		if err := units.Set(i, tex); err != nil {
			return nil, err
		}
	}
	for i, p := range cfg.Paths {
		if p != "" {
			units.LoadAsync(ctx, i, p)
		}
	}
	if !cfg.Watch || len(cfg.Paths) == 0 {
		return nil, nil
	}

	w, err := assets.NewWatcher(units)
	if err != nil {
		return nil, err
	}
	for i, p := range cfg.Paths {
		if p == "" {
			continue
		}
		if err := w.Watch(i, p); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch textures: %w", err)
		}
	}
	return w, nil
}
