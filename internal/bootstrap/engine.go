package bootstrap

import (
	"log/slog"

	"github.com/OCAP2/cursortools/internal/config"
	"github.com/OCAP2/cursortools/internal/cursor"
	"github.com/OCAP2/cursortools/internal/surface"
	memsurface "github.com/OCAP2/cursortools/internal/surface/memory"
)

// NewSurface creates an in-memory surface sized by the view.* settings
func NewSurface() *memsurface.Surface {
	v := config.GetViewConfig()
	return memsurface.New(memsurface.Config{
		Width: v.Width,
		XMin:  v.XMin,
		XMax:  v.XMax,
	})
}

// CursorConfig builds the registry config from the cursor.* and span.* settings
func CursorConfig(logger *slog.Logger) cursor.Config {
	cfg := cursor.DefaultConfig()
	cfg.Styles = config.GetStyles()
	if logger != nil {
		cfg.Logger = logger.With("component", "cursor")
	}
	return cfg
}

// NewHeadless creates a registry with no pointer input, for editing stored layouts
func NewHeadless(logger *slog.Logger) (*memsurface.Surface, *cursor.Registry) {
	s := NewSurface()
	var events surface.EventSource
	return s, cursor.NewRegistry(s, events, CursorConfig(logger))
}
