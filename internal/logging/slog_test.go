package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// layoutContext mimics the viewer: the open layout can change between records
type layoutContext struct {
	mu   sync.Mutex
	name string
}

func (c *layoutContext) set(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

func (c *layoutContext) attrs() []slog.Attr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.name == "" {
		return nil
	}
	return []slog.Attr{slog.String("layout", c.name)}
}

func newManager(t *testing.T, level string, ctx ContextProvider) (*SlogManager, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	m := NewSlogManager()
	if ctx != nil {
		m.SetContext(ctx)
	}
	m.Setup(&buf, level, nil)
	buf.Reset()
	return m, &buf
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestSetContext_FollowsLayoutChanges(t *testing.T) {
	lc := &layoutContext{}
	m, buf := newManager(t, "info", lc.attrs)

	m.Logger().Info("started")
	lc.set("bench")
	m.Logger().Info("loaded")
	lc.set("sweep")
	m.Logger().Info("switched")

	out := lines(buf)
	require.Len(t, out, 3)
	assert.NotContains(t, out[0], "layout=")
	assert.Contains(t, out[1], "layout=bench")
	assert.Contains(t, out[2], "layout=sweep")
}

func TestSetContext_ReachesComponentLoggers(t *testing.T) {
	lc := &layoutContext{name: "bench"}
	m, buf := newManager(t, "info", lc.attrs)

	m.Component("storage").Info("saved", "records", 4)

	out := buf.String()
	assert.Contains(t, out, "component=storage")
	assert.Contains(t, out, "records=4")
	assert.Contains(t, out, "layout=bench")
}

func TestSetContext_ExplicitLayoutWins(t *testing.T) {
	lc := &layoutContext{name: "bench"}
	m, buf := newManager(t, "info", lc.attrs)

	m.Component("cursorctl").Info("copied", "layout", "archive")

	out := buf.String()
	assert.Contains(t, out, "layout=archive")
	assert.NotContains(t, out, "layout=bench")
}

func TestSetContext_OnlyForEnabledRecords(t *testing.T) {
	calls := 0
	m, buf := newManager(t, "warn", func() []slog.Attr {
		calls++
		return []slog.Attr{slog.String("layout", "bench")}
	})

	m.Logger().Info("dropped")
	m.Logger().Warn("kept")

	assert.Equal(t, 1, calls)
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestComponent_KeepsGroupsAndAttrs(t *testing.T) {
	lc := &layoutContext{name: "bench"}
	m, buf := newManager(t, "debug", lc.attrs)

	log := m.Component("viewer").With("tool", "cursorview").WithGroup("drag")
	log.Debug("moved", "x", 1.5)

	out := buf.String()
	assert.Contains(t, out, "component=viewer")
	assert.Contains(t, out, "tool=cursorview")
	assert.Contains(t, out, "drag.x=1.5")
}

func TestComponent_BeforeSetupUsesDefault(t *testing.T) {
	m := NewSlogManager()
	assert.Equal(t, slog.Default(), m.Logger())
	assert.NotNil(t, m.Component("registry"))
}

func TestSetup_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		info    bool
		warning bool
	}{
		{"debug", true, true, true},
		{"INFO", false, true, true},
		{"warning", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			m, buf := newManager(t, tt.level, nil)
			log := m.Component("levels")
			log.Debug("d-msg")
			log.Info("i-msg")
			log.Warn("w-msg")

			out := buf.String()
			assert.Equal(t, tt.debug, strings.Contains(out, "d-msg"))
			assert.Equal(t, tt.info, strings.Contains(out, "i-msg"))
			assert.Equal(t, tt.warning, strings.Contains(out, "w-msg"))
		})
	}
}

func TestSetup_ConsoleWithoutFile(t *testing.T) {
	restore := captureStdout(t)

	m := NewSlogManager()
	m.SetContext((&layoutContext{name: "bench"}).attrs)
	m.Setup(nil, "info", nil)
	m.Component("cursorview").Info("ready")

	stdout := restore()
	assert.Contains(t, stdout, "Logging initialized")
	assert.Contains(t, stdout, "component=cursorview")
	assert.Contains(t, stdout, "layout=bench")
}

func TestSetup_FileKeepsStdoutQuiet(t *testing.T) {
	restore := captureStdout(t)

	var file bytes.Buffer
	m := NewSlogManager()
	m.Setup(&file, "info", nil)
	m.Logger().Info("to file")

	assert.Empty(t, restore())
	assert.Contains(t, file.String(), "to file")
}

func TestSetup_AgainSwitchesDestination(t *testing.T) {
	lc := &layoutContext{name: "bench"}
	var first, second bytes.Buffer
	m := NewSlogManager()
	m.SetContext(lc.attrs)

	m.Setup(&first, "info", nil)
	m.Logger().Info("one")
	m.Setup(&second, "info", nil)
	m.Logger().Info("two")

	assert.NotContains(t, first.String(), "two")
	assert.Contains(t, second.String(), "msg=two")
	assert.Contains(t, second.String(), "layout=bench")
}

func TestSetup_OTelProviderFlush(t *testing.T) {
	provider := sdklog.NewLoggerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	var buf bytes.Buffer
	m := NewSlogManager()
	m.SetContext((&layoutContext{name: "bench"}).attrs)
	m.Setup(&buf, "info", provider)
	m.Component("otel").Info("bridged")

	assert.Contains(t, buf.String(), "layout=bench")
	assert.NoError(t, m.Flush(context.Background()))
	assert.NoError(t, NewSlogManager().Flush(context.Background()))
}

func TestContextHandler_DirectUse(t *testing.T) {
	var buf bytes.Buffer
	h := NewContextHandler(slog.NewTextHandler(&buf, nil), func() []slog.Attr {
		return []slog.Attr{slog.String("layout", "bench"), slog.String("tool", "cursorctl")}
	})

	slog.New(h).Info("listed", "layout", "other")
	slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil), nil)).Info("bare")

	out := lines(&buf)
	require.Len(t, out, 2)
	assert.Contains(t, out[0], "layout=other")
	assert.Contains(t, out[0], "tool=cursorctl")
	assert.NotContains(t, out[0], "layout=bench")
	assert.NotContains(t, out[1], "layout=")
	assert.Same(t, h, h.WithGroup(""))
}

// captureStdout swaps the console writer for a pipe; the returned func
// restores it and returns what was written.
func captureStdout(t *testing.T) func() string {
	t.Helper()

	r, w, err := osPipe()
	require.NoError(t, err)
	orig := osStdout
	osStdout = w

	return func() string {
		_ = w.Close()
		osStdout = orig
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		_ = r.Close()
		return buf.String()
	}
}
