package cursor

import (
	"github.com/OCAP2/cursortools/internal/surface"
	"github.com/OCAP2/cursortools/internal/tag"
	"github.com/OCAP2/cursortools/pkg/core"
)

// Marker is a draggable vertical cursor with a label
type Marker struct {
	reg    *Registry
	handle MarkerHandle

	text  string // full label text, prefix plus id token
	kind  core.Kind
	mode  core.Mode
	color string
	pos   float64
	style core.LineStyle
	span  SpanHandle // set iff kind == core.KindSpanEndpoint

	lineVis  surface.Handle
	labelVis surface.Handle
	subs     []surface.Subscription
	drag     *dragCapture
	removed  bool
}

// NewMarker places a standalone marker at pos. Span endpoints are only created by NewSpan.
func NewMarker(reg *Registry, pos float64, props MarkerProps) (*Marker, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}
	m := reg.newMarker(pos, core.KindStandalone, props)
	reg.surface.RequestRedraw()
	return m, nil
}

// newMarker allocates an id, registers the marker, draws it and subscribes its
// pointer handlers. The caller requests the redraw.
func (r *Registry) newMarker(pos float64, kind core.Kind, props MarkerProps) *Marker {
	id := r.allocateDisplayID()

	m := &Marker{
		reg:    r,
		handle: MarkerHandle(r.nextHandle()),
		text:   tag.ComposeLabel("", id),
		kind:   kind,
		mode:   props.Mode,
		pos:    pos,
		style:  r.lineStyle(props),
	}
	m.color = m.style.Color
	r.markers[m.handle] = m

	m.lineVis = r.surface.DrawVerticalLine(pos, m.lineStyle())
	m.labelVis = r.surface.DrawLabel(pos, r.cfg.Styles.Label.Y, m.text, m.labelStyle())
	m.connect()

	r.log.Debug("marker created", "id", id, "kind", kind.String(), "position", pos)
	return m
}

// Handle returns the marker's stable identity
func (m *Marker) Handle() MarkerHandle {
	return m.handle
}

// DisplayID returns the id shown in the label. ok is false when the label carries none.
func (m *Marker) DisplayID() (id int, ok bool) {
	return tag.ParseDisplayID(m.text)
}

// Text returns the full label text including the id
func (m *Marker) Text() string {
	return m.text
}

// Tag returns the label text without the id
func (m *Marker) Tag() string {
	return tag.StripDisplayID(m.text)
}

// Kind returns whether the marker is standalone or a span endpoint
func (m *Marker) Kind() core.Kind {
	return m.kind
}

// Mode returns the interaction mode
func (m *Marker) Mode() core.Mode {
	return m.mode
}

// Color returns the marker color
func (m *Marker) Color() string {
	return m.color
}

// Position returns the marker's data coordinate
func (m *Marker) Position() float64 {
	return m.pos
}

// Span returns the span this marker is an endpoint of
func (m *Marker) Span() (*Span, bool) {
	if m.kind != core.KindSpanEndpoint {
		return nil, false
	}
	return m.reg.Span(m.span)
}

// Removed reports whether the marker has been taken off its surface
func (m *Marker) Removed() bool {
	return m.removed
}

func (m *Marker) lineStyle() core.LineStyle {
	style := m.style
	style.Color = m.color
	if m.mode == core.ModeFixed {
		style.Dash = m.reg.cfg.Styles.FixedDash
	}
	return style
}

func (m *Marker) labelStyle() core.LabelStyle {
	style := m.reg.cfg.Styles.Label
	style.Color = m.color
	return style
}

func (m *Marker) refresh() {
	m.reg.surface.UpdateLine(m.lineVis, m.pos, m.lineStyle())
	m.reg.surface.UpdateLabel(m.labelVis, m.pos, m.text, m.labelStyle())
	m.reg.surface.RequestRedraw()
}

// SetMode switches between interact (default dash) and fixed (dash-dot) mode.
func (m *Marker) SetMode(mode core.Mode) {
	if m.removed {
		return
	}
	m.mode = mode
	if mode == core.ModeFixed {
		m.drag = nil
	}
	m.refresh()
}

// SetColor recolors the line and label
func (m *Marker) SetColor(color string) {
	if m.removed || m.color == color {
		return
	}
	m.color = color
	m.refresh()
}

// SetLabel replaces the label prefix. With keepID the current id is appended;
// without it the label becomes exactly prefix, which may leave the marker without an id.
// A label whose id another marker already shows is rejected with ErrDuplicateID.
func (m *Marker) SetLabel(prefix string, keepID bool) error {
	if m.removed {
		return ErrRemoved
	}
	text := m.labelText(prefix, keepID)
	if text == m.text {
		return nil
	}
	if err := m.reg.checkLabel(text, m); err != nil {
		return err
	}
	m.text = text
	m.refresh()
	return nil
}

func (m *Marker) labelText(prefix string, keepID bool) string {
	if keepID {
		if id, ok := m.DisplayID(); ok {
			return tag.ComposeLabel(prefix, id)
		}
	}
	return prefix
}

// SetPosition moves the marker programmatically. A span endpoint also updates its span's fill.
func (m *Marker) SetPosition(pos float64) {
	if m.removed {
		return
	}
	m.moveTo(pos)
}

func (m *Marker) moveTo(pos float64) {
	m.pos = pos
	m.refresh()
	if s, ok := m.Span(); ok {
		s.Update()
	}
}

// Remove takes the marker off its surface. Removing a span endpoint deletes the
// whole span, so an endpoint never outlives its pair.
func (m *Marker) Remove() {
	if m.removed {
		return
	}
	if s, ok := m.Span(); ok {
		s.Delete()
		return
	}
	m.detach()
	m.reg.surface.RequestRedraw()
}

// detach releases subscriptions and visuals and unregisters the marker.
func (m *Marker) detach() {
	m.disconnect()
	m.reg.surface.RemoveVisual(m.lineVis)
	m.reg.surface.RemoveVisual(m.labelVis)
	delete(m.reg.markers, m.handle)
	m.drag = nil
	m.removed = true

	id, _ := m.DisplayID()
	m.reg.log.Debug("marker removed", "id", id, "kind", m.kind.String())
}
