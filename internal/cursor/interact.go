package cursor

import (
	"github.com/OCAP2/cursortools/internal/surface"
	"github.com/OCAP2/cursortools/pkg/core"
)

// DragState is a marker's position in the press/motion/release cycle
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
)

func (s DragState) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// dragCapture remembers where a drag started
type dragCapture struct {
	origin float64
	pressX float64
}

// State returns the marker's drag state
func (m *Marker) State() DragState {
	if m.drag != nil {
		return StateDragging
	}
	return StateIdle
}

func (m *Marker) connect() {
	ev := m.reg.events
	if ev == nil {
		return
	}
	m.subs = append(m.subs,
		ev.Subscribe(core.EventPress, m.onPress),
		ev.Subscribe(core.EventMotion, m.onMotion),
		ev.Subscribe(core.EventRelease, m.onRelease),
	)
}

func (m *Marker) disconnect() {
	unsubscribeAll(m.reg.events, m.subs)
	m.subs = nil
}

// interactive reports whether a press may act on the marker at all
func (m *Marker) interactive(ev core.PointerEvent) bool {
	if m.removed || m.mode == core.ModeFixed || !ev.InAxes {
		return false
	}
	if m.reg.surface.NavigationTool() != "" {
		return false
	}
	return m.reg.surface.Hit(m.lineVis, ev)
}

func (m *Marker) onPress(ev core.PointerEvent) {
	if !m.interactive(ev) {
		return
	}

	switch ev.Button {
	case core.ButtonSecondary:
		// endpoints are deleted through their span's region handler
		if m.kind != core.KindSpanEndpoint {
			m.Remove()
		}
	case core.ButtonPrimary:
		m.drag = &dragCapture{origin: m.pos, pressX: ev.X}
	}
}

func (m *Marker) onMotion(ev core.PointerEvent) {
	if m.removed || m.drag == nil || !ev.InAxes {
		return
	}

	m.moveTo(ev.X)

	if fn := m.reg.cfg.OnMove; fn != nil {
		id, _ := m.DisplayID()
		fn(MoveEvent{
			Marker:    m.handle,
			DisplayID: id,
			Kind:      m.kind,
			From:      m.drag.origin,
			Position:  m.pos,
		})
	}
}

// onRelease ends a drag wherever the pointer is. Releasing an idle marker does nothing.
func (m *Marker) onRelease(core.PointerEvent) {
	if m.drag == nil {
		return
	}
	origin := m.drag.origin
	m.drag = nil
	m.reg.surface.RequestRedraw()

	id, _ := m.DisplayID()
	m.reg.log.Debug("drag finished", "id", id, "from", origin, "to", m.pos)

	if fn := m.reg.cfg.OnDragEnd; fn != nil {
		fn(m)
	}
}

func (s *Span) connect() {
	if s.reg.events == nil {
		return
	}
	s.subs = append(s.subs, s.reg.events.Subscribe(core.EventPress, s.onPress))
}

func (s *Span) disconnect() {
	unsubscribeAll(s.reg.events, s.subs)
	s.subs = nil
}

// onPress deletes the span on a secondary press inside its region
func (s *Span) onPress(ev core.PointerEvent) {
	if s.removed || ev.Button != core.ButtonSecondary || !ev.InAxes {
		return
	}
	if s.reg.surface.NavigationTool() != "" {
		return
	}
	if low := s.Low(); low == nil || low.mode == core.ModeFixed {
		return
	}
	if !s.reg.surface.Hit(s.regionVis, ev) {
		return
	}
	s.Delete()
}

func unsubscribeAll(events surface.EventSource, subs []surface.Subscription) {
	if events == nil {
		return
	}
	for _, sub := range subs {
		events.Unsubscribe(sub)
	}
}
