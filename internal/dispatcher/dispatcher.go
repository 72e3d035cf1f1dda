package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/OCAP2/cursortools/internal/surface"
	"github.com/OCAP2/cursortools/pkg/core"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Callback receives a pointer event.
type Callback func(core.PointerEvent)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures a Dispatcher.
type Option func(*config)

type config struct {
	logged bool
}

// Logged adds debug logging for every emitted event.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

type subscriber struct {
	id     surface.Subscription
	kind   core.EventType
	fn     Callback
	active atomic.Bool
}

// Dispatcher fans host pointer events out to subscribers, synchronously and in
// subscription order. It implements surface.EventSource.
type Dispatcher struct {
	mu     sync.RWMutex
	byType map[core.EventType][]*subscriber
	byID   map[surface.Subscription]*subscriber
	next   surface.Subscription

	logger Logger
	logged bool

	// OTEL metrics
	subscribers metric.Int64ObservableGauge
	emitted     metric.Int64Counter
	delivered   metric.Int64Counter
}

var _ surface.EventSource = (*Dispatcher)(nil)

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger, opts ...Option) (*Dispatcher, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	d := &Dispatcher{
		byType: make(map[core.EventType][]*subscriber),
		byID:   make(map[surface.Subscription]*subscriber),
		logger: logger,
		logged: cfg.logged && logger != nil,
	}

	m := meter()

	var err error

	d.subscribers, err = m.Int64ObservableGauge(
		"dispatcher.subscribers",
		metric.WithDescription("Current number of pointer event subscribers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating subscribers gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			d.mu.RLock()
			defer d.mu.RUnlock()
			for kind, subs := range d.byType {
				o.ObserveInt64(d.subscribers, int64(len(subs)),
					metric.WithAttributes(attribute.String("event", kind.String())))
			}
			return nil
		},
		d.subscribers,
	)
	if err != nil {
		return nil, fmt.Errorf("registering subscribers callback: %w", err)
	}

	d.emitted, err = m.Int64Counter(
		"dispatcher.events.emitted",
		metric.WithDescription("Total pointer events emitted"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating emitted counter: %w", err)
	}

	d.delivered, err = m.Int64Counter(
		"dispatcher.events.delivered",
		metric.WithDescription("Total callback invocations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating delivered counter: %w", err)
	}

	return d, nil
}

// Subscribe registers fn for events of type t.
func (d *Dispatcher) Subscribe(t core.EventType, fn func(core.PointerEvent)) surface.Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	sub := &subscriber{id: d.next, kind: t, fn: fn}
	sub.active.Store(true)

	d.byType[t] = append(d.byType[t], sub)
	d.byID[sub.id] = sub
	return sub.id
}

// Unsubscribe removes a subscription. A subscription removed while an event is
// being emitted does not receive the rest of that event. Unknown ids are ignored.
func (d *Dispatcher) Unsubscribe(s surface.Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sub, ok := d.byID[s]
	if !ok {
		return
	}
	sub.active.Store(false)
	delete(d.byID, s)

	subs := d.byType[sub.kind]
	for i, candidate := range subs {
		if candidate == sub {
			d.byType[sub.kind] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
}

// Emit delivers ev to every subscriber of its type and returns how many callbacks ran.
// Subscribers added during delivery only see later events.
func (d *Dispatcher) Emit(ev core.PointerEvent) int {
	d.mu.RLock()
	subs := append([]*subscriber(nil), d.byType[ev.Type]...)
	d.mu.RUnlock()

	if d.logged {
		d.logger.Debug("emitting pointer event",
			"event", ev.Type.String(), "button", ev.Button.String(), "x", ev.X, "inAxes", ev.InAxes,
			"subscribers", len(subs))
	}

	evAttr := metric.WithAttributes(attribute.String("event", ev.Type.String()))
	d.emitted.Add(context.Background(), 1, evAttr)

	n := 0
	for _, sub := range subs {
		if !sub.active.Load() {
			continue
		}
		sub.fn(ev)
		n++
	}
	d.delivered.Add(context.Background(), int64(n), evAttr)

	return n
}

// Len returns the number of live subscriptions.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}
