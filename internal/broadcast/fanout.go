package broadcast

import (
	"errors"
	"fmt"
)

// Fanout publishes every message to each of its publishers in turn. A failing
// publisher does not stop delivery to the others.
type Fanout []Publisher

var _ Publisher = Fanout(nil)

// NewFanout builds a Fanout, skipping nil publishers.
func NewFanout(publishers ...Publisher) Fanout {
	f := make(Fanout, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			f = append(f, p)
		}
	}
	return f
}

func (f Fanout) Publish(eventType EventType, data any) error {
	var errs []error
	for i, p := range f {
		if err := p.Publish(eventType, data); err != nil {
			errs = append(errs, fmt.Errorf("publisher %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
