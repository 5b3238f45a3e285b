package processor

import (
	"sync"

	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/metrics"
)

// Processor runs standings recalculation passes and pushes their results.
// Passes are serialized: a pass that starts after a write always observes it.
type Processor struct {
	store     Store
	publisher broadcast.Publisher
	notifier  Notifier
	metrics   metrics.Metrics

	mu sync.Mutex
	// cards holds the card counts written by the last successful pass, used to
	// spot counts edited directly in between.
	cards map[string]cardCount
}

type cardCount struct {
	yellow, red int
}
