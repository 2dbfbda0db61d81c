package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bizledger/internal/core"
	applog "bizledger/internal/log"
	"bizledger/internal/notify"
)

// Publisher sends a store change to an external feed. *amqp.Client satisfies it.
type Publisher interface {
	PublishChange(ctx context.Context, change core.Change) error
}

// Subscribable is implemented by finance.Store and tasks.Store.
type Subscribable interface {
	Subscribe(fn notify.Func) (unsubscribe func())
}

// ChangeFeedConfig holds configuration for the change feed
type ChangeFeedConfig struct {
	// BufferSize bounds the number of changes waiting to be published (default: 256)
	BufferSize int

	// PublishTimeout limits a single publish call (default: 10s)
	PublishTimeout time.Duration
}

// DefaultChangeFeedConfig returns sensible defaults
func DefaultChangeFeedConfig() ChangeFeedConfig {
	return ChangeFeedConfig{
		BufferSize:     256,
		PublishTimeout: 10 * time.Second,
	}
}

// ChangeFeed forwards store notifications to a Publisher. Store callbacks only
// enqueue; publishing happens on a background goroutine so a slow broker
// never blocks a mutation. Publishing is best effort: failures are logged and
// the change is dropped.
type ChangeFeed struct {
	publisher Publisher
	config    ChangeFeedConfig
	logger    *applog.Logger

	queue chan core.Change

	mu      sync.Mutex
	running bool
	unsubs  []func()
	stopCh  chan struct{}
	doneCh  chan struct{}

	published int
	dropped   int
	failed    int
}

func NewChangeFeed(publisher Publisher, config ChangeFeedConfig, logger *applog.Logger) *ChangeFeed {
	def := DefaultChangeFeedConfig()
	if config.BufferSize <= 0 {
		config.BufferSize = def.BufferSize
	}
	if config.PublishTimeout <= 0 {
		config.PublishTimeout = def.PublishTimeout
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &ChangeFeed{
		publisher: publisher,
		config:    config,
		logger:    logger.WithComponent(applog.ComponentAMQP),
		queue:     make(chan core.Change, config.BufferSize),
	}
}

// Attach subscribes the feed to a store. Changes are queued even before Start.
func (f *ChangeFeed) Attach(src Subscribable) {
	unsub := src.Subscribe(f.enqueue)
	f.mu.Lock()
	f.unsubs = append(f.unsubs, unsub)
	f.mu.Unlock()
}

func (f *ChangeFeed) enqueue(c core.Change) {
	select {
	case f.queue <- c:
	default:
		f.mu.Lock()
		f.dropped++
		f.mu.Unlock()
		f.logger.Warn("Change feed buffer full, dropping change", applog.NewFields().WithChange(c).ToSlice()...)
	}
}

// Start begins publishing. Returns an error if already running.
func (f *ChangeFeed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return fmt.Errorf("change feed is already running")
	}
	f.running = true
	f.stopCh = make(chan struct{})
	f.doneCh = make(chan struct{})
	stopCh, doneCh := f.stopCh, f.doneCh
	f.mu.Unlock()

	go f.run(ctx, stopCh, doneCh)

	f.logger.InfoContext(ctx, "Change feed started", "buffer_size", f.config.BufferSize)
	return nil
}

// Stop detaches from every store, publishes what is still queued and waits
// for the loop to exit or ctx to expire. After a timeout Stop may be called
// again to keep waiting.
func (f *ChangeFeed) Stop(ctx context.Context) error {
	f.mu.Lock()
	unsubs := f.unsubs
	f.unsubs = nil
	running := f.running
	stopCh, doneCh := f.stopCh, f.doneCh
	f.stopCh = nil
	f.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	if !running {
		return nil
	}

	if stopCh != nil {
		close(stopCh)
	}

	select {
	case <-doneCh:
		f.logger.InfoContext(ctx, "Change feed stopped gracefully")
	case <-ctx.Done():
		f.logger.WarnContext(ctx, "Change feed stop timed out")
		return ctx.Err()
	}

	f.mu.Lock()
	f.running = false
	f.mu.Unlock()
	return nil
}

func (f *ChangeFeed) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	for {
		select {
		case c := <-f.queue:
			f.publish(ctx, c)
		case <-ctx.Done():
			return
		case <-stopCh:
			f.drain(ctx)
			return
		}
	}
}

func (f *ChangeFeed) drain(ctx context.Context) {
	for {
		select {
		case c := <-f.queue:
			f.publish(ctx, c)
		default:
			return
		}
	}
}

func (f *ChangeFeed) publish(ctx context.Context, c core.Change) {
	ctx, cancel := context.WithTimeout(ctx, f.config.PublishTimeout)
	defer cancel()

	err := f.publisher.PublishChange(ctx, c)

	f.mu.Lock()
	if err != nil {
		f.failed++
	} else {
		f.published++
	}
	f.mu.Unlock()

	if err != nil {
		f.logger.ErrorContext(ctx, "Failed to publish change", applog.NewFields().WithChange(c).WithError(err).ToSlice()...)
	}
}

// FeedStats counts what happened to the changes seen so far.
type FeedStats struct {
	Published int
	Failed    int
	Dropped   int
}

func (f *ChangeFeed) Stats() FeedStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FeedStats{Published: f.published, Failed: f.failed, Dropped: f.dropped}
}
