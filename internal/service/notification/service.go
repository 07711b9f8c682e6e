package notification

import (
	"context"
	"log/slog"
	"sync"

	"github.com/presensia/attendance-backend-go/internal/domain/notification"
)

// Config holds notification dispatcher configuration
type Config struct {
	QueueSize   int // default: 1000
	WorkerCount int // default: 2
}

// Dispatcher buffers notifications on a channel and drains them on background
// workers, so a slow downstream can never stall check-in/out or approval
// transitions. Actual delivery is a collaborator concern; this dispatcher
// hands each notification to slog.
type Dispatcher struct {
	config Config
	logger *slog.Logger

	queue  chan notification.Notification
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewDispatcher creates a notifier with background workers.
func NewDispatcher(logger *slog.Logger, cfg Config) *Dispatcher {
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}

	s := &Dispatcher{
		config: cfg,
		logger: logger,
		queue:  make(chan notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

// Enqueue implements notification.Notifier. A full queue drops the
// notification with a log line rather than blocking the caller.
func (s *Dispatcher) Enqueue(_ context.Context, n notification.Notification) {
	select {
	case s.queue <- n:
	case <-s.stopCh:
	default:
		s.logger.Warn("notification queue full, dropping",
			"type", string(n.Type), "recipient", n.RecipientID)
	}
}

func (s *Dispatcher) worker() {
	defer s.wg.Done()
	for {
		select {
		case n := <-s.queue:
			s.deliver(n)
		case <-s.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case n := <-s.queue:
					s.deliver(n)
				default:
					return
				}
			}
		}
	}
}

func (s *Dispatcher) deliver(n notification.Notification) {
	s.logger.Info("notification dispatched",
		"type", string(n.Type),
		"recipient", n.RecipientID,
		"title", n.Title,
		"message", n.Message,
	)
}

// Stop shuts the workers down after draining the queue.
func (s *Dispatcher) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}
