package mail

import (
	"context"

	"github.com/dmitrijs2005/postwall/internal/logging"
)

// DefaultQueueSize is the dispatcher queue capacity used by the app wiring.
const DefaultQueueSize = 64

type task struct {
	email         string
	activationURL string
}

// Dispatcher queues activation mail and delivers it on a worker goroutine.
// Enqueue never blocks; when the queue is full the task is dropped with a
// warning, keeping registration latency independent of the mail backend.
type Dispatcher struct {
	notifier Notifier
	logger   logging.Logger
	tasks    chan task
}

// NewDispatcher constructs a dispatcher with the given queue capacity.
func NewDispatcher(n Notifier, l logging.Logger, queueSize int) *Dispatcher {
	return &Dispatcher{
		notifier: n,
		logger:   l.With("module", "mail_dispatcher"),
		tasks:    make(chan task, queueSize),
	}
}

// Enqueue schedules an activation mail for delivery. Safe for concurrent
// use; returns immediately.
func (d *Dispatcher) Enqueue(email, activationURL string) {
	select {
	case d.tasks <- task{email: email, activationURL: activationURL}:
	default:
		d.logger.Warn(context.Background(), "mail queue full, dropping activation mail", "email", email)
	}
}

// Run consumes the queue until ctx is cancelled. Delivery failures are
// logged and otherwise ignored; registration has already succeeded by the
// time a task is queued.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case t := <-d.tasks:
			if err := d.notifier.SendActivationMail(ctx, t.email, t.activationURL); err != nil {
				d.logger.Error(ctx, "error sending activation mail", "email", t.email, "error", err.Error())
				continue
			}
			d.logger.Info(ctx, "activation mail sent", "email", t.email)
		case <-ctx.Done():
			return
		}
	}
}
