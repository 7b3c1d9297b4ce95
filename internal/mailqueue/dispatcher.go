package mailqueue

import (
	"context"

	"go.uber.org/zap"
)

// BroadcastDeliverer is implemented by the mail service.
type BroadcastDeliverer interface {
	DeliverBroadcast(ctx context.Context, mailID uint) error
}

// Dispatcher consumes broadcast jobs and fans each one out to inboxes.
type Dispatcher struct {
	queue     Queue
	deliverer BroadcastDeliverer
}

func NewDispatcher(queue Queue, deliverer BroadcastDeliverer) *Dispatcher {
	return &Dispatcher{
		queue:     queue,
		deliverer: deliverer,
	}
}

// Run blocks consuming jobs until the context is cancelled. Delivery
// failures are logged and the job is dropped; the mail row itself remains,
// so an operator can re-trigger delivery.
func (d *Dispatcher) Run() {
	d.RunContext(context.Background())
}

func (d *Dispatcher) RunContext(ctx context.Context) {
	jobs, err := d.queue.Consume(ctx)
	if err != nil {
		zap.L().Error("mail dispatcher failed to consume", zap.Error(err))
		return
	}

	for job := range jobs {
		if err := d.deliverer.DeliverBroadcast(ctx, job.MailID); err != nil {
			zap.L().Error("broadcast delivery failed",
				zap.String("job_id", job.ID),
				zap.Uint("mail_id", job.MailID),
				zap.Error(err),
			)
		}
	}
}
