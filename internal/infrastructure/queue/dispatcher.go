package queue

import (
	"context"
	"encoding/binary"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/api/metrics"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes notification deliveries to a fixed set of workers using
// consistent hashing on the recipient chat id, guaranteeing per-recipient
// delivery ordering. A failed send is logged and dropped; it never blocks or
// fails the remaining deliveries.
type Dispatcher struct {
	workers   []chan ports.Delivery
	messenger ports.Messenger
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, messenger ports.Messenger, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.Delivery, numWorkers),
		messenger: messenger,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Delivery, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a delivery to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(delivery ports.Delivery) {
	d.workers[d.shardIndex(delivery.ChatID)] <- delivery
}

// shardIndex maps a chat id deterministically to a worker index.
func (d *Dispatcher) shardIndex(chatID int64) int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(chatID))
	h := fnv.New32a()
	_, _ = h.Write(buf[:])
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-ch:
			if !ok {
				return
			}
			if err := d.messenger.SendMessage(ctx, delivery.ChatID, delivery.Text, nil); err != nil {
				metrics.NotificationsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Int64("chat_id", delivery.ChatID).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			metrics.NotificationsTotal.WithLabelValues("sent").Inc()
		}
	}
}
