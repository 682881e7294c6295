package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/api/metrics"
	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes order status events to a fixed set of workers using
// consistent hashing on the order id, so events of one order are recorded in
// the order they were published.
type Dispatcher struct {
	workers  []chan domain.OrderStatusEvent
	service  ports.OrderEventService
	log      zerolog.Logger
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.OrderEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.OrderStatusEvent, numWorkers),
		service: service,
		log:     log,
		quit:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.OrderStatusEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. ctx is passed to every Record call;
// cancelling it abandons queued events, so shut down with Stop first.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop refuses new events, lets every worker record what is already queued
// and waits for them until ctx is done. Safe to call more than once.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() { close(d.quit) })

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish sends an event to the worker responsible for its order. It blocks
// while that worker's buffer is full and drops the event once Stop was called.
func (d *Dispatcher) Publish(event domain.OrderStatusEvent) {
	idx := d.shardIndex(event.OrderID)
	select {
	case <-d.quit:
		d.drop(event)
		return
	default:
	}

	select {
	case d.workers[idx] <- event:
		metrics.OrderEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	case <-d.quit:
		d.drop(event)
	}
}

func (d *Dispatcher) drop(event domain.OrderStatusEvent) {
	metrics.OrderEventsDroppedTotal.Inc()
	d.log.Warn().
		Str("order_id", event.OrderID).
		Str("status", string(event.Status)).
		Msg("dispatcher stopped, order event dropped")
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.OrderStatusEvent) {
	defer d.wg.Done()
	depth := metrics.OrderEventsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.quit:
			// drain what was queued before Stop
			for {
				select {
				case event := <-ch:
					depth.Set(float64(len(ch)))
					d.record(ctx, id, event)
				default:
					return
				}
			}
		case event := <-ch:
			depth.Set(float64(len(ch)))
			d.record(ctx, id, event)
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, event domain.OrderStatusEvent) {
	if err := d.service.Record(ctx, event); err != nil {
		metrics.OrderEventsErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("order_id", event.OrderID).
			Str("status", string(event.Status)).
			Int("worker_id", id).
			Msg("order event recording failed")
		return
	}
	metrics.OrderEventsProcessedTotal.WithLabelValues(string(event.Status)).Inc()
}
