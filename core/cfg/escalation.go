package cfg

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/panjf2000/ants/v2"
)

// FirstTakeHandler is notified when a block is about to transfer to a
// successor that has never been taken before, so an optimizer can drop
// code that assumed the path was dead.
type FirstTakeHandler interface {
	OnFirstTake(block *BasicBlock, successor int)
}

// FirstTakeFunc adapts a function to FirstTakeHandler.
type FirstTakeFunc func(block *BasicBlock, successor int)

func (f FirstTakeFunc) OnFirstTake(block *BasicBlock, successor int) { f(block, successor) }

// DeferredEscalatorConfig configures a DeferredEscalator.
type DeferredEscalatorConfig struct {
	Workers int // size of the notification pool

	// Nonblocking makes OnFirstTake return immediately when every worker is
	// busy. The event is parked and resubmitted by the next OnFirstTake or
	// Flush; Close delivers whatever is still parked.
	Nonblocking bool
}

func (c DeferredEscalatorConfig) sanitize() DeferredEscalatorConfig {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

type firstTakeEvent struct {
	block     *BasicBlock
	successor int
}

// DeferredEscalator moves first-take notifications off the executing
// goroutine. First takes of an edge are collapsed into one notification
// until the delegate has returned for it. Every accepted event reaches the
// delegate at least once before Close returns.
type DeferredEscalator struct {
	delegate FirstTakeHandler
	pool     *ants.Pool
	pending  mapset.Set[firstTakeEvent]
	retry    mapset.Set[firstTakeEvent] // rejected by a full pool
	flushMu  sync.Mutex
	wg       sync.WaitGroup
}

// NewDeferredEscalator creates an escalator forwarding to delegate.
func NewDeferredEscalator(delegate FirstTakeHandler, config DeferredEscalatorConfig) (*DeferredEscalator, error) {
	config = config.sanitize()
	pool, err := ants.NewPool(config.Workers, ants.WithNonblocking(config.Nonblocking))
	if err != nil {
		return nil, err
	}
	return &DeferredEscalator{
		delegate: delegate,
		pool:     pool,
		pending:  mapset.NewSet[firstTakeEvent](),
		retry:    mapset.NewSet[firstTakeEvent](),
	}, nil
}

// OnFirstTake queues the event for the delegate, after resubmitting any
// events an earlier full pool rejected.
func (d *DeferredEscalator) OnFirstTake(block *BasicBlock, successor int) {
	d.Flush()
	d.submit(firstTakeEvent{block: block, successor: successor}, false)
}

// submit hands ev to the pool, or parks it when the pool is full. A parked
// event leaves the retry set only once it is pending again.
func (d *DeferredEscalator) submit(ev firstTakeEvent, parked bool) {
	if !parked && d.retry.Contains(ev) {
		return
	}
	if !d.pending.Add(ev) {
		return
	}
	if parked {
		d.retry.Remove(ev)
	}
	d.wg.Add(1)
	err := d.pool.Submit(func() {
		defer d.wg.Done()
		defer d.pending.Remove(ev)
		d.delegate.OnFirstTake(ev.block, ev.successor)
	})
	if err != nil {
		d.retry.Add(ev)
		d.pending.Remove(ev)
		d.wg.Done()
		escalationDeferred.Inc(1)
		ethlog.Debug("Deferred first-take notification", "block", ev.block.ID(), "successor", ev.successor, "err", err)
	}
}

// Flush resubmits parked events to the pool. Events the pool still
// rejects stay parked. A Flush already in progress makes this a no-op.
func (d *DeferredEscalator) Flush() {
	if d.retry.Cardinality() == 0 || !d.flushMu.TryLock() {
		return
	}
	defer d.flushMu.Unlock()
	for _, ev := range d.retry.ToSlice() {
		d.submit(ev, true)
	}
}

// Pending returns the number of notifications queued or being delivered,
// parked ones included.
func (d *DeferredEscalator) Pending() int {
	return d.pending.Cardinality() + d.retry.Cardinality()
}

// Close waits for queued notifications, delivers parked ones on the
// calling goroutine and releases the pool. Execution must have stopped.
func (d *DeferredEscalator) Close() {
	d.flushMu.Lock()
	defer d.flushMu.Unlock()
	d.wg.Wait()
	for _, ev := range d.retry.ToSlice() {
		d.delegate.OnFirstTake(ev.block, ev.successor)
		d.retry.Remove(ev)
	}
	d.pool.Release()
}
