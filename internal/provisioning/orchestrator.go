package provisioning

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"domainpilot/internal/metrics"
)

// Recorder receives queue items when they reach a terminal status. The queue
// itself is in-memory only; recording history elsewhere is the recorder's
// business.
type Recorder interface {
	Record(item QueueItem)
}

// Orchestrator owns the provisioning queue and the single-flight processor
// loop, and exposes the lifecycle surface the dashboard calls.
type Orchestrator struct {
	queue        *Queue
	sequencer    *Sequencer
	zones        ZoneAPI
	zoneAccounts ZoneResolver
	registrar    RegistrarResolver
	recorder     Recorder
	log          *zap.Logger
	pause        time.Duration

	running atomic.Bool
	aborted atomic.Bool
	wg      sync.WaitGroup
}

// Options configures an Orchestrator. ZoneAccounts, Registrar and Recorder
// are optional; Zones is the fallback client used when an item names no
// stored account.
type Options struct {
	Zones        ZoneAPI
	ZoneAccounts ZoneResolver
	Registrar    RegistrarResolver
	Recorder     Recorder
	Log          *zap.Logger
	// Pause is the courtesy delay between domains, a rate-limit nicety.
	Pause time.Duration
}

func New(opts Options) *Orchestrator {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	q := NewQueue()
	return &Orchestrator{
		queue:        q,
		sequencer:    NewSequencer(q, opts.Log),
		zones:        opts.Zones,
		zoneAccounts: opts.ZoneAccounts,
		registrar:    opts.Registrar,
		recorder:     opts.Recorder,
		log:          opts.Log,
		pause:        opts.Pause,
	}
}

// EnqueueParams is one batch submission from the dashboard. AccountID names
// the stored provisioning credential to use; zero means the default client.
type EnqueueParams struct {
	Domains            []string
	RootIP             string
	Proxied            bool
	AccountID          uint
	RegistrarAccountID uint
}

// Enqueue appends the batch (deduplicated against the current queue) and
// starts processing if idle. Returns the batch ID stamped on the new items.
func (o *Orchestrator) Enqueue(params EnqueueParams) string {
	batch := uuid.NewString()
	items := make([]QueueItem, 0, len(params.Domains))
	for _, domain := range params.Domains {
		items = append(items, QueueItem{
			Domain:             domain,
			Status:             StatusPending,
			RootIP:             params.RootIP,
			Proxied:            params.Proxied,
			AccountID:          params.AccountID,
			RegistrarAccountID: params.RegistrarAccountID,
			BatchID:            batch,
		})
	}
	before := o.queue.Len()
	o.queue.Append(items)
	metrics.DomainsEnqueued.Add(float64(o.queue.Len() - before))
	o.Start()
	return batch
}

// Start launches the processor loop. A second call while the loop is running
// is a no-op; the running loop re-queries the queue every iteration, so work
// appended mid-flight is picked up without a restart.
func (o *Orchestrator) Start() {
	if !o.running.CompareAndSwap(false, true) {
		return
	}
	o.aborted.Store(false)
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.run(context.Background())
		o.running.Store(false)
		// An Enqueue that raced with the drain saw running=true and skipped
		// starting a loop; pick its work up here.
		if _, ok := o.queue.NextPending(); ok && !o.aborted.Load() {
			o.Start()
		}
	}()
}

// Cancel flips the abort gate. The loop observes it between domains only, so
// the domain currently in flight always records its result first.
func (o *Orchestrator) Cancel() {
	o.aborted.Store(true)
}

// ResetQueue drops all queue items, including history of completed ones.
func (o *Orchestrator) ResetQueue() {
	o.queue.Reset()
}

// Snapshot returns the current queue state for rendering.
func (o *Orchestrator) Snapshot() []QueueItem {
	return o.queue.Snapshot()
}

// Wait blocks until the processor loop exits. Used by shutdown and tests.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) run(ctx context.Context) {
	o.log.Info("provisioning loop started")
	for {
		if o.aborted.Load() {
			o.log.Info("provisioning loop cancelled")
			return
		}
		domain, ok := o.queue.NextPending()
		if !ok {
			o.log.Info("provisioning loop drained")
			return
		}
		o.processDomain(ctx, domain)
		if o.pause > 0 {
			time.Sleep(o.pause)
		}
	}
}

func (o *Orchestrator) processDomain(ctx context.Context, domain string) {
	item, ok := o.queue.Get(domain)
	if !ok {
		return
	}
	zones := o.resolveZones(ctx, item.AccountID)
	o.sequencer.Run(ctx, domain, zones, o.resolveRegistrar(ctx, item.RegistrarAccountID))
	o.finish(domain)
}

// resolveZones maps the stored account ID to a zone client, falling back to
// the default client when no account was chosen. A resolution failure becomes
// a client whose every call fails, so zone creation reports the problem
// instead of provisioning against the wrong credential.
func (o *Orchestrator) resolveZones(ctx context.Context, accountID uint) ZoneAPI {
	if accountID == 0 || o.zoneAccounts == nil {
		return o.zones
	}
	client, err := o.zoneAccounts.Resolve(ctx, accountID)
	if err != nil {
		return erroredZones{err}
	}
	return client
}

// resolveRegistrar maps the stored account ID to a client. A resolution
// failure becomes a client whose push always fails, so the nameserver step
// reports the problem instead of silently disappearing.
func (o *Orchestrator) resolveRegistrar(ctx context.Context, accountID uint) RegistrarClient {
	if accountID == 0 {
		return nil
	}
	if o.registrar == nil {
		return erroredRegistrar{errors.New("no registrar configured")}
	}
	client, err := o.registrar.Resolve(ctx, accountID)
	if err != nil {
		return erroredRegistrar{err}
	}
	return client
}

func (o *Orchestrator) finish(domain string) {
	item, ok := o.queue.Get(domain)
	if !ok {
		return
	}
	switch item.Status {
	case StatusSuccess:
		metrics.DomainsSucceeded.Inc()
	case StatusError:
		metrics.DomainsFailed.Inc()
	}
	if o.recorder != nil {
		o.recorder.Record(item)
	}
}

type erroredRegistrar struct{ err error }

func (e erroredRegistrar) SetNameservers(context.Context, string, []string) error {
	return e.err
}

type erroredZones struct{ err error }

func (e erroredZones) CreateZone(context.Context, string) (Zone, error) { return Zone{}, e.err }

func (e erroredZones) CreateDNSRecord(context.Context, string, DNSRecord) error { return e.err }

func (e erroredZones) PatchZoneSetting(context.Context, string, string, any) error { return e.err }

func (e erroredZones) CreateWAFRule(context.Context, string, string, string) error { return e.err }
