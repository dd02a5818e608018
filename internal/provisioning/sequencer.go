package provisioning

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"domainpilot/internal/metrics"
)

// Sequencer runs a single queue item through the fixed provisioning order:
// zone creation, optional registrar nameserver handoff, convenience DNS
// records, then the settings pass. Only zone creation is fatal to the domain.
type Sequencer struct {
	queue *Queue
	log   *zap.Logger
}

func NewSequencer(queue *Queue, log *zap.Logger) *Sequencer {
	return &Sequencer{queue: queue, log: log}
}

// Run processes one domain end to end. zones is already scoped to the
// credential chosen at enqueue time; registrar may be nil when no registrar
// account was chosen.
func (s *Sequencer) Run(ctx context.Context, domain string, zones ZoneAPI, registrar RegistrarClient) {
	item, ok := s.queue.Get(domain)
	if !ok {
		return
	}

	s.queue.Update(domain, func(it *QueueItem) {
		it.Status = StatusProcessing
		it.SetStep(StepCreateZone, StatusProcessing, "", "")
	})

	zone, err := zones.CreateZone(ctx, domain)
	if err != nil {
		s.log.Warn("zone creation failed", zap.String("domain", domain), zap.Error(err))
		metrics.StepsFailed.Inc()
		s.queue.Update(domain, func(it *QueueItem) {
			it.Status = StatusError
			it.Error = err.Error()
			it.SetStep(StepCreateZone, StatusError, err.Error(), "")
		})
		return
	}

	// ZoneID and nameservers are durable facts about the remote zone; nothing
	// after this point clears them.
	s.queue.Update(domain, func(it *QueueItem) {
		it.ZoneID = zone.ID
		it.Nameservers = append([]string(nil), zone.Nameservers...)
		it.SetStep(StepCreateZone, StatusSuccess, "", "")
	})

	if item.RegistrarAccountID != 0 && registrar != nil {
		s.runStep(ctx, domain, StepSetNameservers, "", func(ctx context.Context) error {
			return registrar.SetNameservers(ctx, domain, zone.Nameservers)
		})
	}

	s.runStep(ctx, domain, StepCreateCNAME, "www", func(ctx context.Context) error {
		return zones.CreateDNSRecord(ctx, zone.ID, DNSRecord{Type: "CNAME", Name: "www", Content: domain, Proxied: item.Proxied})
	})

	if item.RootIP != "" {
		s.runStep(ctx, domain, StepCreateRootRecord, item.RootIP, func(ctx context.Context) error {
			return zones.CreateDNSRecord(ctx, zone.ID, DNSRecord{Type: "A", Name: "@", Content: item.RootIP, Proxied: item.Proxied})
		})
	}

	s.applySettings(ctx, domain, zones, zone.ID)

	// Optional step failures are tolerated; the zone exists, so the domain is
	// provisioned.
	s.queue.Update(domain, func(it *QueueItem) { it.Status = StatusSuccess })
}

// runStep executes one tolerable step. A failure is recorded on the step and
// the sequence continues.
func (s *Sequencer) runStep(ctx context.Context, domain, name, variable string, fn func(context.Context) error) {
	s.queue.Update(domain, func(it *QueueItem) { it.SetStep(name, StatusProcessing, "", variable) })
	if err := fn(ctx); err != nil {
		s.log.Warn("step failed", zap.String("domain", domain), zap.String("step", name), zap.Error(err))
		metrics.StepsFailed.Inc()
		s.queue.Update(domain, func(it *QueueItem) { it.SetStep(name, StatusError, err.Error(), variable) })
		return
	}
	s.queue.Update(domain, func(it *QueueItem) { it.SetStep(name, StatusSuccess, "", variable) })
}

// applySettings fires the eleven settings concurrently. Steps are seeded in
// canonical order before any call starts, so completion order cannot
// reshuffle the visible list; each result is merged back by step name.
func (s *Sequencer) applySettings(ctx context.Context, domain string, zones ZoneAPI, zoneID string) {
	settings := zoneSettings()
	s.queue.Update(domain, func(it *QueueItem) {
		for _, st := range settings {
			it.SetStep(st.Name, StatusPending, "", st.Variable)
		}
	})

	var wg sync.WaitGroup
	for _, st := range settings {
		wg.Add(1)
		go func(st zoneSetting) {
			defer wg.Done()
			s.queue.Update(domain, func(it *QueueItem) { it.SetStep(st.Name, StatusProcessing, "", st.Variable) })
			if err := st.Apply(ctx, zones, zoneID); err != nil {
				s.log.Warn("zone setting failed", zap.String("domain", domain), zap.String("step", st.Name), zap.Error(err))
				metrics.StepsFailed.Inc()
				s.queue.Update(domain, func(it *QueueItem) { it.SetStep(st.Name, StatusError, err.Error(), st.Variable) })
				return
			}
			s.queue.Update(domain, func(it *QueueItem) { it.SetStep(st.Name, StatusSuccess, "", st.Variable) })
		}(st)
	}
	wg.Wait()
}
