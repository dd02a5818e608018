package provisioning

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"domainpilot/internal/metrics"
)

var errZoneMissing = errors.New("Zone not found. Retry zone creation first.")

// RetryStep re-executes exactly one named step for one domain, using only the
// context persisted on its queue item. No other step is touched, even if it
// is also in Error. Unknown domains are a no-op; all other outcomes land on
// the item as status, never as a returned error.
func (o *Orchestrator) RetryStep(ctx context.Context, domain, stepName string) {
	item, ok := o.queue.Get(domain)
	if !ok {
		return
	}
	metrics.StepRetries.Inc()
	o.log.Info("retrying step", zap.String("domain", domain), zap.String("step", stepName))

	o.queue.Update(domain, func(it *QueueItem) {
		it.Status = StatusProcessing
		it.Error = ""
		it.SetStep(stepName, StatusProcessing, "", "")
	})

	err := o.retryAction(ctx, item, stepName)

	o.queue.Update(domain, func(it *QueueItem) {
		if err != nil {
			it.Status = StatusError
			it.SetStep(stepName, StatusError, err.Error(), "")
			return
		}
		it.Status = StatusSuccess
		it.SetStep(stepName, StatusSuccess, "", "")
	})
	if err != nil {
		metrics.StepsFailed.Inc()
	}
	o.finish(domain)
}

// retryAction dispatches to the action matching stepName. Prerequisites are
// checked against the stored item before any network call.
func (o *Orchestrator) retryAction(ctx context.Context, item QueueItem, stepName string) error {
	zones := o.resolveZones(ctx, item.AccountID)
	switch stepName {
	case StepCreateZone:
		zone, err := zones.CreateZone(ctx, item.Domain)
		if err != nil {
			return err
		}
		o.queue.Update(item.Domain, func(it *QueueItem) {
			it.ZoneID = zone.ID
			it.Nameservers = append([]string(nil), zone.Nameservers...)
		})
		return nil

	case StepSetNameservers:
		if len(item.Nameservers) == 0 {
			return errZoneMissing
		}
		client := o.resolveRegistrar(ctx, item.RegistrarAccountID)
		if client == nil {
			return errors.New("no registrar account on record for this domain")
		}
		return client.SetNameservers(ctx, item.Domain, item.Nameservers)

	case StepCreateCNAME:
		if item.ZoneID == "" {
			return errZoneMissing
		}
		return zones.CreateDNSRecord(ctx, item.ZoneID, DNSRecord{Type: "CNAME", Name: "www", Content: item.Domain, Proxied: item.Proxied})

	case StepCreateRootRecord:
		if item.ZoneID == "" {
			return errZoneMissing
		}
		if item.RootIP == "" {
			return errors.New("no root IP address on record for this domain")
		}
		return zones.CreateDNSRecord(ctx, item.ZoneID, DNSRecord{Type: "A", Name: "@", Content: item.RootIP, Proxied: item.Proxied})

	default:
		setting, ok := settingByName(stepName)
		if !ok {
			return fmt.Errorf("unknown step %q", stepName)
		}
		if item.ZoneID == "" {
			return errZoneMissing
		}
		return setting.Apply(ctx, zones, item.ZoneID)
	}
}
