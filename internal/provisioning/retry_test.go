package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryChangesOnlyTheNamedStep(t *testing.T) {
	fail := true
	zones := &fakeZones{recordFn: func(_ string, rec DNSRecord) error {
		if fail {
			return errors.New("dns error")
		}
		return nil
	}}
	o := newTestOrchestrator(zones, nil, nil)

	// First pass: both record steps fail.
	o.Enqueue(EnqueueParams{Domains: []string{"a.com"}, RootIP: "1.2.3.4"})
	o.Wait()

	item := itemByDomain(t, o, "a.com")
	cname, _ := item.FindStep(StepCreateCNAME)
	root, _ := item.FindStep(StepCreateRootRecord)
	require.Equal(t, StatusError, cname.Status)
	require.Equal(t, StatusError, root.Status)

	// Fix the backend and retry only the root A record.
	fail = false
	o.RetryStep(context.Background(), "a.com", StepCreateRootRecord)

	item = itemByDomain(t, o, "a.com")
	assert.Equal(t, StatusSuccess, item.Status)

	root, _ = item.FindStep(StepCreateRootRecord)
	assert.Equal(t, StatusSuccess, root.Status)
	assert.Empty(t, root.Error)

	cname, _ = item.FindStep(StepCreateCNAME)
	assert.Equal(t, StatusError, cname.Status, "untouched step keeps its failure")
	assert.Equal(t, "dns error", cname.Error)
}

func TestRetryRequiresZoneContext(t *testing.T) {
	zones := &fakeZones{zoneFn: func(string) (Zone, error) {
		return Zone{}, errors.New("rate limited")
	}}
	o := newTestOrchestrator(zones, nil, nil)

	o.Enqueue(EnqueueParams{Domains: []string{"a.com"}, RootIP: "1.2.3.4"})
	o.Wait()
	require.Empty(t, itemByDomain(t, o, "a.com").ZoneID)

	before := len(zones.zoneCallsSnapshot())
	o.RetryStep(context.Background(), "a.com", StepCreateCNAME)

	item := itemByDomain(t, o, "a.com")
	assert.Equal(t, StatusError, item.Status)
	step, ok := item.FindStep(StepCreateCNAME)
	require.True(t, ok)
	assert.Equal(t, StatusError, step.Status)
	assert.Equal(t, "Zone not found. Retry zone creation first.", step.Error)

	zones.mu.Lock()
	defer zones.mu.Unlock()
	assert.Empty(t, zones.records, "precondition failures must not reach the network")
	assert.Len(t, zones.zoneCalls, before)
}

func TestRetryZoneCreationRewritesZoneState(t *testing.T) {
	fail := true
	zones := &fakeZones{zoneFn: func(domain string) (Zone, error) {
		if fail {
			return Zone{}, errors.New("rate limited")
		}
		return Zone{ID: "zone-" + domain, Nameservers: []string{"ns1.example.net", "ns2.example.net"}}, nil
	}}
	o := newTestOrchestrator(zones, nil, nil)

	o.Enqueue(EnqueueParams{Domains: []string{"a.com"}})
	o.Wait()
	require.Equal(t, StatusError, itemByDomain(t, o, "a.com").Status)

	fail = false
	o.RetryStep(context.Background(), "a.com", StepCreateZone)

	item := itemByDomain(t, o, "a.com")
	assert.Equal(t, StatusSuccess, item.Status)
	assert.Empty(t, item.Error)
	assert.Equal(t, "zone-a.com", item.ZoneID)
	assert.Equal(t, []string{"ns1.example.net", "ns2.example.net"}, item.Nameservers)

	step, _ := item.FindStep(StepCreateZone)
	assert.Equal(t, StatusSuccess, step.Status)
	require.Len(t, item.Steps, 1, "a bare zone retry does not resume the rest of the sequence")
}

func TestRetrySettingStep(t *testing.T) {
	fail := true
	zones := &fakeZones{settingFn: func(_, setting string) error {
		if fail && setting == "ssl" {
			return errors.New("setting unavailable")
		}
		return nil
	}}
	o := newTestOrchestrator(zones, nil, nil)

	o.Enqueue(EnqueueParams{Domains: []string{"a.com"}})
	o.Wait()

	item := itemByDomain(t, o, "a.com")
	step, _ := item.FindStep(StepSSLMode)
	require.Equal(t, StatusError, step.Status)

	fail = false
	o.RetryStep(context.Background(), "a.com", StepSSLMode)

	item = itemByDomain(t, o, "a.com")
	step, _ = item.FindStep(StepSSLMode)
	assert.Equal(t, StatusSuccess, step.Status)
	assert.Equal(t, StatusSuccess, item.Status)
}

func TestRetryNameserverPushWithoutNameservers(t *testing.T) {
	zones := &fakeZones{zoneFn: func(string) (Zone, error) {
		return Zone{}, errors.New("rate limited")
	}}
	reg := &fakeRegistrar{}
	o := newTestOrchestrator(zones, fakeResolver{client: reg}, nil)

	o.Enqueue(EnqueueParams{Domains: []string{"a.com"}, RegistrarAccountID: 7})
	o.Wait()

	o.RetryStep(context.Background(), "a.com", StepSetNameservers)

	item := itemByDomain(t, o, "a.com")
	step, ok := item.FindStep(StepSetNameservers)
	require.True(t, ok)
	assert.Equal(t, StatusError, step.Status)
	assert.Equal(t, "Zone not found. Retry zone creation first.", step.Error)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	assert.Empty(t, reg.calls)
}

func TestRetryUnknownDomainIsNoop(t *testing.T) {
	zones := &fakeZones{}
	o := newTestOrchestrator(zones, nil, nil)

	o.RetryStep(context.Background(), "ghost.com", StepCreateZone)

	assert.Empty(t, o.Snapshot())
	assert.Empty(t, zones.zoneCallsSnapshot())
}

func TestRetryUnknownStep(t *testing.T) {
	zones := &fakeZones{}
	o := newTestOrchestrator(zones, nil, nil)

	o.Enqueue(EnqueueParams{Domains: []string{"a.com"}})
	o.Wait()

	o.RetryStep(context.Background(), "a.com", "Defragmenting the zone...")

	item := itemByDomain(t, o, "a.com")
	step, ok := item.FindStep("Defragmenting the zone...")
	require.True(t, ok)
	assert.Equal(t, StatusError, step.Status)
	assert.Contains(t, step.Error, "unknown step")
}
