package provisioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingItems(domains ...string) []QueueItem {
	items := make([]QueueItem, 0, len(domains))
	for _, d := range domains {
		items = append(items, QueueItem{Domain: d, Status: StatusPending})
	}
	return items
}

func TestQueueAppendDeduplicates(t *testing.T) {
	q := NewQueue()
	q.Append(pendingItems("a.com", "b.com"))
	q.Append(pendingItems("a.com", "c.com"))

	snap := q.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "a.com", snap[0].Domain)
	assert.Equal(t, "b.com", snap[1].Domain)
	assert.Equal(t, "c.com", snap[2].Domain)
}

func TestQueueAppendDeduplicatesRegardlessOfStatus(t *testing.T) {
	q := NewQueue()
	q.Append(pendingItems("a.com"))
	q.Update("a.com", func(it *QueueItem) { it.Status = StatusError })

	q.Append(pendingItems("a.com"))

	snap := q.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, StatusError, snap[0].Status, "re-enqueue must not reset an existing item")
}

func TestQueueAppendNormalizesDomains(t *testing.T) {
	q := NewQueue()
	q.Append(pendingItems("  A.Com ", "", "b.com"))

	snap := q.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a.com", snap[0].Domain)
}

func TestQueueSnapshotIsACopy(t *testing.T) {
	q := NewQueue()
	q.Append(pendingItems("a.com"))
	q.Update("a.com", func(it *QueueItem) {
		it.SetStep(StepCreateZone, StatusSuccess, "", "")
		it.Nameservers = []string{"ns1.example.net"}
	})

	snap := q.Snapshot()
	snap[0].Status = StatusError
	snap[0].Steps[0].Status = StatusError
	snap[0].Nameservers[0] = "evil.example.net"

	fresh, ok := q.Get("a.com")
	require.True(t, ok)
	assert.Equal(t, StatusPending, fresh.Status)
	assert.Equal(t, StatusSuccess, fresh.Steps[0].Status)
	assert.Equal(t, "ns1.example.net", fresh.Nameservers[0])
}

func TestQueueUpdateMissingDomain(t *testing.T) {
	q := NewQueue()
	assert.False(t, q.Update("nope.com", func(it *QueueItem) { t.Fatal("mutator must not run") }))
}

func TestQueueNextPendingFollowsInsertionOrder(t *testing.T) {
	q := NewQueue()
	q.Append(pendingItems("a.com", "b.com", "c.com"))
	q.Update("a.com", func(it *QueueItem) { it.Status = StatusSuccess })

	domain, ok := q.NextPending()
	require.True(t, ok)
	assert.Equal(t, "b.com", domain)

	q.Update("b.com", func(it *QueueItem) { it.Status = StatusProcessing })
	domain, ok = q.NextPending()
	require.True(t, ok)
	assert.Equal(t, "c.com", domain)

	q.Update("c.com", func(it *QueueItem) { it.Status = StatusError })
	_, ok = q.NextPending()
	assert.False(t, ok)
}

func TestQueueReset(t *testing.T) {
	q := NewQueue()
	q.Append(pendingItems("a.com", "b.com"))
	q.Reset()

	assert.Zero(t, q.Len())
	assert.Empty(t, q.Snapshot())

	// A reset queue accepts previously seen domains again.
	q.Append(pendingItems("a.com"))
	assert.Equal(t, 1, q.Len())
}
