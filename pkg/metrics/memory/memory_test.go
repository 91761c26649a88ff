package memory

import (
	"testing"
	"time"

	"bank-ledger/pkg/metrics"
)

func TestCollector_Operations(t *testing.T) {
	c := NewCollector()

	c.RecordOperation("deposit", true, 10*time.Millisecond)
	c.RecordOperation("deposit", true, 20*time.Millisecond)
	c.RecordOperation("deposit", false, 5*time.Millisecond)
	c.RecordOperationError("deposit", "invalid_argument")
	c.RecordOperationError("deposit", "invalid_argument")
	c.RecordOperationError("deposit", "not_found")

	snap := c.Snapshot()
	stats, ok := snap.Operations["deposit"]
	if !ok {
		t.Fatal("Expected deposit stats")
	}
	if stats.Count != 3 || stats.Failures != 1 {
		t.Errorf("Expected count 3 failures 1, got %d/%d", stats.Count, stats.Failures)
	}
	if stats.Total != 35*time.Millisecond {
		t.Errorf("Expected total 35ms, got %v", stats.Total)
	}
	if stats.Errors["invalid_argument"] != 2 || stats.Errors["not_found"] != 1 {
		t.Errorf("Unexpected error counts: %v", stats.Errors)
	}
}

func TestCollector_SavesAndLoads(t *testing.T) {
	c := NewCollector()

	c.RecordSave("accounts", true, time.Millisecond)
	c.RecordSave("accounts", false, time.Millisecond)
	c.RecordLoad("customers", true, time.Millisecond)

	snap := c.Snapshot()
	if snap.Saves["accounts"].Count != 2 || snap.Saves["accounts"].Failures != 1 {
		t.Errorf("Unexpected save stats: %+v", snap.Saves["accounts"])
	}
	if snap.Loads["customers"].Count != 1 || snap.Loads["customers"].Failures != 0 {
		t.Errorf("Unexpected load stats: %+v", snap.Loads["customers"])
	}
}

func TestCollector_AuditQueueCircuit(t *testing.T) {
	c := NewCollector()

	c.RecordAudit(true)
	c.RecordAudit(false)
	c.RecordQueueDepth(7)
	c.RecordCircuitState("store", metrics.CircuitOpen)

	snap := c.Snapshot()
	if snap.AuditRecords != 2 || snap.AuditFailures != 1 {
		t.Errorf("Unexpected audit counts: %d/%d", snap.AuditRecords, snap.AuditFailures)
	}
	if snap.QueueDepth != 7 {
		t.Errorf("Expected queue depth 7, got %d", snap.QueueDepth)
	}
	if snap.CircuitStates["store"] != "open" {
		t.Errorf("Expected circuit state open, got %q", snap.CircuitStates["store"])
	}
}

func TestCollector_SnapshotIsACopy(t *testing.T) {
	c := NewCollector()
	c.RecordOperation("transfer", true, time.Millisecond)
	c.RecordOperationError("transfer", "not_found")

	snap := c.Snapshot()
	snap.Operations["transfer"].Errors["not_found"] = 99

	fresh := c.Snapshot()
	if fresh.Operations["transfer"].Errors["not_found"] != 1 {
		t.Error("Mutating a snapshot must not affect the collector")
	}
}
