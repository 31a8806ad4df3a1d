package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/five82/tally/internal/records"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update([]records.Record{{"id": 1}, {"id": 2}}, nil)

	snap := s.Snapshot()
	if !snap.HasRecords || len(snap.Records) != 2 {
		t.Fatalf("snapshot records = %#v, want 2 records", snap.Records)
	}
	if snap.Generation != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	snap.Records[0] = records.Record{"id": 999}
	snap2 := s.Snapshot()
	if snap2.Records[0]["id"] != 1 {
		t.Fatalf("Snapshot should clone the slice; got %v want 1", snap2.Records[0]["id"])
	}
}

func TestStore_EmptySuccessStillHasRecords(t *testing.T) {
	var s Store
	s.Update(nil, nil)

	snap := s.Snapshot()
	if !snap.HasRecords {
		t.Fatal("HasRecords = false, want true after a successful empty load")
	}
	if len(snap.Records) != 0 {
		t.Fatalf("Records = %v, want empty", snap.Records)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]records.Record{{"id": 1}}, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if len(snap.Records) != 1 || snap.Records[0]["id"] != 1 {
		t.Fatalf("records changed on error: got %#v want %#v", snap.Records, prev.Records)
	}
	if snap.Generation != prev.Generation {
		t.Fatalf("Generation = %d, want %d after failed update", snap.Generation, prev.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("zero store = %+v, want online with 0 failures", snap)
	}

	for i, wantOffline := range []bool{false, true, true} {
		s.Update(nil, errors.New("fail"))
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != i+1 {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i+1)
		}
		if snap.IsOffline() != wantOffline {
			t.Fatalf("IsOffline() = %v after %d failures, want %v", snap.IsOffline(), i+1, wantOffline)
		}
	}

	s.Update([]records.Record{{"id": 1}}, nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success = %+v, want online with 0 failures", snap)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Update([]records.Record{{"n": i}}, nil)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if got := s.Snapshot().Generation; got != 8 {
		t.Fatalf("Generation = %d, want 8", got)
	}
}
