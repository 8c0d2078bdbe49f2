package ledger

import (
	"sync"
	"testing"
)

func TestLockTableSerializesOverlappingSets(t *testing.T) {
	table := newLockTable()
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := table.Acquire("admin", "cashier")
			counter++
			release()
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := table.Acquire("cashier", "admin", "agent")
			counter++
			release()
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Fatalf("counter = %d, want 100", counter)
	}
}

func TestLockTableDeduplicatesIDs(t *testing.T) {
	table := newLockTable()
	release := table.Acquire("a", "a", "", "a")
	release()

	// A second acquire of the same ID must not deadlock against itself.
	release = table.Acquire("a")
	release()
}
