package reveal

import (
	"testing"
	"time"
)

func TestBatcherCoalescesWithinWindow(t *testing.T) {
	d := NewDocument(100, 100)
	var flushes [][]int
	b := NewBatcher(d, 80*time.Millisecond, func(items []int) {
		flushes = append(flushes, items)
	})

	for i := range 50 {
		b.Add(i)
	}
	d.Advance(40*time.Millisecond, 10*time.Millisecond)
	if len(flushes) != 0 {
		t.Fatalf("flushed after 40ms, want nothing before the window closes")
	}
	b.Add(50)
	d.Advance(50*time.Millisecond, 10*time.Millisecond)

	if len(flushes) != 1 {
		t.Fatalf("flushes = %d, want 1", len(flushes))
	}
	if len(flushes[0]) != 51 {
		t.Fatalf("batch len = %d, want 51", len(flushes[0]))
	}
	for i, v := range flushes[0] {
		if v != i {
			t.Errorf("batch[%d] = %d, want insertion order", i, v)
			break
		}
	}
	if b.Flushes() != 1 {
		t.Errorf("Flushes() = %d, want 1", b.Flushes())
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestBatcherNewWindowAfterFlush(t *testing.T) {
	d := NewDocument(100, 100)
	n := 0
	b := NewBatcher(d, 30*time.Millisecond, func([]string) { n++ })

	b.Add("a")
	d.Advance(50*time.Millisecond, 10*time.Millisecond)
	b.Add("b")
	d.Advance(20*time.Millisecond, 10*time.Millisecond)
	if n != 1 {
		t.Fatalf("flushes = %d, want 1 before the second window closes", n)
	}
	d.Advance(20*time.Millisecond, 10*time.Millisecond)
	if n != 2 {
		t.Errorf("flushes = %d, want 2", n)
	}
}

func TestBatcherForcedFlush(t *testing.T) {
	d := NewDocument(100, 100)
	var got []int
	b := NewBatcher(d, 30*time.Millisecond, func(items []int) { got = append(got, items...) })

	b.Add(1, 2, 3)
	b.Flush()
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 items after Flush", got)
	}
	d.Advance(100*time.Millisecond, 10*time.Millisecond)
	if b.Flushes() != 1 {
		t.Errorf("Flushes() = %d, want 1 (timer disarmed by Flush)", b.Flushes())
	}
}

func TestBatcherFlushEmpty(t *testing.T) {
	d := NewDocument(100, 100)
	called := false
	b := NewBatcher(d, 30*time.Millisecond, func([]int) { called = true })
	b.Flush()
	if called {
		t.Error("flush function called with nothing pending")
	}
	if b.Flushes() != 0 {
		t.Errorf("Flushes() = %d, want 0", b.Flushes())
	}
}

func TestBatcherStop(t *testing.T) {
	d := NewDocument(100, 100)
	called := false
	b := NewBatcher(d, 30*time.Millisecond, func([]int) { called = true })

	b.Add(1)
	b.Stop()
	b.Add(2)
	d.Advance(100*time.Millisecond, 10*time.Millisecond)
	if called {
		t.Error("flush ran after Stop")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Stop", b.Len())
	}
}
