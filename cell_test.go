package weft

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCellGetOnce(t *testing.T) {
	var cell Cell[int]
	var constructions int32

	var wg sync.WaitGroup
	results := make([]int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := cell.Get(func() (int, error) {
				atomic.AddInt32(&constructions, 1)
				time.Sleep(5 * time.Millisecond)
				return 42, nil
			})
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			results[i] = v
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&constructions); got != 1 {
		t.Errorf("expected exactly 1 construction, got %d", got)
	}
	for i, v := range results {
		if v != 42 {
			t.Errorf("goroutine %d: expected 42, got %d", i, v)
		}
	}
}

func TestCellFailedInitRetries(t *testing.T) {
	var cell Cell[string]
	boom := errors.New("boom")

	_, err := cell.Get(func() (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the init error, got %v", err)
	}
	if cell.Done() {
		t.Fatal("a failed init must leave the cell empty")
	}

	v, err := cell.Get(func() (string, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if v != "ok" {
		t.Errorf("expected ok, got %q", v)
	}
}

func TestCellZeroValueIsNotEmpty(t *testing.T) {
	var cell Cell[int]

	if _, ok := cell.Peek(); ok {
		t.Fatal("expected Peek to miss on an empty cell")
	}

	v, err := cell.Get(func() (int, error) {
		return 0, nil
	})
	if err != nil || v != 0 {
		t.Fatalf("expected 0, got %d (%v)", v, err)
	}

	// The completed zero value is distinguishable from an empty cell.
	got, ok := cell.Peek()
	if !ok {
		t.Fatal("expected Peek to hit after a completed init")
	}
	if got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if !cell.Done() {
		t.Error("expected the cell to be done")
	}

	// No second construction happens.
	v, err = cell.Get(func() (int, error) {
		t.Fatal("init must not run again")
		return 0, nil
	})
	if err != nil || v != 0 {
		t.Errorf("expected the cached 0, got %d (%v)", v, err)
	}
}

func TestCellPublishedPartial(t *testing.T) {
	var cell Cell[int]

	v, err := cell.Get(func() (int, error) {
		cell.Publish(7)

		// A re-entrant read during construction observes the published
		// partial value instead of deadlocking.
		inner, err := cell.Get(func() (int, error) {
			t.Fatal("the inner init must not run")
			return 0, nil
		})
		if err != nil {
			return 0, err
		}
		if inner != 7 {
			t.Errorf("expected the partial 7, got %d", inner)
		}
		return inner + 1, nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if v != 8 {
		t.Errorf("expected 8, got %d", v)
	}

	// The completed value replaces the partial.
	if got, ok := cell.Peek(); !ok || got != 8 {
		t.Errorf("expected the final 8, got %d (%v)", got, ok)
	}
}

func TestCellPublishAfterDoneIsIgnored(t *testing.T) {
	var cell Cell[int]
	if _, err := cell.Get(func() (int, error) { return 1, nil }); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cell.Publish(99)
	if got, _ := cell.Peek(); got != 1 {
		t.Errorf("expected Publish on a done cell to be ignored, got %d", got)
	}
}
