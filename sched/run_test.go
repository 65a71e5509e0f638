package sched

import (
	"sync"
	"testing"
)

func TestRunBatchRespectsOrdering(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) func() error {
		return func() error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	tasks := []Task{
		{Name: "c", Deps: []string{"a", "b"}, Fn: record("c")},
		{Name: "a", Fn: record("a")},
		{Name: "b", Deps: []string{"a"}, Fn: record("b")},
	}
	if err := runBatch(tasks, 4); err != nil {
		t.Fatalf("runBatch: %v", err)
	}

	pos := map[string]int{}
	for i, name := range order {
		pos[name] = i
	}
	if pos["a"] >= pos["b"] {
		t.Fatalf("a must run before b: order=%v", order)
	}
	if pos["b"] >= pos["c"] || pos["a"] >= pos["c"] {
		t.Fatalf("a,b must run before c: order=%v", order)
	}
}

func TestRunBatchDetectsUnresolvedDeps(t *testing.T) {
	tasks := []Task{
		{Name: "x", Deps: []string{"y"}, Fn: func() error { return nil }},
	}
	if err := runBatch(tasks, 2); err == nil {
		t.Fatal("want error for a dependency on a task outside the batch")
	}
}

func TestRunBatchStopsOnFirstError(t *testing.T) {
	sentinel := errStop{}
	tasks := []Task{
		{Name: "ok", Fn: func() error { return nil }},
		{Name: "bad", Fn: func() error { return sentinel }},
	}
	if err := runBatch(tasks, 4); err != sentinel {
		t.Fatalf("runBatch error = %v, want sentinel", err)
	}
}

type errStop struct{}

func (errStop) Error() string { return "stop" }
