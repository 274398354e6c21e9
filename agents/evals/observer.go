/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"path"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/praveenksekaran/Agents/agents/agenttrace"
)

// Observer receives the outcome of each evaluated case or trace.
type Observer interface {
	// Fail marks the evaluation as failed. Called at most once per evaluation.
	Fail(string)
	// Log records a message.
	Log(string)
	// Grade assigns a score in [0, 1] with its reasoning. Called at most once
	// per evaluation.
	Grade(score float64, reasoning string)
	// Increment is called once per evaluation.
	Increment()
	// Total returns the number of observed evaluations.
	Total() int64
}

// ObservableTraceCallback evaluates a completed trace, reporting to the Observer.
type ObservableTraceCallback[T any] func(Observer, *agenttrace.Trace[T])

// Inject binds an Observer to an ObservableTraceCallback so it can be used
// with agenttrace.ByCode.
func Inject[T any](obs Observer, callback ObservableTraceCallback[T]) agenttrace.TraceCallback[T] {
	return func(trace *agenttrace.Trace[T]) {
		obs.Increment()
		callback(obs, trace)
	}
}

// NopObserver counts evaluations and discards everything else.
type NopObserver struct {
	count *atomic.Int64
}

// NewNopObserver returns a NopObserver with its own counter.
func NewNopObserver() NopObserver {
	return NopObserver{count: new(atomic.Int64)}
}

func (NopObserver) Fail(string)           {}
func (NopObserver) Log(string)            {}
func (NopObserver) Grade(float64, string) {}

func (n NopObserver) Increment() {
	if n.count != nil {
		n.count.Add(1)
	}
}

func (n NopObserver) Total() int64 {
	if n.count == nil {
		return 0
	}
	return n.count.Load()
}

// NamespacedObserver arranges observers in a tree of slash separated names,
// one per dataset, case or check.
type NamespacedObserver[T Observer] struct {
	name     string
	inner    T
	factory  func(string) T
	children map[string]*NamespacedObserver[T]
	mu       sync.Mutex
}

// NewNamespacedObserver creates the root "/" namespace.
func NewNamespacedObserver[T Observer](factory func(string) T) *NamespacedObserver[T] {
	return &NamespacedObserver[T]{
		name:     "/",
		inner:    factory("/"),
		factory:  factory,
		children: make(map[string]*NamespacedObserver[T]),
	}
}

// Name is the full path of this namespace.
func (n *NamespacedObserver[T]) Name() string { return n.name }

// Inner returns the observer of this namespace.
func (n *NamespacedObserver[T]) Inner() T { return n.inner }

func (n *NamespacedObserver[T]) Fail(msg string)                    { n.inner.Fail(msg) }
func (n *NamespacedObserver[T]) Log(msg string)                     { n.inner.Log(msg) }
func (n *NamespacedObserver[T]) Grade(score float64, reason string) { n.inner.Grade(score, reason) }
func (n *NamespacedObserver[T]) Increment()                         { n.inner.Increment() }
func (n *NamespacedObserver[T]) Total() int64                       { return n.inner.Total() }

// Child returns the named child namespace, creating it on first use.
func (n *NamespacedObserver[T]) Child(name string) *NamespacedObserver[T] {
	n.mu.Lock()
	defer n.mu.Unlock()

	if child, ok := n.children[name]; ok {
		return child
	}
	childPath := path.Join(n.name, name)
	child := &NamespacedObserver[T]{
		name:     childPath,
		inner:    n.factory(childPath),
		factory:  n.factory,
		children: make(map[string]*NamespacedObserver[T]),
	}
	n.children[name] = child
	return child
}

// Walk visits this namespace and then its children depth first, in name order.
func (n *NamespacedObserver[T]) Walk(visitor func(string, T)) {
	visitor(n.name, n.inner)

	n.mu.Lock()
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	n.mu.Unlock()
	slices.Sort(names)

	for _, name := range names {
		n.mu.Lock()
		child := n.children[name]
		n.mu.Unlock()
		child.Walk(visitor)
	}
}
