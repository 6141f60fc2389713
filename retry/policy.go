// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/exah/ya-fetch/request"
)

// A Policy controls if and how retries are done during a request
// execution. After every attempt within the execution, the Policy
// decides whether a retry should be done and, if so, how long the wait
// period should be before the next attempt starts.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
//
// A Policy is the composition of the Decider and Waiter interfaces.
// While you can implement Policy yourself, it is usually enough to
// combine existing Decider and Waiter implementations with the
// NewPolicy constructor, or to use one of the built-in policies,
// DefaultPolicy and Never.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It composes DefaultDecider for retry decisions with
// DefaultWaiter for wait time calculations, so it backs off
// exponentially but lets a server-sent Retry-After directive take
// precedence.
var DefaultPolicy Policy = policy{DefaultDecider, DefaultWaiter}

// Never is a policy that never retries. Use it to switch retries off
// while keeping the rest of the client behavior.
var Never Policy = policy{Times(0), DefaultWaiter}

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a retry Policy.
// Neither argument may be nil.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("yafetch/retry: nil decider")
	}
	if w == nil {
		panic("yafetch/retry: nil waiter")
	}
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(e *request.Execution) bool {
	return p.decider.Decide(e)
}

func (p policy) Wait(e *request.Execution) time.Duration {
	return p.waiter.Wait(e)
}
