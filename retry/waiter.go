// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/exah/ya-fetch/request"
)

// A Waiter specifies how long to wait before retrying a failed request
// attempt.
//
// Implementations of Waiter must be safe for concurrent use by
// multiple goroutines.
//
// The client will not call the Waiter on a retry policy if the policy
// Decider returned false.
//
// This package provides three Waiter constructors, NewFixedWaiter,
// NewExpWaiter, and NewRetryAfterWaiter. In addition it provides a
// concrete instance suitable for many typical use cases,
// DefaultWaiter.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// DefaultWaiter is the default retry wait policy. When the most recent
// response carries a Retry-After header, the server's directive
// decides the wait; otherwise the wait is computed by a jittered
// exponential backoff formula with a base wait of 250 milliseconds and
// a maximum wait of 10 seconds.
var DefaultWaiter = NewRetryAfterWaiter(NewExpWaiter(250*time.Millisecond, 10*time.Second, time.Now()))

// NewFixedWaiter constructs a Waiter that always returns the given
// duration.
//
// Use NewFixedWaiter to obtain a constant retry backoff.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing an exponential backoff
// formula with optional jitter.
//
// The formula implemented is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// Parameters base and max control the exponential calculation of the
// wait ceiling:
//
//	ceil := min(base * 2**attempt, max)
//
// Base and max must be positive values, and max must be at least equal
// to base.
//
// Parameter jitter is used to pick a random wait between 0 and ceil.
// To make a waiter that does not jitter and simply waits ceil on each
// attempt, pass nil for jitter. Otherwise you may specify either a
// random number generator seed value (as a time.Time, int, or int64)
// or a random number generator (as a rand.Source or a *rand.Rand). A
// seed value is used to seed a fresh random number generator owned by
// the waiter.
func NewExpWaiter(base, max time.Duration, jitter any) Waiter {
	if base < 1 {
		panic("yafetch/retry: base must be positive")
	}
	if max < base {
		panic("yafetch/retry: max must be at least base")
	}
	return &expWaiter{
		base: base,
		max:  max,
		rand: jitterRand(jitter),
	}
}

type expWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	mu   sync.Mutex
}

func (w *expWaiter) Wait(e *request.Execution) time.Duration {
	ceil := w.ceil(e.Attempt)
	if w.rand == nil || ceil <= 0 {
		return ceil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil)))
}

// ceil returns min(base * 2**attempt, max), saturating at max when the
// shift or the product overflows.
func (w *expWaiter) ceil(attempt int) time.Duration {
	mult := int64(1) << attempt
	if mult < 1 {
		return w.max
	}

	c := int64(w.base) * mult
	if c < int64(w.base) || int64(w.max) < c {
		return w.max
	}

	return time.Duration(c)
}

func jitterRand(jitter any) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("yafetch/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("yafetch/retry: invalid jitter type")
	}
	return rand.New(s)
}
