// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/exah/ya-fetch/request"
)

// A Policy directs how the client sets the per-attempt deadline for
// the initial request attempt and for any subsequent retries.
//
// A policy only applies to requests whose configuration does not set
// its own Options.Timeout; an explicit per-request timeout always wins.
// A non-positive return value means the attempt runs with no deadline
// of its own, bounded only by the caller's context.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
type Policy interface {
	// Timeout returns the deadline to set on the next request attempt
	// within the execution e, or a non-positive duration for none.
	Timeout(e *request.Execution) time.Duration
}

// Infinite is a built-in timeout policy which never sets a per-attempt
// deadline.
var Infinite Policy = Fixed(0)

// Fixed constructs a timeout policy that sets the same deadline d on
// every attempt.
//
// Use Fixed to create the typical timeout behavior supported by most
// retrying HTTP client software.
func Fixed(d time.Duration) Policy {
	return policy([]time.Duration{d})
}

// Adaptive constructs a timeout policy that varies the next timeout
// value if the previous attempt timed out.
//
// Use Adaptive if the remote service often exhibits one-off slow
// response times that can be cured by quickly timing out and retrying,
// but you also need to protect your application (and the remote
// service) from retry storms if the remote service goes through a
// burst of slowness where most response times are slower than your
// usual quick timeout.
//
// Parameter usual is the timeout the policy returns for an initial
// attempt and for any retry whose immediately preceding attempt did
// not time out.
//
// Parameter after contains the timeouts the policy returns when the
// previous attempt did time out: after[0] following the execution's
// first timeout, after[1] following the second, and so on, sticking
// with the last element once the execution has seen more timeouts than
// after has elements.
//
// Consider the following timeout policy:
//
//	p := Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// The policy p will use 200 milliseconds as the usual timeout, 1
// second after the execution's first attempt timeout, and 10 seconds
// after every subsequent one.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make([]time.Duration, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}

	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}
