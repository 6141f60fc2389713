// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides flexible policies deciding whether to retry a
// failed request attempt, and how long to wait before retrying.
//
// The interface Policy defines a retry policy as the combination of a
// decision-maker, Decider, and a wait time calculator, Waiter. Both
// halves have constructors for common use cases, so a useful policy
// can be quickly assembled:
//
//	decider := retry.Times(5).
//		And(retry.Before(30 * time.Second)).
//		And(retry.StatusCode(503).Or(retry.TransientErr))
//	waiter := retry.NewRetryAfterWaiter(
//		retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now()))
//	policy := retry.NewPolicy(decider, waiter)
//
// The built-in DefaultPolicy retries transient errors and a fixed set
// of overload and server-error status codes up to DefaultTimes times,
// honoring the server's Retry-After directive when one is sent and
// backing off exponentially otherwise.
//
// If the built-in functionality is insufficient, fully custom retry
// policies can be created via custom implementations of Decider,
// Waiter, or Policy.
package retry
