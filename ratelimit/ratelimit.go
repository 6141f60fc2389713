// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ratelimit

import (
	"net/http"

	"golang.org/x/time/rate"

	yafetch "github.com/exah/ya-fetch"
)

// Doer is HTTPDoer middleware that throttles outgoing attempts through
// a token bucket. Every attempt a client sends through it, retries
// included, takes one token; when the bucket is empty the attempt
// waits until the limiter grants it.
//
// The wait is bounded by the request's context. A context that is done,
// or whose deadline cannot accommodate the required wait, fails the
// attempt with the limiter's error before the request is sent, and no
// token is consumed.
type Doer struct {
	limiter *rate.Limiter
	next    yafetch.HTTPDoer
}

// NewDoer creates a Doer pacing requests with limiter and sending them
// with next. The limiter may be shared with other consumers of the same
// quota. If next is nil, http.DefaultClient from the standard net/http
// package is used.
func NewDoer(limiter *rate.Limiter, next yafetch.HTTPDoer) *Doer {
	if limiter == nil {
		panic("yafetch/ratelimit: nil limiter")
	}
	if next == nil {
		next = http.DefaultClient
	}
	return &Doer{limiter: limiter, next: next}
}

// Do waits for a limiter token and forwards the request to the wrapped
// HTTPDoer.
func (d *Doer) Do(r *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(r.Context()); err != nil {
		return nil, err
	}
	return d.next.Do(r)
}

// CloseIdleConnections forwards to the wrapped HTTPDoer when it
// provides the method, so Client.CloseIdleConnections stays effective
// through the middleware.
func (d *Doer) CloseIdleConnections() {
	if ic, ok := d.next.(yafetch.IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
