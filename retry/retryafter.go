// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/exah/ya-fetch/request"
)

// NewRetryAfterWaiter constructs a Waiter that honors the Retry-After
// response header. If the most recent attempt within the execution
// received a response carrying a well-formed Retry-After value, the
// server's directive decides the wait; in every other case the wait is
// delegated to fallback.
//
// Retry-After is parsed per RFC 7231 §7.1.3: either a non-negative
// integer number of delay seconds, or an HTTP-date. An HTTP-date in
// the past produces a zero wait. A malformed value is treated as if
// the header were absent.
//
// The fallback waiter may not be nil.
func NewRetryAfterWaiter(fallback Waiter) Waiter {
	if fallback == nil {
		panic("yafetch/retry: nil fallback waiter")
	}
	return retryAfterWaiter{fallback: fallback}
}

type retryAfterWaiter struct {
	fallback Waiter
}

func (w retryAfterWaiter) Wait(e *request.Execution) time.Duration {
	if d, ok := retryAfterDirective(e.Response, time.Now()); ok {
		return d
	}

	return w.fallback.Wait(e)
}

// retryAfterDirective extracts the wait directive from the response's
// Retry-After header, if the response carries a well-formed one.
func retryAfterDirective(resp *http.Response, now time.Time) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}

	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}

	if t, err := http.ParseTime(v); err == nil {
		d := t.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}

	return 0, false
}
