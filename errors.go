// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package yafetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/exah/ya-fetch/request"
)

// A ResponseError is the failure classified from an HTTP response. It
// is produced by the default response classification for any response
// outside the 2xx range, and custom OnResponse callbacks may return it
// for responses they reject.
//
// The response that provoked the error, along with its fully buffered
// body, remains available through the embedded execution state, so a
// failure handler can inspect an error payload without a second read.
type ResponseError struct {
	// Execution is the execution state at the time the response was
	// classified. It is never nil.
	Execution *request.Execution
}

func (e *ResponseError) Error() string {
	code := e.StatusCode()
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprintf("yafetch: unexpected response status %d", code)
	}
	return fmt.Sprintf("yafetch: unexpected response status %d %s", code, text)
}

// StatusCode returns the status code of the rejected response.
func (e *ResponseError) StatusCode() int {
	return e.Execution.StatusCode()
}

// Body returns the buffered body of the rejected response. The slice
// is shared with the execution and must not be modified.
func (e *ResponseError) Body() []byte {
	return e.Execution.Body
}

// A TimeoutError reports a request attempt cut short by its own
// attempt deadline, configured through request.Options.Timeout or the
// client's timeout policy.
//
// Expiry of a deadline on the caller's own context never produces a
// TimeoutError; the caller's context error is surfaced as-is so that
// external cancellation keeps its own semantics.
type TimeoutError struct {
	// Limit is the attempt timeout that expired.
	Limit time.Duration

	// Attempt is the zero-based number of the attempt that was cut
	// short.
	Attempt int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("yafetch: attempt %d timed out after %s", e.Attempt, e.Limit)
}

// Timeout reports whether the error was caused by a timeout. It is
// always true, and makes a TimeoutError satisfy the net.Error timeout
// convention.
func (e *TimeoutError) Timeout() bool {
	return true
}

// Unwrap returns context.DeadlineExceeded, so
// errors.Is(err, context.DeadlineExceeded) treats an attempt timeout
// like any other exceeded deadline.
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}
