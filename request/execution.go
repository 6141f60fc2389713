// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/exah/ya-fetch/transient"
)

// An Execution represents the state of a single Plan execution.
//
// When a request is issued, an Execution is created for it. The
// Execution is updated as the execution progresses (for example when
// the HTTP response becomes available, or when a retry is needed) and
// is ultimately the settled value behind the pending result handed
// back to the caller.
//
// Callbacks, retry deciders, delay functions and event handlers all
// receive the Execution. They may exchange values through SetValue and
// Value, and an OnRequest callback may make reasonable changes to the
// outgoing http.Request before it is sent, but they should otherwise
// treat the exported fields as read-only: the execution state is vital
// to the correct functioning of the execution loop.
type Execution struct {
	// Plan specifies the request plan being executed. It is never
	// nil.
	Plan *Plan

	// Options is the merged configuration the Plan was materialized
	// from. Callbacks can consult it, for example to read the
	// configured timeout or to re-issue a related request.
	Options Options

	// Start is the start time of the execution. It is assigned a
	// non-zero value when the execution starts, and this value
	// remains constant thereafter.
	Start time.Time

	// End is the end time of the execution. It contains the zero
	// value until the execution ends, when it is set to the current
	// time.
	End time.Time

	// Attempt is the zero-based number of the current request attempt
	// within the execution. It is zero on the initial attempt, one on
	// the first retry, and so on.
	//
	// Once the execution has ended, Attempt contains the zero-based
	// number of the last attempt made, so an execution that ended
	// after an initial attempt plus two retries ends with Attempt 2.
	Attempt int

	// AttemptTimeouts is the count of request attempts within the
	// execution that ended in a timeout.
	//
	// Cancellation or expiry of the caller's own context does not
	// contribute to the counter; only per-attempt deadlines do.
	AttemptTimeouts int

	// Request specifies the HTTP request made in the current or most
	// recent attempt. Each attempt derives a fresh request from the
	// Plan; requests are never reused between attempts.
	Request *http.Request

	// Response specifies the HTTP response received in the most
	// recent request attempt. It is nil if the most recent attempt
	// ended in an error, or while an attempt is underway, or before
	// the execution starts.
	Response *http.Response

	// Err is the error received while making the most recent request
	// attempt. It is nil if the most recent attempt ended without an
	// error, or while an attempt is underway, or before the execution
	// starts.
	//
	// While an execution is in flight, Err may fluctuate between nil
	// and various non-nil values as attempts fail and are retried.
	// Once the execution has ended, Err no longer changes.
	Err error

	// Body is the complete response body read after the most recent
	// request attempt. It is nil if the most recent attempt ended in
	// an error before the body could be read, or while an attempt is
	// underway.
	//
	// Body and Err can both be non-nil if a body read was partially
	// successful. Treat Body as invalid unless Err is nil.
	Body []byte

	// data contains arbitrary values attached by callbacks and event
	// handlers via SetValue, or nil if none were attached.
	data context.Context
}

// StatusCode returns the status code of the HTTP response from the
// most recent request attempt, or 0 if there is no HTTP response
// (because the most recent attempt ended in error, or an attempt is
// underway, or the execution has not started).
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent
// request attempt, or nil if there is no HTTP response.
//
// A nil return value is always safe for read-only operations, since
// http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start. The
// return value is thus monotonically increasing over the life of the
// execution, and becomes static when the execution has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started. If it has,
// Start holds the execution start time.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended. If it has, End is a
// non-zero time and there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
//
// Note that Timeout may return false even if AttemptTimeouts > 0: the
// most recent attempt may have succeeded, or failed for a different
// reason, after an earlier attempt timed out.
func (e *Execution) Timeout() bool {
	cat := transient.Categorize(e.Err)
	return cat == transient.Timeout
}

// SetValue attaches an arbitrary data value to the execution, for
// example to share state between an OnRequest callback and an
// OnResponse callback, or between event handlers.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • may not be nil;
//
// • must be comparable;
//
// • should not be of type string or any other built-in type, to avoid
// collisions between different packages putting data into the same
// execution.
func (e *Execution) SetValue(key, value any) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key any) any {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
