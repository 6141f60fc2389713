// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package yafetch

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality such as metrics, logging or per-attempt throttling.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// request execution starts.
	//
	// When Client fires BeforeExecutionStart, the execution is non-nil
	// but the only fields that have been set are the plan and the
	// merged configuration.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// individual HTTP request attempt during the execution.
	//
	// When Client fires BeforeAttempt, the execution's request field
	// is set to the HTTP request that WILL BE sent after all
	// BeforeAttempt handlers, and then the configuration's OnRequest
	// callback, have finished.
	//
	// BeforeAttempt handlers may modify the execution's request, or
	// some of its fields, thus changing the HTTP request that will be
	// sent. However, BeforeAttempt handlers should clone request fields
	// which have reference types (URL and Header) before changing them
	// to avoid side effects, as these fields initially reference the
	// same-named fields in the plan.
	BeforeAttempt
	// BeforeReadBody identifies the event that occurs after an HTTP
	// request attempt has resulted in an HTTP response (as opposed to
	// an error) but before the response body is read and buffered.
	//
	// When Client fires BeforeReadBody, the execution's response field
	// is set to the HTTP response whose body WILL BE read after all
	// BeforeReadBody handlers have finished.
	//
	// Note that BeforeReadBody never fires if the HTTP request attempt
	// ended in error or was vetoed by an OnRequest callback, but always
	// fires if an HTTP response is received, regardless of the response
	// status code, and regardless of whether the response has a body.
	BeforeReadBody
	// AfterAttemptTimeout identifies the event that occurs after an
	// HTTP request attempt was cut short by its own attempt deadline.
	//
	// When Client fires AfterAttemptTimeout, the execution's error
	// field is set to a *TimeoutError and its attempt timeout counter
	// has been incremented. Expiry or cancellation of the caller's own
	// context never fires AfterAttemptTimeout.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after an HTTP
	// request attempt is concluded, regardless of whether it concluded
	// successfully or not.
	//
	// When Client fires AfterAttempt, the attempt's outcome has been
	// classified: a nil error field means the attempt succeeded, while
	// a non-nil error field holds the transport error, the veto error
	// from an OnRequest callback, or the failure classified from the
	// response (by default a *ResponseError for a non-2xx status).
	//
	// Note that AfterAttempt always fires on every HTTP request
	// attempt, and that it runs before the retry decision for the
	// attempt is made.
	AfterAttempt
	// AfterExecutionEnd identifies the event that occurs after the
	// execution ends.
	//
	// When Client fires AfterExecutionEnd, the end time is set, the
	// final OnSuccess and OnFailure callbacks have run, and the
	// execution is in its settled state: the error field holds exactly
	// the error the caller will observe, nil included if an OnFailure
	// callback recovered the call.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// request execution by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		BeforeReadBody,
		AfterAttemptTimeout,
		AfterAttempt,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
