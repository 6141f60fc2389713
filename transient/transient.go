// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by Categorize.
//
// The category Not means the error is not transient from the
// perspective of completing a request attempt successfully: a retry
// after encountering it is very unlikely to succeed. Every other
// category indicates a retry has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout: a per-attempt deadline
	// expired, or the transport reported a timeout of its own. The
	// server may be going through a temporary period of slowness, or a
	// future attempt may succeed by waiting longer.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout() method that reports true; this covers
	// context.DeadlineExceeded, net.Error timeouts, and
	// syscall.ETIMEDOUT alike.
	Timeout
	// ConnRefused indicates the remote host refused the connection,
	// and corresponds to the POSIX error code ECONNREFUSED.
	//
	// Although connection refusal may be a permanent condition, it is
	// classified as transient because it also happens while the service
	// on the remote host is starting or restarting: it is temporarily
	// not listening on the port, but will be once startup completes.
	//
	// Categorize returns ConnRefused if the error is not a Timeout and
	// the error or any of its wrapped causes is syscall.ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	//
	// Connection reset is not uncommon if a service on the remote host
	// comes down prematurely, while still responding to a request, and
	// it happens in a variety of cases where the remote host is a load
	// balancer. A reset therefore tends to indicate a high probability
	// of success on retry.
	//
	// Categorize returns ConnReset if the error is not a Timeout and
	// the error or any of its wrapped causes is syscall.ECONNRESET.
	ConnReset
)

var categoryNames = []string{"Not", "Timeout", "ConnRefused", "ConnReset"}

// String returns the category's name, which is handy when bucketing
// error metrics or attaching the category to a structured log event.
func (c Category) String() string {
	if c < Not || ConnReset < c {
		return "Invalid"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of the given error. A nil
// error, and any error that is not transient from the perspective of
// completing a request attempt, both produce Not.
//
// In assessing transience, Categorize looks at the wrapped causes
// contained within err, not just err itself. It never checks whether
// an error has a Temporary() method that reports true, as the
// semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
