// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting per-attempt deadlines
// during a request execution, including on retries. A generic
// interface for timeout policies is provided, Policy, along with the
// policy generating functions Fixed and Adaptive.
//
// A timeout policy is installed on the client and supplies the attempt
// deadline for every request whose own configuration does not carry an
// explicit timeout. A client without a policy sets no per-attempt
// deadline at all.
package timeout
