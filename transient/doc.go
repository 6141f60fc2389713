// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport errors from request execution
// as transient or non-transient. The retry package's TransientErr
// decider is built on it, and the classification is equally handy for
// bucketing error metrics or tagging log events.
//
// Package transient depends only on the standard library packages
// "errors" and "syscall", so importing it standalone brings no
// significant dependencies.
package transient
