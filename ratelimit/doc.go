// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package ratelimit throttles request attempts through a shared token
// bucket from golang.org/x/time/rate. Wrap a client's HTTPDoer to keep
// every call made through that client, retries included, under the
// bucket's sustained rate:
//
//	cl := &yafetch.Client{
//		HTTPDoer: ratelimit.NewDoer(rate.NewLimiter(rate.Limit(20), 5), nil),
//	}
package ratelimit
