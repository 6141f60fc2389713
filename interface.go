// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package yafetch

import (
	"context"
	"net/http"

	"github.com/exah/ya-fetch/request"
)

// Requester is the interface that wraps the generic Request method.
//
// Request opens a request to path, extending an instance configuration
// with opts, and returns the Pending result without dispatching it.
// Client implements Requester, and any other implementation must
// behave substantially similarly to Client.Request.
//
// Use the Inflate function to expand a Requester into a full Executor.
type Requester interface {
	Request(ctx context.Context, path string, opts ...request.Options) *Pending
}

// Getter is the interface that wraps the verb method Get. Client
// implements Getter.
type Getter interface {
	Get(ctx context.Context, path string, opts ...request.Options) *Pending
}

// Header is the interface that wraps the verb method Head. Client
// implements Header.
type Header interface {
	Head(ctx context.Context, path string, opts ...request.Options) *Pending
}

// Poster is the interface that wraps the verb method Post. Client
// implements Poster.
type Poster interface {
	Post(ctx context.Context, path string, opts ...request.Options) *Pending
}

// Putter is the interface that wraps the verb method Put. Client
// implements Putter.
type Putter interface {
	Put(ctx context.Context, path string, opts ...request.Options) *Pending
}

// Patcher is the interface that wraps the verb method Patch. Client
// implements Patcher.
type Patcher interface {
	Patch(ctx context.Context, path string, opts ...request.Options) *Pending
}

// Deleter is the interface that wraps the verb method Delete. Client
// implements Deleter.
type Deleter interface {
	Delete(ctx context.Context, path string, opts ...request.Options) *Pending
}

// IdleCloser is the interface that wraps the method
// CloseIdleConnections, allowing the holder to close idle connections
// if its implementation supports this behavior. Client implements
// IdleCloser.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the generic Request method,
// the verb methods, and CloseIdleConnections. Client implements
// Executor.
//
// Consumers that only issue requests should depend on the narrowest
// interface that serves them (often just Requester or Getter) rather
// than on Executor or on *Client.
type Executor interface {
	Requester
	Getter
	Header
	Poster
	Putter
	Patcher
	Deleter
	IdleCloser
}

// Inflate promotes a Requester into an Executor.
//
// If r already implements Executor, Inflate returns r. Otherwise it
// returns an Executor whose verb methods delegate to r.Request with
// the verb merged in as the child-most configuration, matching the
// behavior of the corresponding methods on Client, and whose
// CloseIdleConnections method delegates to r if r implements
// IdleCloser and otherwise does nothing.
//
// Inflate panics if r is nil.
func Inflate(r Requester) Executor {
	if r == nil {
		panic("yafetch: nil requester")
	}
	if x, ok := r.(Executor); ok {
		return x
	}
	return inflated{r}
}

type inflated struct {
	requester Requester
}

func (i inflated) Request(ctx context.Context, path string, opts ...request.Options) *Pending {
	return i.requester.Request(ctx, path, opts...)
}

func (i inflated) Get(ctx context.Context, path string, opts ...request.Options) *Pending {
	return withMethod(i.requester, ctx, http.MethodGet, path, opts)
}

func (i inflated) Head(ctx context.Context, path string, opts ...request.Options) *Pending {
	return withMethod(i.requester, ctx, http.MethodHead, path, opts)
}

func (i inflated) Post(ctx context.Context, path string, opts ...request.Options) *Pending {
	return withMethod(i.requester, ctx, http.MethodPost, path, opts)
}

func (i inflated) Put(ctx context.Context, path string, opts ...request.Options) *Pending {
	return withMethod(i.requester, ctx, http.MethodPut, path, opts)
}

func (i inflated) Patch(ctx context.Context, path string, opts ...request.Options) *Pending {
	return withMethod(i.requester, ctx, http.MethodPatch, path, opts)
}

func (i inflated) Delete(ctx context.Context, path string, opts ...request.Options) *Pending {
	return withMethod(i.requester, ctx, http.MethodDelete, path, opts)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.requester.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// withMethod emulates a verb method on top of a bare Requester. The
// method rides along as the child-most configuration so it wins any
// merge, exactly as the verb methods on Client guarantee.
func withMethod(r Requester, ctx context.Context, method, path string, opts []request.Options) *Pending {
	all := make([]request.Options, len(opts), len(opts)+1)
	copy(all, opts)
	all = append(all, request.Options{Method: method})
	return r.Request(ctx, path, all...)
}
