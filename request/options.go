// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const badParamsTypeMsg = "yafetch/request: invalid type (for params use nil, " +
	"url.Values, string, map[string]string or map[string]any)"

// Options describes a composable request configuration.
//
// An Options value is a partial description: any field may be left at
// its zero value, in which case it contributes nothing. Options values
// combine through Merge, which is how a client instance's base
// configuration, an extension's configuration, and call-site
// configuration become the single configuration a request is
// materialized from.
//
// Options is a value type. Merge never mutates its inputs and never
// aliases their containers, so a base configuration can be shared
// freely between goroutines and extended instances.
type Options struct {
	// Base is the target origin the request path is appended to, for
	// example "https://api.example.com". If empty, Path must itself be
	// an absolute URL.
	Base string

	// Path is the path fragment appended to Base. Merging two
	// configurations concatenates their paths, so an instance with
	// path "/api" extended with path "/posts" targets "/api/posts".
	Path string

	// Method specifies the HTTP method (GET, POST, PUT, etc.). An
	// empty string means GET.
	Method string

	// Header contains request header fields. Merging unions the keys
	// of both configurations; on a key collision the child's value
	// replaces the parent's whole value list.
	Header http.Header

	// Params describes query parameters appended to the target URL.
	// It may be nil, a url.Values, a raw query string (with or
	// without a leading "?"), a map[string]string, or a
	// map[string]any whose values are stringified. See QueryValues
	// for the exact normalization rules.
	//
	// Parameters are appended to any query already embedded in
	// Base or Path, never replacing it. Merging unions parameters by
	// key with the child configuration winning collisions.
	Params any

	// Serializer overrides the default encoding of Params into the
	// target's query string. It receives the merged, normalized
	// parameters and returns the encoded query without a leading "?".
	// When nil, url.Values.Encode is used.
	Serializer func(v url.Values) string

	// JSON, when non-nil, is marshaled into the request body and the
	// Content-Type header is forced to "application/json", replacing
	// any caller-supplied value. JSON takes precedence over Body.
	JSON any

	// Body is the request body. It may be nil, a string, a []byte, a
	// url.Values (form-encoded, with Content-Type defaulted to
	// "application/x-www-form-urlencoded" unless already set), a
	// *Form (multipart, carrying its own boundary Content-Type), an
	// io.Reader, or an io.ReadCloser. Readers are read to the end and
	// buffered so the body can be replayed on retries.
	Body any

	// Timeout bounds each individual request attempt. A retried
	// request arms a fresh timeout per attempt. Zero means no
	// attempt timeout beyond the deadline, if any, on the caller's
	// context.
	Timeout time.Duration

	// OnRequest runs before each attempt is sent and may mutate the
	// attempt's request in place, for example to attach freshly
	// resolved credentials. If it returns an error, the attempt is
	// aborted before the transport is invoked and the error is
	// returned to the caller as-is: no retry and no failure handling
	// apply to a vetoed request.
	OnRequest func(e *Execution) error

	// OnResponse classifies the outcome of an attempt that produced
	// a response. A nil return classifies the attempt as a success; a
	// non-nil return is the classified failure. When OnResponse is
	// nil the executing client's default classification applies:
	// 2xx responses succeed and everything else fails.
	OnResponse func(e *Execution) error

	// OnSuccess runs once, after classification and any retries, when
	// the call has succeeded. Returning an error converts the call
	// into a failure, which is then offered to OnFailure.
	OnSuccess func(e *Execution) error

	// OnFailure runs once, when the call has failed, and is the last
	// chance to recover locally. Returning nil recovers the call: the
	// execution's current response stands as the result. Returning an
	// error (the same one or a substitute) propagates it to the
	// caller.
	OnFailure func(e *Execution, err error) error

	// OnJSON transforms the raw response document before the JSON
	// decode unmarshals it, allowing enveloped APIs to be unwrapped
	// in one place.
	OnJSON func(data json.RawMessage) (json.RawMessage, error)

	// Retry overrides the executing client's retry policy decider for
	// this request. It reports whether the attempt recorded in e
	// should be retried.
	Retry func(e *Execution) bool

	// Delay overrides the executing client's retry policy waiter for
	// this request. It returns how long to pause before the next
	// attempt.
	Delay func(e *Execution) time.Duration
}

// Merge combines configurations left to right into a single new
// configuration. It never mutates its inputs and the result never
// aliases an input's header or parameter containers.
//
// For each pair, the child's scalar fields (Base, Method, Timeout,
// Serializer, JSON, Body and the callback fields) replace the parent's
// when set. Path is the concatenation of parent then child. Header and
// Params are unioned by key with the child winning collisions; a
// colliding key's value list is replaced whole, never appended to.
func Merge(opts ...Options) Options {
	var merged Options
	for i := range opts {
		merged = merge(merged, opts[i])
	}
	return merged
}

func merge(parent, child Options) Options {
	merged := parent
	if child.Base != "" {
		merged.Base = child.Base
	}
	merged.Path = parent.Path + child.Path
	if child.Method != "" {
		merged.Method = child.Method
	}
	merged.Header = mergeHeader(parent.Header, child.Header)
	merged.Params = mergeParams(parent.Params, child.Params)
	if child.Serializer != nil {
		merged.Serializer = child.Serializer
	}
	if child.JSON != nil {
		merged.JSON = child.JSON
	}
	if child.Body != nil {
		merged.Body = child.Body
	}
	if child.Timeout != 0 {
		merged.Timeout = child.Timeout
	}
	if child.OnRequest != nil {
		merged.OnRequest = child.OnRequest
	}
	if child.OnResponse != nil {
		merged.OnResponse = child.OnResponse
	}
	if child.OnSuccess != nil {
		merged.OnSuccess = child.OnSuccess
	}
	if child.OnFailure != nil {
		merged.OnFailure = child.OnFailure
	}
	if child.OnJSON != nil {
		merged.OnJSON = child.OnJSON
	}
	if child.Retry != nil {
		merged.Retry = child.Retry
	}
	if child.Delay != nil {
		merged.Delay = child.Delay
	}
	return merged
}

func mergeHeader(parent, child http.Header) http.Header {
	if parent == nil && child == nil {
		return nil
	}
	merged := make(http.Header, len(parent)+len(child))
	for k, vv := range parent {
		merged[textproto.CanonicalMIMEHeaderKey(k)] = cloneStrings(vv)
	}
	for k, vv := range child {
		merged[textproto.CanonicalMIMEHeaderKey(k)] = cloneStrings(vv)
	}
	return merged
}

func mergeParams(parent, child any) any {
	if parent == nil && child == nil {
		return nil
	}
	pv, err := QueryValues(parent)
	if err != nil {
		return invalidParams{err}
	}
	cv, err := QueryValues(child)
	if err != nil {
		return invalidParams{err}
	}
	merged := make(url.Values, len(pv)+len(cv))
	for k, vv := range pv {
		merged[k] = vv
	}
	for k, vv := range cv {
		merged[k] = vv
	}
	return merged
}

// invalidParams carries a parameter normalization error through a merge
// so it surfaces when the request is materialized, keeping Merge total.
type invalidParams struct {
	err error
}

// QueryValues normalizes a generic params value into url.Values for
// merging and serialization. The returned container never aliases
// params.
//
// The params value may be:
//
// • nil, normalized to nil;
//
// • a url.Values, copied as-is, preserving repeated values per key;
//
// • a string, parsed as a raw query (an optional leading "?" is
// ignored);
//
// • a map[string]string, each entry becoming a single-valued key;
//
// • a map[string]any, each value contributing a single stringified
// value, except []string values which are kept verbatim and nil
// values which contribute an empty string.
//
// Any other type is an error.
func QueryValues(params any) (url.Values, error) {
	switch x := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		out := make(url.Values, len(x))
		for k, vv := range x {
			out[k] = cloneStrings(vv)
		}
		return out, nil
	case string:
		return url.ParseQuery(strings.TrimPrefix(x, "?"))
	case map[string]string:
		out := make(url.Values, len(x))
		for k, v := range x {
			out[k] = []string{v}
		}
		return out, nil
	case map[string]any:
		out := make(url.Values, len(x))
		for k, v := range x {
			switch y := v.(type) {
			case nil:
				out[k] = []string{""}
			case string:
				out[k] = []string{y}
			case []string:
				out[k] = cloneStrings(y)
			default:
				out[k] = []string{fmt.Sprint(y)}
			}
		}
		return out, nil
	case invalidParams:
		return nil, x.err
	default:
		return nil, errors.New(badParamsTypeMsg)
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
