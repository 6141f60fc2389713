// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "yafetch/request: nil context"

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// An InvalidTargetError is returned by NewPlan when a configuration
// does not resolve to an absolute request target: the base is absent
// and the path fragment is not itself an absolute URL, or the combined
// target does not parse.
type InvalidTargetError struct {
	// Base is the configured target base, possibly empty.
	Base string

	// Path is the configured path fragment, possibly empty.
	Path string

	// Err is the underlying URL parse error, if there was one.
	Err error
}

func (e *InvalidTargetError) Error() string {
	msg := fmt.Sprintf("yafetch/request: no absolute target from base %q and path %q", e.Base, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidTargetError) Unwrap() error {
	return e.Err
}

// A Plan is the materialized, dispatch-ready form of a merged Options:
// absolute URL, finalized headers, and a pre-buffered body.
//
// A Plan describes a logical request whose execution may involve
// several attempts if retry is necessary after a failure. Exactly one
// lower-level http.Request is derived from the Plan per attempt, via
// ToRequest; the pre-buffered body is what makes each derived request
// replayable.
//
// For those familiar with net/http, a Plan looks like a stripped-down
// http.Request with the server-side fields removed and the body fields
// replaced by a simple []byte. Like http.Request, a Plan has a context
// which bounds the whole logical request, attempts and retry waits
// included.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.). It is
	// never empty: an unset method materializes as GET.
	Method string

	// URL specifies the absolute URL to access, query included.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent with every
	// attempt. It is never nil.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body
	// means no request body is sent.
	Body []byte

	// ctx bounds the entire plan execution. It should only be
	// replaced by copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan materializes a merged configuration into a Plan, or fails
// with an *InvalidTargetError if no absolute target can be resolved
// from the configuration's base and path.
//
// The target URL is the concatenation of opts.Base and opts.Path.
// Normalized query parameters are appended to any query already
// embedded in the target, never replacing it. A JSON payload is
// marshaled into the body and forces the Content-Type header to
// application/json over any caller-supplied value; other body kinds
// follow the BodyBytes conversions.
//
// The context bounds the whole plan execution and may not be nil.
func NewPlan(ctx context.Context, opts Options) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	method := opts.Method
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("yafetch/request: invalid method %q", method)
	}
	u, err := targetURL(opts)
	if err != nil {
		return nil, err
	}
	header, err := planHeader(opts.Header)
	if err != nil {
		return nil, err
	}
	body, err := planBody(opts, header)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: header,
		Body:   body,
	}, nil
}

func targetURL(opts Options) (*urlpkg.URL, error) {
	u, err := urlpkg.Parse(opts.Base + opts.Path)
	if err != nil {
		return nil, &InvalidTargetError{Base: opts.Base, Path: opts.Path, Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &InvalidTargetError{Base: opts.Base, Path: opts.Path}
	}
	u.Host = removeEmptyPort(u.Host)
	qv, err := QueryValues(opts.Params)
	if err != nil {
		return nil, err
	}
	if len(qv) > 0 {
		q := serializeQuery(qv, opts.Serializer)
		if q != "" {
			if u.RawQuery == "" {
				u.RawQuery = q
			} else {
				u.RawQuery += "&" + q
			}
		}
	}
	return u, nil
}

func serializeQuery(v urlpkg.Values, serialize func(urlpkg.Values) string) string {
	if serialize != nil {
		return strings.TrimPrefix(serialize(v), "?")
	}
	return v.Encode()
}

func planHeader(h http.Header) (http.Header, error) {
	header := make(http.Header, len(h))
	for k, vv := range h {
		name := textproto.CanonicalMIMEHeaderKey(k)
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, fmt.Errorf("yafetch/request: invalid header field name %q", k)
		}
		for _, v := range vv {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, fmt.Errorf("yafetch/request: invalid value for header field %q", k)
			}
		}
		header[name] = cloneStrings(vv)
	}
	return header, nil
}

func planBody(opts Options, header http.Header) ([]byte, error) {
	if opts.JSON != nil {
		b, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, err
		}
		// An explicit JSON payload is a statement of intent, so it
		// wins over a conflicting caller-set Content-Type.
		header.Set("Content-Type", contentTypeJSON)
		return b, nil
	}
	b, err := BodyBytes(opts.Body)
	if err != nil {
		return nil, err
	}
	switch x := opts.Body.(type) {
	case urlpkg.Values:
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", contentTypeForm)
		}
	case *Form:
		// The form owns the boundary, so its media type must ride
		// along unconditionally.
		header.Set("Content-Type", x.ContentType())
	}
	return b, nil
}

// Context returns the plan's context. The context bounds the whole
// plan execution and can be used to cancel it at any time. To change
// the context, use WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
//
// The context bounds the entire lifetime of the plan's execution:
// making individual request attempts, running callbacks, and waiting
// out retry pauses.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// AddCookie adds a cookie to every attempt derived from the plan. Per
// RFC 6265 section 5.4, AddCookie does not attach more than one Cookie
// header field, so all cookies are written into the same line,
// separated by semicolons.
//
// AddCookie only sanitizes c's name and value, and does not sanitize
// a Cookie header already present in the plan.
func (p *Plan) AddCookie(c *http.Cookie) {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := p.Header.Get("Cookie"); h != "" {
		p.Header.Set("Cookie", h+"; "+s)
	} else {
		p.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the plan's Authorization header to use HTTP Basic
// Authentication with the provided username and password. The header
// persists across retry attempts; to resolve credentials freshly per
// attempt, use an OnRequest callback instead.
//
// With HTTP Basic Authentication the provided username and password
// are not encrypted.
func (p *Plan) SetBasicAuth(username, password string) {
	p.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// ToRequest derives the HTTP request for one attempt of the plan. The
// context of the new request is set to ctx, which may not be nil.
// Each attempt must derive its own request; requests are not reused
// between attempts.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = p.URL
	r.Header = p.Header
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	return r
}

// basicAuth encodes credentials per RFC 7617: user-id and password
// joined by a single colon, base64-encoded, never urlencoded. Copied
// from net/http, which keeps its version unexported.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// validMethod reports whether method is a valid RFC 7230 token. The
// empty string never reaches here because an unset method is
// interpreted as GET.
func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort reports whether a "host", "host:port", or
// "[ipv6::address]:port" string includes a port. Copied from net/http,
// which keeps it unexported.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort strips the empty port in ":port" to "" per RFC 3986
// Section 6.2.3, matching what net/http does when it builds a request.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
