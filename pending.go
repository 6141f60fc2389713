// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package yafetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"

	"github.com/exah/ya-fetch/request"
)

const (
	acceptJSON = "application/json"
	acceptText = "text/*"
	acceptAny  = "*/*"
	acceptForm = "multipart/form-data"
)

// A Pending is a request that has been opened but not yet dispatched.
//
// Opening a request through Client.Request or the verb methods costs
// nothing on the wire: the merged configuration is held until one of
// the settling operations (Result, JSON, Text, Bytes, Blob, Form or
// Discard) is invoked. The first settling operation runs the whole
// execution pipeline, attempts, retries and callbacks included;
// every operation after that reuses the settled outcome, so decodes
// are idempotent and may be repeated in any combination.
//
// Each decode operation first sets its media type as the Accept header
// of the request, so the server learns the representation the caller
// intends to consume. Because the execution runs inside the first
// settling operation, the header only takes effect for the operation
// that triggers dispatch; on an already settled Pending it is a no-op.
//
// A Pending is safe for concurrent use by multiple goroutines.
type Pending struct {
	client *Client
	ctx    context.Context
	opts   request.Options

	once sync.Once
	exec *request.Execution
	err  error
}

// settle runs the execution pipeline exactly once and memoizes its
// outcome. A non-empty accept media type is set on the configuration's
// Accept header just before the plan is materialized.
func (p *Pending) settle(accept string) (*request.Execution, error) {
	p.once.Do(func() {
		if accept != "" {
			if p.opts.Header == nil {
				p.opts.Header = make(http.Header, 1)
			}
			p.opts.Header.Set("Accept", accept)
		}
		p.exec, p.err = p.client.run(p.ctx, p.opts)
	})
	return p.exec, p.err
}

// Result settles the request and returns the raw execution state
// together with the call's final error. It does not force an Accept
// header.
//
// The execution is nil only if the configuration could not be
// materialized into a request; in every other case it is non-nil, even
// when err is non-nil.
func (p *Pending) Result() (*request.Execution, error) {
	return p.settle("")
}

// JSON settles the request with Accept: application/json and
// unmarshals the response body into v. When the configuration carries
// an OnJSON callback, the raw document is passed through it before
// unmarshaling, which is where enveloped APIs get unwrapped.
func (p *Pending) JSON(v any) error {
	e, err := p.settle(acceptJSON)
	if err != nil {
		return err
	}
	data := json.RawMessage(e.Body)
	if f := p.opts.OnJSON; f != nil {
		data, err = f(data)
		if err != nil {
			return err
		}
	}
	return json.Unmarshal(data, v)
}

// Text settles the request with Accept: text/* and returns the
// response body as a string.
func (p *Pending) Text() (string, error) {
	e, err := p.settle(acceptText)
	if err != nil {
		return "", err
	}
	return string(e.Body), nil
}

// Bytes settles the request with Accept: */* and returns a copy of the
// buffered response body. The copy is the caller's to keep; mutating
// it does not disturb later decodes.
func (p *Pending) Bytes() ([]byte, error) {
	e, err := p.settle(acceptAny)
	if err != nil {
		return nil, err
	}
	body := make([]byte, len(e.Body))
	copy(body, e.Body)
	return body, nil
}

// Blob settles the request with Accept: */* and returns the response
// body as a reader. Each call returns a fresh reader positioned at the
// start of the buffered body.
func (p *Pending) Blob() (io.ReadCloser, error) {
	e, err := p.settle(acceptAny)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(e.Body)), nil
}

// Form settles the request with Accept: multipart/form-data and parses
// the response body into url.Values according to the response's
// Content-Type: urlencoded bodies through url.ParseQuery, multipart
// bodies part by part. A multipart file part contributes its content
// as the value of its field name.
func (p *Pending) Form() (url.Values, error) {
	e, err := p.settle(acceptForm)
	if err != nil {
		return nil, err
	}
	return parseFormBody(e)
}

// Discard settles the request and throws the response body away,
// returning only the call's final error. It does not force an Accept
// header. Use it when only the side effect of the request matters.
func (p *Pending) Discard() error {
	_, err := p.settle("")
	return err
}

func parseFormBody(e *request.Execution) (url.Values, error) {
	mediaType, params, err := mime.ParseMediaType(e.Header().Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("yafetch: cannot parse response as form data: %w", err)
	}
	switch mediaType {
	case "application/x-www-form-urlencoded":
		return url.ParseQuery(string(e.Body))
	case "multipart/form-data":
		boundary := params["boundary"]
		if boundary == "" {
			return nil, errors.New("yafetch: multipart response without boundary")
		}
		form := make(url.Values)
		mr := multipart.NewReader(bytes.NewReader(e.Body), boundary)
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return form, nil
			}
			if err != nil {
				return nil, err
			}
			value, err := io.ReadAll(part)
			if err != nil {
				return nil, err
			}
			form.Add(part.FormName(), string(value))
		}
	default:
		return nil, fmt.Errorf("yafetch: cannot parse %q response as form data", mediaType)
	}
}
