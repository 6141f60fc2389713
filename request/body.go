// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/url"
)

const badBodyTypeMsg = "yafetch/request: invalid type (for body use nil, " +
	"string, []byte, url.Values, *Form, io.Reader or io.ReadCloser)"

// BodyBytes converts a generic body value to the byte slice carried by
// a request plan.
//
// The body value may be:
//
// • nil, returned as a nil slice;
//
// • a string or []byte, returned via the built-in conversions;
//
// • a url.Values, encoded as an HTML form;
//
// • a *Form, finalized and returned as the accumulated multipart
// payload;
//
// • an io.Reader or io.ReadCloser, read to the end and buffered (and
// closed, if it implements Closer). A read or close error is returned
// with a nil slice.
//
// Any other type is an error. Buffering up front is what lets a plan
// replay its body on every retry attempt.
func BodyBytes(body any) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case url.Values:
		return []byte(x.Encode()), nil
	case *Form:
		return x.bytes()
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		err = x.Close()
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}

// A Form accumulates a multipart/form-data request body.
//
// A Form carries its own boundary, so the materialized request's
// Content-Type header is taken from ContentType rather than synthesized
// elsewhere. Build a form with NewForm, add fields and files with the
// chainable Field and File methods, and pass it as Options.Body. The
// first error encountered while building sticks and is reported either
// by Err or when the request is materialized.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
	final  bool
}

// NewForm returns an empty multipart form body.
func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// Field appends a simple form field and returns f for chaining.
func (f *Form) Field(name, value string) *Form {
	if f.err == nil && !f.final {
		f.err = f.writer.WriteField(name, value)
	}
	return f
}

// File appends a file field with the given file name, reading r to the
// end, and returns f for chaining.
func (f *Form) File(name, filename string, r io.Reader) *Form {
	if f.err != nil || f.final {
		return f
	}
	w, err := f.writer.CreateFormFile(name, filename)
	if err == nil {
		_, err = io.Copy(w, r)
	}
	f.err = err
	return f
}

// ContentType returns the multipart/form-data media type including the
// form's boundary parameter. It is the Content-Type the materialized
// request is sent with.
func (f *Form) ContentType() string {
	return f.writer.FormDataContentType()
}

// Err returns the first error encountered while building the form, or
// nil.
func (f *Form) Err() error {
	return f.err
}

// bytes finalizes the form on first use and returns the complete
// payload. A form must be fully built before the request using it is
// issued; fields added after finalization are dropped.
func (f *Form) bytes() ([]byte, error) {
	if f.err == nil && !f.final {
		f.final = true
		f.err = f.writer.Close()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.buf.Bytes(), nil
}
