// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package requestid

import (
	"net/http"

	"github.com/google/uuid"

	yafetch "github.com/exah/ya-fetch"
	"github.com/exah/ya-fetch/request"
)

// HeaderXRequestID is the standard header name for request tracing.
const HeaderXRequestID = "X-Request-ID"

type idKey struct{}

// Handler is an event handler that stamps every request attempt with a
// fresh UUID in a tracing header. Each retry gets its own id, so the
// server side can tell attempts of one logical call apart.
//
// The id of the stamped attempt is also recorded on the execution and
// can be read back with FromExecution, from a callback or another
// handler.
type Handler struct {
	header string
}

// NewHandler creates a Handler stamping ids into the X-Request-ID
// header.
func NewHandler() *Handler {
	return NewHandlerWithHeader(HeaderXRequestID)
}

// NewHandlerWithHeader creates a Handler stamping ids into the named
// header. It panics if header is empty.
func NewHandlerWithHeader(header string) *Handler {
	if header == "" {
		panic("yafetch/requestid: empty header name")
	}
	return &Handler{header: header}
}

// Install adds the Handler to the handler group for the events it
// consumes.
func (h *Handler) Install(g *yafetch.HandlerGroup) {
	g.PushBack(yafetch.BeforeAttempt, h)
}

// Handle stamps the attempt about to be sent. The attempt request's
// header map is shared with the plan, so it is cloned before the stamp
// and the plan stays untouched.
func (h *Handler) Handle(_ yafetch.Event, e *request.Execution) {
	id := uuid.New().String()
	header := e.Request.Header.Clone()
	if header == nil {
		header = make(http.Header, 1)
	}
	header.Set(h.header, id)
	e.Request.Header = header
	e.SetValue(idKey{}, id)
}

// FromExecution returns the id stamped on the execution's most recent
// attempt, if a Handler is installed on the client that produced it.
func FromExecution(e *request.Execution) (string, bool) {
	id, ok := e.Value(idKey{}).(string)
	return id, ok
}
