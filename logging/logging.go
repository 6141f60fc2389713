// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"github.com/rs/zerolog"

	yafetch "github.com/exah/ya-fetch"
	"github.com/exah/ya-fetch/request"
)

// Handler is an event handler that emits structured log events about
// request executions through a zerolog logger. Attempts and successful
// calls log at debug level; attempt timeouts, failed attempts and
// failed calls log at warn level with the error attached.
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a Handler writing through log.
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log}
}

// Install adds the Handler to the handler group for the events it
// consumes.
func (h *Handler) Install(g *yafetch.HandlerGroup) {
	g.PushBack(yafetch.BeforeAttempt, h)
	g.PushBack(yafetch.AfterAttemptTimeout, h)
	g.PushBack(yafetch.AfterAttempt, h)
	g.PushBack(yafetch.AfterExecutionEnd, h)
}

// Handle emits the log event for one event occurrence.
func (h *Handler) Handle(evt yafetch.Event, e *request.Execution) {
	switch evt {
	case yafetch.BeforeAttempt:
		h.log.Debug().
			Str("method", e.Plan.Method).
			Str("url", e.Plan.URL.String()).
			Int("attempt", e.Attempt).
			Msg("attempt start")
	case yafetch.AfterAttemptTimeout:
		h.log.Warn().
			Err(e.Err).
			Str("method", e.Plan.Method).
			Str("url", e.Plan.URL.String()).
			Int("attempt", e.Attempt).
			Msg("attempt timed out")
	case yafetch.AfterAttempt:
		logEvent := h.log.Debug()
		if e.Err != nil {
			logEvent = h.log.Warn().Err(e.Err)
		}
		logEvent.
			Str("method", e.Plan.Method).
			Str("url", e.Plan.URL.String()).
			Int("attempt", e.Attempt).
			Int("status", e.StatusCode()).
			Msg("attempt end")
	case yafetch.AfterExecutionEnd:
		logEvent := h.log.Debug()
		if e.Err != nil {
			logEvent = h.log.Warn().Err(e.Err)
		}
		logEvent.
			Str("method", e.Plan.Method).
			Str("url", e.Plan.URL.String()).
			Int("attempts", e.Attempt+1).
			Int("status", e.StatusCode()).
			Dur("elapsed", e.Duration()).
			Msg("call end")
	}
}
