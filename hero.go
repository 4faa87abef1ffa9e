package main

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtrivino/portfolio/internal/typed"
)

// streamSink hands frames from the animator's timer to the request goroutine.
type streamSink struct {
	ctx    context.Context
	frames chan string
}

func (s *streamSink) SetText(text string) {
	select {
	case s.frames <- text:
	case <-s.ctx.Done():
	}
}

// Attached is false once the client has gone.
func (s *streamSink) Attached() bool {
	return s.ctx.Err() == nil
}

// handleTyped streams the hero banner as Server-Sent Events, one "typed"
// event per step, for as long as the client stays connected.
func (s *site) handleTyped(c *gin.Context) {
	ctx := c.Request.Context()
	sink := &streamSink{ctx: ctx, frames: make(chan string, 1)}

	anim, err := typed.New(s.phrases, sink, typed.WithTiming(s.timing))
	if errors.Is(err, typed.ErrNoPhrases) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	anim.Start()
	defer anim.Dispose()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("hero stream closed", "state", anim.State())
			return
		case text := <-sink.frames:
			// htmx swaps the data in as HTML.
			c.SSEvent("typed", template.HTMLEscapeString(text))
			c.Writer.Flush()
		}
	}
}
