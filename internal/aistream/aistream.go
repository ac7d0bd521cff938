// Package aistream encodes the line-delimited data-stream protocol the chat
// frontend consumes. Three frame kinds:
//
//	0:"some text"\n                    human-readable text chunk
//	2:[{...}]\n                        structured data chunk (JSON array)
//	d:{"finishReason":"stop"}\n        terminal status
//
// Every stream must end with exactly one finish frame.
package aistream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FinishReason values for the terminal frame.
const (
	FinishStop  = "stop"
	FinishError = "error"
)

// Writer emits protocol frames to an underlying stream, flushing after each
// frame when the stream supports it.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter wraps w. If w implements http.Flusher (gin's ResponseWriter does),
// each frame is flushed immediately so the UI sees events as they happen.
func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.flusher = f
	}
	return sw
}

// Text emits a human-readable text chunk.
func (s *Writer) Text(text string) error {
	encoded, err := json.Marshal(text)
	if err != nil {
		return err
	}
	return s.frame("0:%s\n", encoded)
}

// Data emits one structured payload, wrapped in the single-element JSON array
// the protocol expects.
func (s *Writer) Data(payload any) error {
	encoded, err := json.Marshal([]any{payload})
	if err != nil {
		return err
	}
	return s.frame("2:%s\n", encoded)
}

// Finish emits the terminal status frame. Callers must send exactly one.
func (s *Writer) Finish(reason string) error {
	return s.frame(`d:{"finishReason":%q}`+"\n", reason)
}

func (s *Writer) frame(format string, arg any) error {
	if _, err := fmt.Fprintf(s.w, format, arg); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
