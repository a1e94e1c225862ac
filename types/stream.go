package types

// StreamChunk is one element of a streaming generation response: a single
// non-empty line of the response body, or a terminal error. The stream is
// finite and not restartable; the channel closes when the server ends the
// response or the caller cancels the context.
type StreamChunk struct {
	Line string `json:"line,omitempty"`
	Err  *Error `json:"error,omitempty"`
}
