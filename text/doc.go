// Package text is the chat-completion and text-embedding facade of the
// FlexStack platform.
//
// Chat messages are validated locally before any network call: every
// message must carry exactly a role and a content, and the role must be
// system, user or assistant. Streaming completions are consumed as raw
// response lines:
//
//	stream, err := client.GenerateStream(ctx, req)
//	if err != nil { ... }
//	for chunk := range stream {
//	    if chunk.Err != nil { ... }
//	    fmt.Println(chunk.Line)
//	}
//
// Cancel the context to stop consuming early; the connection is released
// when iteration ends.
package text
