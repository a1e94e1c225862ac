// Package audio is the text-to-audio facade of the FlexStack platform.
//
// Each audio model declares its own set of accepted tuning options:
// audiogen and musicgen take duration, top_k and top_p (defaulting to
// 5, 15 and 0.9), bark takes none. Setting an option the selected model
// does not accept fails locally with a validation error that enumerates
// the accepted names.
package audio
