package types

// Response is the decoded JSON body returned by the platform. Payload
// shapes vary per task type and server version, so the body is exposed
// as-is rather than forced into a fixed struct.
type Response map[string]any

// TaskID returns the task handle of an asynchronous creation response,
// or "" when the body carries none. The handle is opaque; no client-side
// validation or expiry is applied.
func (r Response) TaskID() string {
	id, _ := r["task_id"].(string)
	return id
}
