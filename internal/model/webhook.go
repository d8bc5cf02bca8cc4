package model

// Header is a single request header as a [name, value] pair.
type Header [2]string

func (h Header) Name() string  { return h[0] }
func (h Header) Value() string { return h[1] }

// CapturedWebhook is one inbound webhook call as the mock received it.
// Timestamp is whole seconds since the Unix epoch, kept as a string on the wire.
type CapturedWebhook struct {
	Timestamp string   `json:"timestamp"`
	Headers   []Header `json:"headers"`
	Body      any      `json:"body"`
}
