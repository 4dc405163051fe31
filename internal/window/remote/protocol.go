package remote

import (
	"github.com/bytedance/sonic"
)

// Message types
const (
	TypeHello   = "hello"
	TypeEval    = "eval"
	TypeResult  = "result"
	TypeInvoke  = "invoke"
	TypeInvoked = "invoked"
)

// Message is the single envelope used in both directions
type Message struct {
	Type   string  `json:"type"`
	ID     string  `json:"id,omitempty"`
	Script string  `json:"script,omitempty"`
	Value  any     `json:"value,omitempty"`
	Error  string  `json:"error,omitempty"`
	Name   string  `json:"name,omitempty"`
	Args   []any   `json:"args,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	DPR    float64 `json:"dpr,omitempty"`
}

// Encode serializes a message for the wire
func Encode(msg Message) ([]byte, error) {
	return sonic.Marshal(msg)
}

// Decode parses a wire message
func Decode(data []byte) (Message, error) {
	var msg Message
	err := sonic.Unmarshal(data, &msg)
	return msg, err
}

// EvalError is an exception raised by the page while evaluating a script
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return "page: " + e.Message
}
