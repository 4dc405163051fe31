package jscodes

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Just enough of a browser for the bridge to connect and answer evals.
const browserStub = `
var sent = [];
var lastSocket = null;
function WebSocket(url) { this.url = url; this.readyState = WebSocket.OPEN; lastSocket = this; }
WebSocket.OPEN = 1;
WebSocket.prototype.send = function (text) { sent.push(text); };
var location = { protocol: "http:", host: "localhost:8700" };
var window = { innerWidth: 800, innerHeight: 600, devicePixelRatio: 1 };
function setTimeout() {}
function Element() {}
function CanvasRenderingContext2D() {}
`

type evalReply struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Value any    `json:"value"`
	Error string `json:"error"`
}

func evalInBridge(t *testing.T, script string) evalReply {
	t.Helper()
	vm := goja.New()
	_, err := vm.RunString(browserStub)
	require.NoError(t, err)
	_, err = vm.RunString(Bridge)
	require.NoError(t, err)

	data, err := sonic.Marshal(map[string]string{"type": "eval", "id": "e1", "script": script})
	require.NoError(t, err)
	require.NoError(t, vm.Set("incoming", string(data)))
	_, err = vm.RunString(`lastSocket.onmessage({ data: incoming });`)
	require.NoError(t, err)

	last, err := vm.RunString(`sent[sent.length - 1]`)
	require.NoError(t, err)
	var reply evalReply
	require.NoError(t, sonic.Unmarshal([]byte(last.String()), &reply))
	return reply
}

func TestBridgeEvalReplies(t *testing.T) {
	tests := []struct {
		name   string
		script string
		value  any
		errHas string
	}{
		{name: "number", script: "1 + 1;", value: 2.0},
		{name: "string", script: "'a' + 'b';", value: "ab"},
		{name: "undefined", script: "undefined;", value: nil},
		{name: "non-finite", script: "1 / 0;", value: "Infinity"},
		{name: "thrown", script: "nope;", errHas: "nope"},
		{name: "cyclic", script: "var o = {}; o.self = o; o;", errHas: "unserializable result"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := evalInBridge(t, tt.script)
			assert.Equal(t, "result", reply.Type)
			assert.Equal(t, "e1", reply.ID)
			if tt.errHas != "" {
				assert.Contains(t, reply.Error, tt.errHas)
				return
			}
			assert.Empty(t, reply.Error)
			assert.Equal(t, tt.value, reply.Value)
		})
	}
}
