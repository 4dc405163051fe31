/*
Package sandbox runs the bridge against an in-process goja runtime.

# Overview

The runtime emulates the parts of a browser page the bridge drives: a
document with a body, canvas elements, a 2D context with a save/restore
attribute stack, Path2D, gradients, patterns, ImageData and Image. Every
draw call and attribute write is recorded as a DrawCall so tests and the
headless demo can inspect what a frame produced.

Scripts run with a timeout and honour context cancellation through goja's
interrupt mechanism. Node-style globals are removed.

# Host hooks

  - webuikit.invoke(name, ...args) calls the Invoker set by the window
  - Image.src resolves dimensions through an ImageResolver
  - console.* is captured and mirrored to the logger at Debug

# Usage Example

	rt, err := sandbox.New(sandbox.DefaultConfig(), sandbox.WithLogger(log))
	if err != nil {
		return err
	}
	defer rt.Close()

	w := window.New(rt, window.WithBackendName("sandbox"))
*/
package sandbox
