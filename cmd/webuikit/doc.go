// Package main is the WebUIKit demo binary.
//
// It draws a bouncing, color-cycling rectangle (plus any rectangles from a
// scene file) through the canvas bridge, one batched round trip per frame.
//
// Backends:
//   - sandbox: in-process goja runtime with a headless canvas; logs the
//     number of recorded draw calls on exit
//   - remote: serves a page with the bridge script and drives the browser
//     that opens it over a websocket
//
// Configuration:
//   - Environment variables (12-factor, see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Headless run for ten seconds
//	./webuikit -backend sandbox -duration 10s
//
//	# Browser run with a scene file and debug logs
//	./webuikit -backend remote -port 8700 -scene scene.yaml -dev
//
// Signals:
//   - SIGINT, SIGTERM: stop the render loop and shut down
package main
