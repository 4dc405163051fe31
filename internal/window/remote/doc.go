// Package remote drives a real browser page over a websocket.
//
// The server hands the browser a page with the bridge script injected. The
// bridge opens /ws and evaluates every script the host sends, replying with
// the exported value or the error text.
//
// Message Types (Server → Page):
//   - eval: Evaluate script; reply with result
//   - invoked: Result of a page-initiated invoke
//
// Message Types (Page → Server):
//   - hello: Page connected; carries window size and pixel ratio
//   - result: Value or error for an eval
//   - invoke: Call a host callable registered on the window
//
// Only one page is driven at a time. A new connection replaces the old one
// and fails its in-flight evals with ErrNotConnected.
//
// Example Usage:
//
//	srv := remote.New(remote.DefaultConfig(), remote.WithLogger(log))
//	if err := srv.Start(); err != nil {
//		return err
//	}
//	if err := srv.WaitConnected(ctx); err != nil {
//		return err
//	}
//	w := window.New(srv, window.WithBackendName("remote"))
package remote
