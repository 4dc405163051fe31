/*
Package resilience provides a circuit breaker for the browser transport.

# Overview

When the websocket to a browser page breaks, every draw call would otherwise
wait for its context deadline. The breaker counts consecutive transport
failures and, past a threshold, fails calls immediately with ErrCircuitOpen
until a cooldown passes. One probe call is then let through (half-open);
its outcome closes or reopens the circuit.

Script exceptions raised inside the page are not transport failures and
must not be reported to the breaker.

# Usage

	b := resilience.New("remote", resilience.Settings{Threshold: 3, Cooldown: time.Second})
	err := b.Execute(func() error { return conn.WriteMessage(...) })
*/
package resilience
