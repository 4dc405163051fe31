/*
Package window is the host-side surface of a script context.

# Overview

A Window wraps a backend Executor (the in-process sandbox or a browser page
reached over websocket) and adds what every caller needs on top of raw
script execution:

  - ScriptExecutionError wrapping of backend failures
  - Batching: statements queue while batching is on and flush as one
    round trip
  - A Registry of named host callables the script side can invoke
  - An optional asset server for binary payloads such as image bytes
  - Logging and metrics around every round trip

# Concurrency

Every ExecuteScript call blocks until the backend returns. A Window assumes
a single writer; the batch queue is guarded so misuse does not corrupt it,
but interleaving calls from several goroutines interleaves their statements.
*/
package window
