// Package jscodes holds the script and page sources shipped to script
// contexts.
package jscodes

import _ "embed"

// MainCanvas creates the full-window canvas and keeps it sized to the
// window. It leaves cv and ctx as globals.
//
//go:embed main_canvas.js
var MainCanvas string

// Bridge connects a browser page to the remote backend over a websocket and
// defines r2eval and webuikit.invoke.
//
//go:embed bridge.js
var Bridge string

// Page is the default page served when no user page is configured.
//
//go:embed page.html
var Page string

// Headless emulates the subset of the DOM and 2D context the bridge drives.
// Draw calls are reported through the host function __wuk_record.
//
//go:embed headless.js
var Headless string
