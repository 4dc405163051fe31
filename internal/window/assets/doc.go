// Package assets serves binary payloads to the script context over HTTP.
//
// The script side can only read bytes by URL, so images and other blobs the
// host wants to hand over are stored here under a path and fetched by the
// page. Responses carry a sniffed content type, permissive CORS headers so
// canvases stay untainted, and gzip when the client accepts it.
//
// A directory can be preloaded at startup; files whose slash-separated
// relative path matches a doublestar pattern are served under that path.
package assets
