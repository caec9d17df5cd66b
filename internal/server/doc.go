// Package server implements the MCP (Model Context Protocol) server for the
// radial profile viewer.
//
// This package provides a JSON-RPC 2.0 server that drives one viewer session:
// a current image with undo history, zoom, a selection and ROIs, a clipboard,
// circular-average profiling and a filter host.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// When notifications are enabled, every results-feed line produced while
// handling a request is sent as a notifications/message entry before the
// response.
//
// # Available Tools
//
// Document:
//   - image_load, image_info, image_view
//
// Zoom and selection:
//   - image_zoom, image_pointer, image_select
//
// Clipboard:
//   - image_copy, image_cut, image_paste
//
// Transforms (each one undoable):
//   - image_rotate, image_flip, image_crop, image_resize, image_undo
//
// Inspection:
//   - image_inspect, image_histogram
//
// Radial profiling:
//   - radial_center, radial_profile, radial_sweep
//
// Filters:
//   - filter_list, filter_apply, filter_load
//
// Results:
//   - results_feed
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: the Go error string
//
// A failed edit never changes the current image.
//
// # Usage
//
//	srv := server.New(cfg, plugin.NewHost(), results.NewFeed(os.Stderr))
//	defer srv.Close()
//	if err := srv.Run(); err != nil {
//	    return err
//	}
package server
