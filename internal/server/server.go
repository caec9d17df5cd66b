package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ironsheep/radial-viewer/internal/analysis"
	"github.com/ironsheep/radial-viewer/internal/config"
	"github.com/ironsheep/radial-viewer/internal/imaging"
	"github.com/ironsheep/radial-viewer/internal/plugin"
	"github.com/ironsheep/radial-viewer/internal/results"
	"github.com/ironsheep/radial-viewer/internal/session"
)

// Version is reported in the initialize handshake.
var Version = "dev"

// Server handles MCP protocol communication for one viewer session
type Server struct {
	cfg     config.Config
	session *session.Session
	host    *plugin.Host
	loader  *imaging.Loader
	feed    *results.Feed

	// notify forwards new results-feed lines as notifications/message
	notify bool

	mu     sync.Mutex
	center *analysis.Point // profiling centre override; nil means image centre
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server driving a fresh session. host supplies the filters;
// status lines are posted to feed.
func New(cfg config.Config, host *plugin.Host, feed *results.Feed) *Server {
	if feed == nil {
		feed = results.NewFeed(nil)
	}
	layout := imaging.RawLayout{
		HeaderOffset: cfg.Raw.HeaderOffset,
		Width:        cfg.Raw.Width,
		Height:       cfg.Raw.Height,
	}
	return &Server{
		cfg:     cfg,
		session: session.New(cfg, feed),
		host:    host,
		loader:  imaging.NewLoader(layout, cfg.Raw.Extensions),
		feed:    feed,
	}
}

// EnableNotifications makes Serve forward every new results-feed line to
// the client as a notifications/message log entry.
func (s *Server) EnableNotifications(on bool) { s.notify = on }

// Session returns the session the server drives.
func (s *Server) Session() *session.Session { return s.session }

// Close ends the session and releases the plugin host.
func (s *Server) Close() error {
	s.session.Close()
	s.loader.Clear()
	return s.host.Close()
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to
// w until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			slog.Warn("failed to parse request", "err", err)
			resp := s.errorResponse(nil, -32700, "Parse error", err.Error())
			if err := encoder.Encode(resp); err != nil {
				slog.Error("failed to encode response", "err", err)
			}
			continue
		}

		seen := s.feed.Len()
		resp := s.handleRequest(&req)
		if s.notify {
			for _, n := range s.feedNotifications(seen) {
				if err := encoder.Encode(n); err != nil {
					slog.Error("failed to encode notification", "err", err)
				}
			}
		}
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				slog.Error("failed to encode response", "err", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	slog.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "radial-viewer",
				"version": Version,
			},
		},
	}
}

// feedNotifications wraps the feed lines posted after the first n.
func (s *Server) feedNotifications(n int) []MCPNotification {
	lines := s.feed.Since(n)
	out := make([]MCPNotification, len(lines))
	for i, line := range lines {
		out[i] = MCPNotification{
			JSONRPC: "2.0",
			Method:  "notifications/message",
			Params: map[string]interface{}{
				"level":  "info",
				"logger": "results",
				"data":   line,
			},
		}
	}
	return out
}
