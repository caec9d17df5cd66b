package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/ironsheep/radial-viewer/internal/analysis"
	"github.com/ironsheep/radial-viewer/internal/imaging"
	"github.com/ironsheep/radial-viewer/internal/results"
	"github.com/ironsheep/radial-viewer/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "radial_sweep").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := s.callSafely(params.Name, func() (interface{}, error) {
		return s.executeTool(params.Name, params.Arguments)
	})
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// callSafely runs one tool call, turning a panic into a tool error so the
// server keeps serving.
func (s *Server) callSafely(name string, call func() (interface{}, error)) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tool panicked", "tool", name, "panic", r)
			result, err = nil, fmt.Errorf("tool %s failed: %v", name, r)
		}
	}()
	return call()
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Document
	case "image_load":
		return s.handleImageLoad(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_view":
		return s.handleImageView(args)

	// Zoom and selection
	case "image_zoom":
		return s.handleImageZoom(args)
	case "image_pointer":
		return s.handleImagePointer(args)
	case "image_select":
		return s.handleImageSelect(args)

	// Clipboard
	case "image_copy":
		return s.editResult(s.session.Copy())
	case "image_cut":
		return s.editResult(s.session.Cut())
	case "image_paste":
		return s.handleImagePaste(args)

	// Transforms
	case "image_rotate":
		return s.editResult(s.session.Rotate90())
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "image_undo":
		return s.handleImageUndo()

	// Inspection
	case "image_inspect":
		return s.handleImageInspect(args)
	case "image_histogram":
		return s.handleImageHistogram(args)

	// Radial profiling
	case "radial_center":
		return s.handleRadialCenter(args)
	case "radial_find_center":
		return s.handleRadialFindCenter(args)
	case "radial_profile":
		return s.handleRadialProfile(args)
	case "radial_sweep":
		return s.handleRadialSweep(args)

	// Filters
	case "filter_list":
		return map[string]interface{}{"filters": s.host.Names()}, nil
	case "filter_apply":
		return s.handleFilterApply(args)
	case "filter_load":
		return s.handleFilterLoad(args)

	case "results_feed":
		return s.handleResultsFeed(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// rect is a rectangle as reported to clients.
type rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func toRect(r image.Rectangle) *rect {
	if r.Empty() {
		return nil
	}
	return &rect{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// DocumentState summarizes the session after an operation.
type DocumentState struct {
	Name          string            `json:"name,omitempty"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Zoom          session.ZoomState `json:"zoom"`
	DisplayWidth  int               `json:"display_width"`
	DisplayHeight int               `json:"display_height"`
	Selection     *rect             `json:"selection,omitempty"`
	ROICount      int               `json:"roi_count"`
	UndoSteps     int               `json:"undo_steps"`
	ClipboardSize *rect             `json:"clipboard,omitempty"`
}

func (s *Server) documentState() *DocumentState {
	st := &DocumentState{
		Name:      s.session.Name(),
		Zoom:      s.session.Zoom(),
		Selection: toRect(s.session.Selection()),
		ROICount:  len(s.session.ROIs()),
		UndoSteps: s.session.HistoryLen(),
	}
	if img := s.session.Image(); img != nil {
		st.Width, st.Height = img.Bounds().Dx(), img.Bounds().Dy()
	}
	st.DisplayWidth, st.DisplayHeight = s.session.DisplaySize()
	if clip := s.session.Clipboard(); clip != nil {
		st.ClipboardSize = toRect(clip.Bounds())
	}
	return st
}

// editResult reports the document state after a session edit.
func (s *Server) editResult(err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return s.documentState(), nil
}

// === Document Handlers ===

type imageLoadArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Reload {
		s.loader.Evict(a.Path)
	}
	img, err := s.loader.Load(a.Path)
	if err != nil {
		return nil, err
	}
	s.session.Load(a.Path, img)
	return s.documentState(), nil
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.loader.Info(a.Path)
}

type imageViewArgs struct {
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates bool   `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
	ROIColor        string `json:"roi_color"`
	SelectionColor  string `json:"selection_color"`
}

func (s *Server) handleImageView(args json.RawMessage) (interface{}, error) {
	var a imageViewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := imaging.ViewOptions{
		Zoom:            s.session.Zoom().Factor,
		ROIs:            s.session.ROIs(),
		ROIColor:        a.ROIColor,
		Selection:       s.session.Selection(),
		SelectionColor:  a.SelectionColor,
		GridSpacing:     a.GridSpacing,
		ShowCoordinates: a.ShowCoordinates,
		GridColor:       a.GridColor,
	}

	var result *imaging.RenderResult
	err := s.session.View(func(img *image.NRGBA) error {
		var err error
		result, err = imaging.RenderView(img, opts)
		return err
	})
	return result, err
}

// === Zoom and Selection Handlers ===

type imageZoomArgs struct {
	Action        string `json:"action"`
	DisplayWidth  int    `json:"display_width"`
	DisplayHeight int    `json:"display_height"`
}

func (s *Server) handleImageZoom(args json.RawMessage) (interface{}, error) {
	var a imageZoomArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	if a.DisplayWidth != 0 || a.DisplayHeight != 0 {
		if err := s.session.SetDisplaySize(a.DisplayWidth, a.DisplayHeight); err != nil {
			return nil, err
		}
	}

	switch a.Action {
	case "in":
		s.session.ZoomIn()
	case "out":
		s.session.ZoomOut()
	case "fit":
		s.session.ZoomFit()
	case "status", "":
	default:
		return nil, fmt.Errorf("unknown zoom action: %s", a.Action)
	}
	return s.documentState(), nil
}

type imagePointerArgs struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// PointerResult reports the tracker after a pointer event.
type PointerResult struct {
	State     string `json:"state"`
	Live      *rect  `json:"live,omitempty"`
	Selection *rect  `json:"selection,omitempty"`
	Added     bool   `json:"added"`
	ROICount  int    `json:"roi_count"`
}

func (s *Server) handleImagePointer(args json.RawMessage) (interface{}, error) {
	var a imagePointerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p := image.Pt(a.X, a.Y)

	var res PointerResult
	switch a.Action {
	case "press":
		if err := s.session.Press(p); err != nil {
			return nil, err
		}
	case "move":
		if _, err := s.session.Move(p); err != nil {
			return nil, err
		}
	case "release":
		_, ok, err := s.session.Release(p)
		if err != nil {
			return nil, err
		}
		res.Added = ok
	case "cancel":
		s.session.CancelDrag()
	default:
		return nil, fmt.Errorf("unknown pointer action: %s", a.Action)
	}

	live, dragging := s.session.Dragging()
	res.State = session.Idle.String()
	if dragging {
		res.State = session.Dragging.String()
		res.Live = toRect(live)
	}
	res.Selection = toRect(s.session.Selection())
	res.ROICount = len(s.session.ROIs())
	return res, nil
}

type imageSelectArgs struct {
	X1     *int   `json:"x1"`
	Y1     *int   `json:"y1"`
	X2     *int   `json:"x2"`
	Y2     *int   `json:"y2"`
	Region string `json:"region"`
	Clear  bool   `json:"clear"`
}

// rectangle returns the coordinates as a rectangle; ok is false when none
// of them were given.
func (a imageSelectArgs) rectangle() (image.Rectangle, bool, error) {
	given := 0
	for _, v := range []*int{a.X1, a.Y1, a.X2, a.Y2} {
		if v != nil {
			given++
		}
	}
	switch given {
	case 0:
		return image.Rectangle{}, false, nil
	case 4:
		return image.Rectangle{Min: image.Pt(*a.X1, *a.Y1), Max: image.Pt(*a.X2, *a.Y2)}, true, nil
	}
	return image.Rectangle{}, false, fmt.Errorf("x1, y1, x2 and y2 must be given together")
}

func (s *Server) handleImageSelect(args json.RawMessage) (interface{}, error) {
	var a imageSelectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	if a.Clear {
		s.session.ClearSelection()
		return s.documentState(), nil
	}

	r, ok, err := a.rectangle()
	if err != nil {
		return nil, err
	}
	if !ok {
		if a.Region == "" {
			return nil, fmt.Errorf("either coordinates or region is required")
		}
		img := s.session.Image()
		if img == nil {
			return nil, session.ErrNoImage
		}
		if r, err = imaging.NamedRegion(img.Bounds(), a.Region); err != nil {
			return nil, err
		}
	}

	if _, err := s.session.Select(r); err != nil {
		return nil, err
	}
	return s.documentState(), nil
}

// === Edit Handlers ===

type imagePasteArgs struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Mode string `json:"mode"`
}

func (s *Server) handleImagePaste(args json.RawMessage) (interface{}, error) {
	var a imagePasteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mode, err := imaging.ParseBlendMode(a.Mode)
	if err != nil {
		return nil, err
	}
	return s.editResult(s.session.Paste(image.Pt(a.X, a.Y), mode))
}

type imageFlipArgs struct {
	Direction string `json:"direction"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	switch strings.ToLower(a.Direction) {
	case "horizontal", "h":
		return s.editResult(s.session.FlipHorizontal())
	case "vertical", "v":
		return s.editResult(s.session.FlipVertical())
	}
	return nil, fmt.Errorf("unknown flip direction: %q", a.Direction)
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageSelectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, ok, err := a.rectangle()
	if err != nil {
		return nil, err
	}
	if !ok {
		return s.editResult(s.session.CropSelection())
	}
	return s.editResult(s.session.Crop(r))
}

type imageResizeArgs struct {
	Size string `json:"size"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.editResult(s.session.Resize(a.Size))
}

// UndoResult reports whether an undo step was taken.
type UndoResult struct {
	Undone   bool           `json:"undone"`
	Message  string         `json:"message,omitempty"`
	Document *DocumentState `json:"document"`
}

func (s *Server) handleImageUndo() (interface{}, error) {
	res := UndoResult{Undone: s.session.Undo()}
	if !res.Undone {
		res.Message = "nothing to undo"
	}
	res.Document = s.documentState()
	return res, nil
}

// === Inspection Handlers ===

type imageInspectArgs struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Space string `json:"space"`
}

// InspectResult combines a pixel sample with its offset from the
// profiling centre.
type InspectResult struct {
	*imaging.PixelSample
	Center     analysis.Point `json:"center"`
	FromCenter imaging.Offset `json:"from_center"`
}

func (s *Server) handleImageInspect(args json.RawMessage) (interface{}, error) {
	var a imageInspectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p := image.Pt(a.X, a.Y)
	switch a.Space {
	case "", "image":
	case "display":
		p = s.session.ToImage(p)
	default:
		return nil, fmt.Errorf("unknown coordinate space: %s", a.Space)
	}

	var res InspectResult
	err := s.session.View(func(img *image.NRGBA) error {
		sample, err := imaging.SamplePixel(img, p.X, p.Y)
		if err != nil {
			return err
		}
		c := s.centerFor(img, nil, nil)
		res = InspectResult{
			PixelSample: sample,
			Center:      c,
			FromCenter:  imaging.MeasureFrom(c.X, c.Y, p),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results.Postf(s.session.Sink(), "%s r=%.2f", res.PixelSample, res.FromCenter.Distance)
	return res, nil
}

type imageHistogramArgs struct {
	Normalized bool `json:"normalized"`
}

// HistogramResult is the luminance distribution of the current image.
type HistogramResult struct {
	Counts     analysis.Histogram `json:"counts"`
	Total      int                `json:"total"`
	PeakLevel  int                `json:"peak_level"`
	PeakCount  int                `json:"peak_count"`
	Normalized []float64          `json:"normalized,omitempty"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var h analysis.Histogram
	if err := s.session.View(func(img *image.NRGBA) error {
		h = analysis.ComputeHistogram(img)
		return nil
	}); err != nil {
		return nil, err
	}

	res := HistogramResult{Counts: h, Total: h.Total()}
	res.PeakLevel, res.PeakCount = h.Peak()
	if a.Normalized {
		res.Normalized = h.Normalized()
	}
	results.Postf(s.session.Sink(), "histogram: %d pixels, peak L=%d (%d)", res.Total, res.PeakLevel, res.PeakCount)
	return res, nil
}

// === Radial Profiling Handlers ===

// numText accepts a JSON number or string and keeps its text, so that
// sweep parameters typed by a user are validated in one place.
type numText string

func (n *numText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = numText(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected a number or string, got %s", data)
	}
	*n = numText(f.String())
	return nil
}

// centerFor returns the profiling centre for img: the explicit override
// when both coordinates are given, else the centre set with radial_center,
// else the image centre.
func (s *Server) centerFor(img *image.NRGBA, cx, cy *float64) analysis.Point {
	if cx != nil && cy != nil {
		return analysis.Point{X: *cx, Y: *cy}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.center != nil {
		return *s.center
	}
	return analysis.DefaultCenter(img.Bounds())
}

type radialCenterArgs struct {
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Reset bool     `json:"reset"`
}

// CenterResult reports the profiling centre.
type CenterResult struct {
	Center  analysis.Point `json:"center"`
	Default bool           `json:"default"`
}

func (s *Server) handleRadialCenter(args json.RawMessage) (interface{}, error) {
	var a radialCenterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	switch {
	case a.Reset:
		s.center = nil
	case a.X != nil && a.Y != nil:
		s.center = &analysis.Point{X: *a.X, Y: *a.Y}
	case a.X != nil || a.Y != nil:
		s.mu.Unlock()
		return nil, fmt.Errorf("x and y must be given together")
	}
	custom := s.center != nil
	s.mu.Unlock()

	var res CenterResult
	err := s.session.View(func(img *image.NRGBA) error {
		res = CenterResult{Center: s.centerFor(img, nil, nil), Default: !custom}
		return nil
	})
	if err != nil {
		return nil, err
	}
	results.Postf(s.session.Sink(), "centre (%.1f,%.1f)", res.Center.X, res.Center.Y)
	return res, nil
}

type radialFindCenterArgs struct {
	MinRadius int  `json:"min_radius"`
	MaxRadius int  `json:"max_radius"`
	Level     *int `json:"level"`
	Apply     bool `json:"apply"`
}

// FindCenterResult lists the rings found, best first.
type FindCenterResult struct {
	Rings   []analysis.Ring `json:"rings"`
	Applied bool            `json:"applied"`
}

func (s *Server) handleRadialFindCenter(args json.RawMessage) (interface{}, error) {
	var a radialFindCenterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	level := 128
	if a.Level != nil {
		level = *a.Level
	}
	if level < 1 || level > 255 {
		return nil, fmt.Errorf("level must be in [1,255], got %d", level)
	}
	search := analysis.RingSearch{MinRadius: a.MinRadius, MaxRadius: a.MaxRadius, Level: uint8(level)}

	var res FindCenterResult
	err := s.session.View(func(img *image.NRGBA) error {
		var err error
		res.Rings, err = analysis.FindRings(img, search)
		return err
	})
	if err != nil {
		return nil, err
	}
	if res.Rings == nil {
		res.Rings = []analysis.Ring{}
	}

	if len(res.Rings) == 0 {
		results.Postf(s.session.Sink(), "no ring found for R=%d..%d", a.MinRadius, a.MaxRadius)
		return res, nil
	}
	results.Postf(s.session.Sink(), "%s", res.Rings[0])
	if a.Apply {
		best := res.Rings[0].Center
		s.mu.Lock()
		s.center = &best
		s.mu.Unlock()
		res.Applied = true
		results.Postf(s.session.Sink(), "centre (%.1f,%.1f)", best.X, best.Y)
	}
	return res, nil
}

type radialProfileArgs struct {
	Radius int      `json:"radius"`
	CX     *float64 `json:"cx"`
	CY     *float64 `json:"cy"`
}

// ProfileResult is one circular average.
type ProfileResult struct {
	Center analysis.Point        `json:"center"`
	Sample analysis.RadialSample `json:"sample"`
}

func (s *Server) handleRadialProfile(args json.RawMessage) (interface{}, error) {
	var a radialProfileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var res ProfileResult
	err := s.session.View(func(img *image.NRGBA) error {
		res.Center = s.centerFor(img, a.CX, a.CY)
		var err error
		res.Sample, err = analysis.CircularAverage(img, res.Center, a.Radius)
		return err
	})
	if err != nil {
		return nil, err
	}
	results.Postf(s.session.Sink(), "%s", res.Sample)
	return res, nil
}

type radialSweepArgs struct {
	Min    numText  `json:"min"`
	Max    numText  `json:"max"`
	Step   numText  `json:"step"`
	CX     *float64 `json:"cx"`
	CY     *float64 `json:"cy"`
	Output string   `json:"output"`
}

// SweepResult is a radial profile with its summary.
type SweepResult struct {
	Center   analysis.Point       `json:"center"`
	Params   analysis.SweepParams `json:"params"`
	Summary  analysis.Summary     `json:"summary"`
	Profile  analysis.Profile     `json:"profile"`
	Exported string               `json:"exported,omitempty"`
}

func (s *Server) handleRadialSweep(args json.RawMessage) (interface{}, error) {
	var a radialSweepArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	params, err := analysis.ParseSweepParams(string(a.Min), string(a.Max), string(a.Step))
	if err != nil {
		return nil, err
	}

	res := SweepResult{Params: params}
	err = s.session.View(func(img *image.NRGBA) error {
		res.Center = s.centerFor(img, a.CX, a.CY)
		var err error
		res.Profile, err = analysis.Sweep(img, res.Center, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Summary = res.Profile.Summarize()
	results.Postf(s.session.Sink(), "%s", res.Summary)

	if a.Output != "" {
		if err := analysis.Export(a.Output, res.Profile, s.cfg.CSVPrecision); err != nil {
			return nil, err
		}
		res.Exported = a.Output
		results.Postf(s.session.Sink(), "exported %d rows to %s", len(res.Profile), a.Output)
	}
	return res, nil
}

// === Filter Handlers ===

type filterApplyArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleFilterApply(args json.RawMessage) (interface{}, error) {
	var a filterApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return s.editResult(s.session.ApplyFilter(s.host, a.Name))
}

type filterLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleFilterLoad(args json.RawMessage) (interface{}, error) {
	var a filterLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	name, err := s.host.Load(a.Path)
	if err != nil {
		return nil, err
	}
	results.Postf(s.session.Sink(), "filter %s loaded", name)
	return map[string]interface{}{"loaded": name, "filters": s.host.Names()}, nil
}

// === Results Handler ===

type resultsFeedArgs struct {
	Since int `json:"since"`
}

// FeedResult is a window of the results feed.
type FeedResult struct {
	Lines []string `json:"lines"`
	Next  int      `json:"next"`
}

func (s *Server) handleResultsFeed(args json.RawMessage) (interface{}, error) {
	var a resultsFeedArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Since < 0 {
		return nil, fmt.Errorf("since must be >= 0")
	}
	lines := s.feed.Since(a.Since)
	if lines == nil {
		lines = []string{}
	}
	return FeedResult{Lines: lines, Next: s.feed.Len()}, nil
}
