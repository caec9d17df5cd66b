package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func object(properties map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// numberOrString accepts the textual form the sweep parser expects as well
// as plain JSON numbers.
func numberOrString(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        []string{"integer", "string"},
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Document
		{
			Name:        "image_load",
			Description: "Load an image file and make it the current document. Files with a raw extension (.edf, .raw by default) are decoded with the legacy raw layout and converted to grey. The previous image stays undoable.",
			InputSchema: object(map[string]interface{}{
				"path":   prop("string", "Absolute path to the image file"),
				"reload": prop("boolean", "Re-read the file even if it was loaded before. Default false"),
			}, "path"),
		},
		{
			Name:        "image_info",
			Description: "Get dimensions, format, alpha presence and file size of an image file without changing the current document.",
			InputSchema: object(map[string]interface{}{
				"path": prop("string", "Absolute path to the image file"),
			}, "path"),
		},
		{
			Name:        "image_view",
			Description: "Render the current image at the current zoom with ROI and selection outlines, returned as base64-encoded PNG.",
			InputSchema: object(map[string]interface{}{
				"grid_spacing":     prop("integer", "Draw a coordinate grid every N image pixels. Default 0 (off)"),
				"show_coordinates": prop("boolean", "Label grid intersections. Default false"),
				"grid_color":       prop("string", "Hex color for grid lines. Default #FF000080"),
				"roi_color":        prop("string", "Hex color for ROI outlines. Default #00C8FF"),
				"selection_color":  prop("string", "Hex color for the selection outline. Default #FFFF00"),
			}),
		},

		// Zoom
		{
			Name:        "image_zoom",
			Description: "Change the display zoom: 'in' and 'out' step by the configured factor (1.2), 'fit' scales the image to the display area and follows display resizes.",
			InputSchema: object(map[string]interface{}{
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"in", "out", "fit", "status"},
					"description": "Zoom action",
				},
				"display_width":  prop("integer", "Optional new display width in pixels"),
				"display_height": prop("integer", "Optional new display height in pixels"),
			}, "action"),
		},

		// Selection
		{
			Name:        "image_pointer",
			Description: "Feed a pointer event in display coordinates to the selection tracker. press starts a drag, move updates the live rectangle, release finalizes it into the selection and ROI list.",
			InputSchema: object(map[string]interface{}{
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"press", "move", "release", "cancel"},
					"description": "Pointer event",
				},
				"x": prop("integer", "Display X coordinate"),
				"y": prop("integer", "Display Y coordinate"),
			}, "action"),
		},
		{
			Name:        "image_select",
			Description: "Select a rectangle in image coordinates, or a named region (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center, all). Use clear to drop the selection.",
			InputSchema: object(map[string]interface{}{
				"x1":     prop("integer", "Left edge X coordinate (0-based)"),
				"y1":     prop("integer", "Top edge Y coordinate (0-based)"),
				"x2":     prop("integer", "Right edge X coordinate (exclusive)"),
				"y2":     prop("integer", "Bottom edge Y coordinate (exclusive)"),
				"region": prop("string", "Named region instead of coordinates"),
				"clear":  prop("boolean", "Clear the current selection"),
			}),
		},

		// Clipboard
		{
			Name:        "image_copy",
			Description: "Copy the selected region to the clipboard.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "image_cut",
			Description: "Copy the selected region to the clipboard and erase it to the configured erase value.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "image_paste",
			Description: "Paste the clipboard with its top-left corner at (x, y). Pixels outside the image are dropped. Color channels combine with the chosen mode; alpha is kept.",
			InputSchema: object(map[string]interface{}{
				"x": prop("integer", "Destination X coordinate"),
				"y": prop("integer", "Destination Y coordinate"),
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"blend", "and", "or", "xor"},
					"description": "Channel combination. Default blend ((dst+src)/2)",
				},
			}, "x", "y"),
		},

		// Transforms
		{
			Name:        "image_rotate",
			Description: "Rotate the current image 90 degrees clockwise.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "image_flip",
			Description: "Mirror the current image.",
			InputSchema: object(map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"horizontal", "vertical"},
					"description": "Mirror axis",
				},
			}, "direction"),
		},
		{
			Name:        "image_crop",
			Description: "Crop the current image to a rectangle in image coordinates, or to the current selection when no coordinates are given. The rectangle must lie inside the image.",
			InputSchema: object(map[string]interface{}{
				"x1": prop("integer", "Left edge X coordinate (0-based)"),
				"y1": prop("integer", "Top edge Y coordinate (0-based)"),
				"x2": prop("integer", "Right edge X coordinate (exclusive)"),
				"y2": prop("integer", "Bottom edge Y coordinate (exclusive)"),
			}),
		},
		{
			Name:        "image_resize",
			Description: "Smooth-scale the current image to a new size given as \"W,H\".",
			InputSchema: object(map[string]interface{}{
				"size": prop("string", "Target size, e.g. \"1024,768\""),
			}, "size"),
		},
		{
			Name:        "image_undo",
			Description: "Restore the image as it was before the last edit.",
			InputSchema: object(map[string]interface{}{}),
		},

		// Inspection
		{
			Name:        "image_inspect",
			Description: "Get the color of a pixel (hex, RGBA, HSL, luminance) and its distance and angle from the profiling centre.",
			InputSchema: object(map[string]interface{}{
				"x": prop("integer", "X coordinate"),
				"y": prop("integer", "Y coordinate"),
				"space": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"image", "display"},
					"description": "Coordinate space of x and y. Default image",
				},
			}, "x", "y"),
		},
		{
			Name:        "image_histogram",
			Description: "Count the pixels of the current image per luminance level (0-255).",
			InputSchema: object(map[string]interface{}{
				"normalized": prop("boolean", "Also return counts scaled so the largest bucket is 1. Default false"),
			}),
		},

		// Radial profiling
		{
			Name:        "radial_center",
			Description: "Set the centre used by profiling and inspection, or reset it to the image centre.",
			InputSchema: object(map[string]interface{}{
				"x":     prop("number", "Centre X in image coordinates"),
				"y":     prop("number", "Centre Y in image coordinates"),
				"reset": prop("boolean", "Go back to the image centre (width/2, height/2)"),
			}),
		},
		{
			Name:        "radial_find_center",
			Description: "Locate bright rings by Hough voting and report their centres, best first. With apply, the best centre becomes the profiling centre.",
			InputSchema: object(map[string]interface{}{
				"min_radius": prop("integer", "Smallest ring radius to search (> 0)"),
				"max_radius": prop("integer", "Largest ring radius to search (>= min_radius)"),
				"level":      prop("integer", "Luminance (1-255) at or above which a pixel belongs to a ring. Default 128"),
				"apply":      prop("boolean", "Use the best ring's centre for profiling. Default false"),
			}, "min_radius", "max_radius"),
		},
		{
			Name:        "radial_profile",
			Description: "Average the luminance on a circle of the given radius around the profiling centre. Each sampled pixel counts once; pixels outside the image are skipped.",
			InputSchema: object(map[string]interface{}{
				"radius": prop("integer", "Circle radius in pixels (> 0)"),
				"cx":     prop("number", "Optional centre X overriding the profiling centre"),
				"cy":     prop("number", "Optional centre Y overriding the profiling centre"),
			}, "radius"),
		},
		{
			Name:        "radial_sweep",
			Description: "Profile every radius from min to max in step increments and optionally export the profile as CSV (R,avg,samples) or Parquet (.parquet extension).",
			InputSchema: object(map[string]interface{}{
				"min":    numberOrString("Smallest radius (>= 0)"),
				"max":    numberOrString("Largest radius (>= min)"),
				"step":   numberOrString("Radius increment (> 0)"),
				"cx":     prop("number", "Optional centre X overriding the profiling centre"),
				"cy":     prop("number", "Optional centre Y overriding the profiling centre"),
				"output": prop("string", "Optional export path"),
			}, "min", "max", "step"),
		},

		// Filters
		{
			Name:        "filter_list",
			Description: "List the available filters, builtin and loaded.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "filter_apply",
			Description: "Run a filter on the current image. The result is a new undoable step; a failing filter leaves the image untouched.",
			InputSchema: object(map[string]interface{}{
				"name": prop("string", "Filter name as listed by filter_list"),
			}, "name"),
		},
		{
			Name:        "filter_load",
			Description: "Load a filter module (Go plugin exporting Filter func(*image.NRGBA)) and register it under its file name.",
			InputSchema: object(map[string]interface{}{
				"path": prop("string", "Absolute path to the .so module"),
			}, "path"),
		},

		// Results
		{
			Name:        "results_feed",
			Description: "Read the results feed: status lines for loads, averages, sweeps, exports, pixel inspections, zoom and undo.",
			InputSchema: object(map[string]interface{}{
				"since": prop("integer", "Skip the first N lines. Default 0"),
			}),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
