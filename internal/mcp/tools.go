// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Exposes ECI to ECEF conversion and history listing to AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	s.registerConvertTool()
	s.registerListConversionsTool()
}

// ConvertInput defines input for the eci_to_ecef tool.
type ConvertInput struct {
	Year   float64 `json:"year"`
	Month  float64 `json:"month"`
	Day    float64 `json:"day"`
	Hour   float64 `json:"hour"`
	Minute float64 `json:"minute"`
	Second float64 `json:"second"`
	X      float64 `json:"eci_x_km"`
	Y      float64 `json:"eci_y_km"`
	Z      float64 `json:"eci_z_km"`
	Model  *string `json:"model,omitempty"`
	Record bool    `json:"record,omitempty"`
}

// ConvertOutput defines output for the eci_to_ecef tool. The ECEF triple is
// the printed form, with y already negated.
type ConvertOutput struct {
	ID         string  `json:"id,omitempty"`
	Model      string  `json:"model"`
	X          float64 `json:"ecef_x_km"`
	Y          float64 `json:"ecef_y_km"`
	Z          float64 `json:"ecef_z_km"`
	GMST       float64 `json:"gmst_rad"`
	JulianDate float64 `json:"julian_date"`
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

func (s *Server) registerConvertTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "eci_to_ecef",
		Description: "Convert an ECI position vector (km) to ECEF at a UTC epoch using a GMST rotation about Z.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"year":     numberProp("UTC year"),
				"month":    numberProp("UTC month (1-12)"),
				"day":      numberProp("UTC day of month"),
				"hour":     numberProp("UTC hour"),
				"minute":   numberProp("UTC minute"),
				"second":   numberProp("UTC second, may be fractional"),
				"eci_x_km": numberProp("ECI x-component in km"),
				"eci_y_km": numberProp("ECI y-component in km"),
				"eci_z_km": numberProp("ECI z-component in km"),
				"model": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(frames.ModelLegacy), string(frames.ModelIAU82)},
					"description": "GMST model, defaults to the server's configured model",
				},
				"record": map[string]interface{}{
					"type":        "boolean",
					"description": "Store the conversion in history",
				},
			},
			"required": []string{"year", "month", "day", "hour", "minute", "second", "eci_x_km", "eci_y_km", "eci_z_km"},
		},
	}, s.handleConvert)
}

func (s *Server) handleConvert(_ context.Context, req *mcp.CallToolRequest, input ConvertInput) (*mcp.CallToolResult, ConvertOutput, error) {
	model := s.model
	if input.Model != nil {
		m, err := frames.ParseModel(*input.Model)
		if err != nil {
			return nil, ConvertOutput{}, err
		}
		model = m
	}

	epoch := models.Epoch{
		Year:   input.Year,
		Month:  input.Month,
		Day:    input.Day,
		Hour:   input.Hour,
		Minute: input.Minute,
		Second: input.Second,
	}
	eci := models.Vector3{X: input.X, Y: input.Y, Z: input.Z}

	res, err := frames.Convert(model, epoch, eci)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	out := res.Printed()
	output := ConvertOutput{
		Model:      string(res.Model),
		X:          out.X,
		Y:          out.Y,
		Z:          out.Z,
		GMST:       res.Angle.Radians,
		JulianDate: res.Angle.JulianDate,
	}

	if input.Record {
		c := models.NewConversion(string(res.Model), epoch, eci, out, res.Angle.Radians, res.Angle.JulianDate)
		if err := s.repo.CreateConversion(c); err != nil {
			return nil, ConvertOutput{}, fmt.Errorf("failed to record conversion: %w", err)
		}
		output.ID = c.ID.String()
	}

	s.logger.Debug("eci_to_ecef",
		zap.String("model", output.Model),
		zap.Float64("gmst_rad", output.GMST),
		zap.Bool("recorded", output.ID != ""))

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// ListConversionsInput defines input for the list_conversions tool.
type ListConversionsInput struct {
	Limit int `json:"limit,omitempty"`
}

// ConversionOutput is a recorded conversion.
type ConversionOutput struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	Epoch      models.Epoch   `json:"epoch"`
	ECI        models.Vector3 `json:"eci_km"`
	Output     models.Vector3 `json:"ecef_km"`
	GMST       float64        `json:"gmst_rad"`
	JulianDate float64        `json:"julian_date"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ListConversionsOutput defines output for the list_conversions tool.
type ListConversionsOutput struct {
	Conversions []ConversionOutput `json:"conversions"`
	Count       int                `json:"count"`
}

// defaultListLimit caps list_conversions when no limit is given.
const defaultListLimit = 20

func (s *Server) registerListConversionsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_conversions",
		Description: "List recorded ECI to ECEF conversions, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of conversions to return (default 20)",
				},
			},
		},
	}, s.handleListConversions)
}

func (s *Server) handleListConversions(_ context.Context, req *mcp.CallToolRequest, input ListConversionsInput) (*mcp.CallToolResult, ListConversionsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	output, err := s.listConversions(limit)
	if err != nil {
		return nil, ListConversionsOutput{}, err
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

func (s *Server) listConversions(limit int) (ListConversionsOutput, error) {
	conversions, err := s.repo.ListConversions(limit)
	if err != nil {
		return ListConversionsOutput{}, fmt.Errorf("failed to list conversions: %w", err)
	}

	outputs := make([]ConversionOutput, len(conversions))
	for i, c := range conversions {
		outputs[i] = ConversionOutput{
			ID:         c.ID.String(),
			Model:      c.Model,
			Epoch:      c.Epoch,
			ECI:        c.ECI,
			Output:     c.Output,
			GMST:       c.GMST,
			JulianDate: c.JulianDate,
			CreatedAt:  c.CreatedAt,
		}
	}

	return ListConversionsOutput{
		Conversions: outputs,
		Count:       len(outputs),
	}, nil
}
