// Package domain defines MCP tool and resource surfaces for timers.
package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
	"github.com/louisbranch/tempo/internal/platform/locale"
	timerdomain "github.com/louisbranch/tempo/internal/timer/domain"
	"github.com/louisbranch/tempo/internal/timer/rowcodec"
	"github.com/louisbranch/tempo/internal/timer/service"
)

const toolTimeout = 5 * time.Second

// StepInput represents one step in a timer creation request.
type StepInput struct {
	OrderIndex      int    `json:"order_index" jsonschema:"position key within the timer"`
	Title           string `json:"title" jsonschema:"step title"`
	DurationSeconds int    `json:"duration_seconds" jsonschema:"duration in seconds, at least 1"`
	Repetitions     int    `json:"repetitions,omitempty" jsonschema:"repetition count, defaults to 1"`
	Notes           string `json:"notes,omitempty" jsonschema:"optional notes"`
}

// TimerCreateInput represents the MCP tool input for timer creation.
type TimerCreateInput struct {
	Name        string      `json:"name" jsonschema:"timer name"`
	Description string      `json:"description,omitempty" jsonschema:"optional description"`
	Steps       []StepInput `json:"steps,omitempty" jsonschema:"initial steps"`
}

// TimerCreateResult represents the MCP tool output for timer creation.
type TimerCreateResult struct {
	ID                   string `json:"id" jsonschema:"timer identifier"`
	Name                 string `json:"name" jsonschema:"timer name"`
	StepCount            int    `json:"step_count" jsonschema:"number of steps"`
	TotalDurationSeconds int    `json:"total_duration_seconds" jsonschema:"sum of step durations times repetitions"`
}

// TimerImportInput represents the MCP tool input for batch import.
type TimerImportInput struct {
	CSV string `json:"csv" jsonschema:"CSV text in the timer exchange format"`
}

// TimerImportResult represents the MCP tool output for batch import.
type TimerImportResult struct {
	CreatedIDs []string `json:"created_ids" jsonschema:"identifiers of imported timers"`
	Errors     []string `json:"errors,omitempty" jsonschema:"row and group level failures"`
}

// TimerExportInput represents the MCP tool input for export.
type TimerExportInput struct {
	TimerID string `json:"timer_id" jsonschema:"timer identifier"`
}

// TimerExportResult represents the MCP tool output for export.
type TimerExportResult struct {
	CSV string `json:"csv" jsonschema:"CSV text in the timer exchange format"`
}

// TimerListEntry represents one timer in the listing resource payload.
type TimerListEntry struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	StepCount            int    `json:"step_count"`
	TotalDurationSeconds int    `json:"total_duration_seconds"`
	CreatedAt            string `json:"created_at"`
}

// TimerListPayload represents the MCP resource payload for timer listings.
type TimerListPayload struct {
	Timers []TimerListEntry `json:"timers"`
}

// TimerCreateTool defines the MCP tool schema for creating timers.
func TimerCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timer_create",
		Description: "Creates an interval timer with ordered steps",
	}
}

// TimerImportTool defines the MCP tool schema for batch import.
func TimerImportTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timer_import",
		Description: "Imports one or more timers from CSV rows; bad rows are reported, not fatal",
	}
}

// TimerExportTool defines the MCP tool schema for export.
func TimerExportTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timer_export",
		Description: "Exports a timer as CSV rows, one row per step",
	}
}

// TimerListResource defines the MCP resource for timer listings.
func TimerListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "timer_list",
		Title:       "Timers",
		Description: "Readable listing of the owner's timers",
		MIMEType:    "application/json",
		URI:         "timers://list",
	}
}

// TimerCreateHandler executes a timer creation request.
func TimerCreateHandler(svc *service.Service, ownerID string) mcp.ToolHandlerFor[TimerCreateInput, TimerCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TimerCreateInput) (*mcp.CallToolResult, TimerCreateResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, toolTimeout)
		defer cancel()

		createInput := timerdomain.CreateTimerInput{
			Name:        input.Name,
			Description: input.Description,
		}
		for _, step := range input.Steps {
			createInput.Steps = append(createInput.Steps, timerdomain.StepInput{
				OrderIndex:      step.OrderIndex,
				Title:           step.Title,
				DurationSeconds: step.DurationSeconds,
				Repetitions:     step.Repetitions,
				Notes:           step.Notes,
			})
		}

		timer, err := svc.CreateTimer(runCtx, ownerID, createInput)
		if err != nil {
			return nil, TimerCreateResult{}, fmt.Errorf("timer create failed: %s",
				apperrors.Localize(err, locale.Default()))
		}

		return nil, TimerCreateResult{
			ID:                   timer.ID,
			Name:                 timer.Name,
			StepCount:            len(timer.Steps),
			TotalDurationSeconds: timer.TotalDurationSeconds(),
		}, nil
	}
}

// TimerImportHandler executes a batch import request.
func TimerImportHandler(svc *service.Service, ownerID string) mcp.ToolHandlerFor[TimerImportInput, TimerImportResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TimerImportInput) (*mcp.CallToolResult, TimerImportResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, toolTimeout)
		defer cancel()

		records, err := rowcodec.ReadCSV(strings.NewReader(input.CSV))
		if err != nil {
			return nil, TimerImportResult{}, fmt.Errorf("csv is not readable: %w", err)
		}

		result, err := svc.ImportBatch(runCtx, ownerID, records)
		if err != nil {
			return nil, TimerImportResult{}, fmt.Errorf("timer import failed: %w", err)
		}

		out := TimerImportResult{}
		for _, timer := range result.Created {
			out.CreatedIDs = append(out.CreatedIDs, timer.ID)
		}
		for _, rowErr := range result.RowErrors {
			out.Errors = append(out.Errors, apperrors.Localize(rowErr.Err, locale.Default()))
		}
		for _, groupErr := range result.GroupErrors {
			out.Errors = append(out.Errors, apperrors.Localize(groupErr.Err, locale.Default()))
		}
		return nil, out, nil
	}
}

// TimerExportHandler executes an export request.
func TimerExportHandler(svc *service.Service, ownerID string) mcp.ToolHandlerFor[TimerExportInput, TimerExportResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TimerExportInput) (*mcp.CallToolResult, TimerExportResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, toolTimeout)
		defer cancel()

		rows, err := svc.ExportTimer(runCtx, ownerID, input.TimerID)
		if err != nil {
			return nil, TimerExportResult{}, fmt.Errorf("timer export failed: %s",
				apperrors.Localize(err, locale.Default()))
		}

		var sb strings.Builder
		if err := rowcodec.WriteCSV(&sb, rows); err != nil {
			return nil, TimerExportResult{}, fmt.Errorf("write csv: %w", err)
		}
		return nil, TimerExportResult{CSV: sb.String()}, nil
	}
}

// TimerListResourceHandler returns a readable timer listing resource.
func TimerListResourceHandler(svc *service.Service, ownerID string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if svc == nil {
			return nil, fmt.Errorf("timer service is not configured")
		}

		uri := TimerListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		runCtx, cancel := context.WithTimeout(ctx, toolTimeout)
		defer cancel()

		listing, err := svc.ListTimers(runCtx, ownerID, service.ListTimersRequest{})
		if err != nil {
			return nil, fmt.Errorf("timer list failed: %w", err)
		}

		payload := TimerListPayload{}
		for _, timer := range listing.Timers {
			payload.Timers = append(payload.Timers, TimerListEntry{
				ID:                   timer.ID,
				Name:                 timer.Name,
				Description:          timer.Description,
				StepCount:            len(timer.Steps),
				TotalDurationSeconds: timer.TotalDurationSeconds(),
				CreatedAt:            timer.CreatedAt.Format(time.RFC3339),
			})
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal timer list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
