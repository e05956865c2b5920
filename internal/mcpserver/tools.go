package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/engagement"
	"github.com/alexanderramin/neuralplan/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatusTool handles the engagement_status MCP tool.
type StatusTool struct {
	engagement service.EngagementService
}

func NewStatusTool(e service.EngagementService) *StatusTool {
	return &StatusTool{engagement: e}
}

// Definition returns the MCP tool definition for engagement_status.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("engagement_status",
		mcp.WithDescription("Show the current streak, focus totals, burnout load, median start time and next badge."),
	)
}

// Handle processes the engagement_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := t.engagement.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read status: %v", err)), nil
	}
	s := v.Stats

	var sb strings.Builder
	sb.WriteString("## Engagement\n\n")
	sb.WriteString(fmt.Sprintf("- **Current streak**: %d days (best %d)\n", s.CurrentStreak, s.HighestStreak))
	sb.WriteString(fmt.Sprintf("- **Plans generated**: %d\n", s.TotalPlansGenerated))
	sb.WriteString(fmt.Sprintf("- **Focus minutes**: %d\n", s.TotalFocusMinutes))
	sb.WriteString(fmt.Sprintf("- **Burnout load**: %.0f%% (%s)\n", v.LoadIndex, loadLabel(v.LoadLevel)))
	if v.MedianEntry != nil {
		sb.WriteString(fmt.Sprintf("- **Median start time**: %s\n", v.MedianEntry.Label))
	}
	if s.NeuralProfile != nil {
		sb.WriteString(fmt.Sprintf("- **Profile**: %s (%s)\n", s.NeuralProfile.PrimaryType, s.NeuralProfile.Context))
	} else {
		sb.WriteString("- **Profile**: not calibrated (onboarding)\n")
	}
	if v.NextBadge != nil {
		sb.WriteString(fmt.Sprintf("- **Next badge**: %s in %d days\n", v.NextBadge.Badge.Name, v.NextBadge.DaysLeft))
	}

	active := 0
	for _, d := range v.Heatmap {
		if d.Active {
			active++
		}
	}
	if len(v.Heatmap) > 0 {
		sb.WriteString(fmt.Sprintf("- **Active days**: %d of the last %d\n", active, len(v.Heatmap)))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func loadLabel(l engagement.LoadLevel) string {
	return strings.ReplaceAll(string(l), "_", " ")
}

// FocusLogTool handles the focus_log MCP tool.
type FocusLogTool struct {
	engagement service.EngagementService
}

func NewFocusLogTool(e service.EngagementService) *FocusLogTool {
	return &FocusLogTool{engagement: e}
}

// Definition returns the MCP tool definition for focus_log.
func (t *FocusLogTool) Definition() mcp.Tool {
	return mcp.NewTool("focus_log",
		mcp.WithDescription("Credit a completed focus block. Only call this after the block was actually finished."),
		mcp.WithNumber("minutes",
			mcp.Required(),
			mcp.Min(1),
			mcp.Max(domain.MaxFocusMinutes),
			mcp.Description("Whole minutes of completed focus"),
		),
	)
}

// Handle processes the focus_log tool call.
func (t *FocusLogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["minutes"].(float64)
	if !ok {
		return mcp.NewToolResultError("minutes is required and must be a number"), nil
	}
	if raw != math.Trunc(raw) || raw <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("minutes must be a positive whole number, got %v", raw)), nil
	}
	if raw > domain.MaxFocusMinutes {
		return mcp.NewToolResultError(fmt.Sprintf("minutes must be at most %d, got %v", domain.MaxFocusMinutes, raw)), nil
	}

	stats, err := t.engagement.LogFocus(ctx, int(raw))
	if errors.Is(err, engagement.ErrInvalidMinutes) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to log focus: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Logged %d minutes. Total focus: %d minutes. Streak: %d days.",
		int(raw), stats.TotalFocusMinutes, stats.CurrentStreak)), nil
}

// BadgesTool handles the badges_list MCP tool.
type BadgesTool struct {
	engagement service.EngagementService
}

func NewBadgesTool(e service.EngagementService) *BadgesTool {
	return &BadgesTool{engagement: e}
}

// Definition returns the MCP tool definition for badges_list.
func (t *BadgesTool) Definition() mcp.Tool {
	return mcp.NewTool("badges_list",
		mcp.WithDescription("List every streak badge with its requirement and whether it is unlocked."),
	)
}

// Handle processes the badges_list tool call.
func (t *BadgesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	badges, err := t.engagement.Badges(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list badges: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## Badges\n\n")
	for _, b := range badges {
		mark := "[ ]"
		if b.Unlocked {
			mark = "[x]"
		}
		sb.WriteString(fmt.Sprintf("- %s %s **%s** (%d days): %s\n", mark, b.Icon, b.Name, b.Requirement, b.Description))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
