package tools

import (
	"bytes"
	"context"
	"fmt"
	"github.com/fernandosanchezjr/devsurvey/config"
	"github.com/fernandosanchezjr/devsurvey/dataset"
	"github.com/fernandosanchezjr/devsurvey/report"
	"github.com/fernandosanchezjr/devsurvey/survey"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"strings"
)

const CompareTopicTool = "compare_topic"

// Asker is satisfied by *dataset.Asker.
type Asker interface {
	Ask(ctx context.Context, selection *dataset.Selection) (*survey.ChartData, error)
}

// Register registers all tools with the MCP server.
func Register(s *server.MCPServer, cfg *config.Config, asker Asker) {
	s.AddTool(NewCompareTopicTool(cfg), CompareTopicHandler(cfg, asker))
}

func topicNames(cfg *config.Config) string {
	names := make([]string, len(cfg.Topics))
	for pos, topic := range cfg.Topics {
		names[pos] = topic.Name
	}
	return strings.Join(names, ", ")
}

func NewCompareTopicTool(cfg *config.Config) mcp.Tool {
	options := []mcp.ToolOption{
		mcp.WithDescription("Compares how a demographic group answered a developer survey question " +
			"with how all respondents answered it. Returns the group size and, per answer, the share " +
			"of the group and of all respondents that chose it."),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("The survey question to compare. One of: "+topicNames(cfg)),
		),
	}
	for _, demographic := range cfg.Demographics {
		description := fmt.Sprintf("Only count respondents whose %s is exactly this value", demographic.Title())
		if len(demographic.Options) != 0 {
			description += ". One of: " + strings.Join(demographic.Options, ", ")
		}
		options = append(options, mcp.WithString(demographic.Name, mcp.Description(description)))
	}
	return mcp.NewTool(CompareTopicTool, options...)
}

func CompareTopicHandler(cfg *config.Config, asker Asker) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		topicName, ok := request.Params.Arguments["topic"].(string)
		if !ok || topicName == "" {
			return newToolResultError("topic is required"), nil
		}
		topic, found := cfg.FindTopic(topicName)
		if !found {
			return newToolResultError(fmt.Sprintf("unknown topic %q, expected one of: %s",
				topicName, topicNames(cfg))), nil
		}
		selection := dataset.NewSelection(topic.Name)
		for _, demographic := range cfg.Demographics {
			if value, ok := request.Params.Arguments[demographic.Name].(string); ok && value != "" {
				selection.Set(demographic.Name, value)
			}
		}
		chartData, err := asker.Ask(ctx, selection)
		if err != nil {
			return newToolResultError(fmt.Sprintf("could not load data: %v", err)), nil
		}
		var buf bytes.Buffer
		if err := report.Write(&buf, topic.Title(), chartData); err != nil {
			return newToolResultError(fmt.Sprintf("failed to format result: %v", err)), nil
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

func newToolResultError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: message,
			},
		},
		IsError: true,
	}
}
