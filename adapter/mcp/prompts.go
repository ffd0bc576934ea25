package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers guided study prompts.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_study_plan").
		Description("Plan today's study from due reviews, deadlines and the daily question goal.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Daily Study Plan",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me plan today's study. Please:

1. Read my dashboard from the studyflow://dashboard resource
2. List the reviews due today and any overdue or urgent deadlines
3. Check how far I am from my daily question target

Then suggest an order for today's work, starting with due reviews,
and estimate how many questions per topic I need to reach my goal.`,
						},
					},
				},
			}, nil
		})

	srv.Prompt("weekly_review").
		Description("Review the past week: trend, accuracy change, streak and goal progress.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Weekly Study Review",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Let's review my study week. Use the studyflow://dashboard and
studyflow://sessions resources and tell me:

- How this week's questions and accuracy compare with last week
- Whether the 14-day trend is up, down or stable
- Which subjects are behind and which deadlines are at risk
- Whether the completion forecast looks realistic

Finish with three concrete adjustments for next week.`,
						},
					},
				},
			}, nil
		})

	return nil
}
