// Package mcpserver exposes the remindkit client operations as MCP tools
// over stdio, so agent frontends can manage reminders.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/namuan/remindkit"
)

const (
	serverName    = "remindkit"
	serverVersion = "1.0.0"
)

// Server is the MCP server for reminder management.
type Server struct {
	mcpServer *server.MCPServer
	client    *remindkit.Client
	log       *zap.Logger
}

// NewServer creates an MCP server backed by the given remindkit client.
func NewServer(client *remindkit.Client, log *zap.Logger) *Server {
	s := &Server{
		client: client,
		log:    log,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Create a reminder with a title and optional due date, notes, URL, priority, flag and calendar"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("due_date", mcp.Description("Due date in RFC3339 format (e.g. 2025-01-15T09:00:00Z)")),
			mcp.WithString("notes", mcp.Description("Optional notes")),
			mcp.WithString("url", mcp.Description("Optional URL")),
			mcp.WithString("priority", mcp.Description("Priority: none, low, medium, high (default: none)")),
			mcp.WithBoolean("flagged", mcp.Description("Flag the reminder")),
			mcp.WithString("calendar_id", mcp.Description("Target calendar; default calendar when empty")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_reminder",
			mcp.WithDescription("Get a single reminder by its ID"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleGetReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List reminders with optional filters, combined with AND"),
			mcp.WithString("completed", mcp.Description("Filter by completion: true, false, or empty for all")),
			mcp.WithString("priority", mcp.Description("Filter by priority level: low, medium, high")),
			mcp.WithString("calendar_id", mcp.Description("Filter by calendar")),
			mcp.WithString("due_after", mcp.Description("Only reminders due at or after this RFC3339 time")),
			mcp.WithString("due_before", mcp.Description("Only reminders due at or before this RFC3339 time")),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("search_reminders",
			mcp.WithDescription("Search reminders whose title or notes contain the query (case-insensitive)"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		),
		s.handleSearchReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("next_reminder",
			mcp.WithDescription("Get the incomplete reminder with the nearest future due date"),
		),
		s.handleNextReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's fields; only supplied fields change"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("due_date", mcp.Description("New due date in RFC3339 format")),
			mcp.WithString("notes", mcp.Description("New notes")),
			mcp.WithString("url", mcp.Description("New URL")),
			mcp.WithString("priority", mcp.Description("New priority: none, low, medium, high")),
		),
		s.handleUpdateReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Mark a reminder as completed"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleCompleteReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("reopen_reminder",
			mcp.WithDescription("Mark a completed reminder as incomplete again"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleReopenReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDeleteReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_calendars",
			mcp.WithDescription("List all reminder calendars"),
		),
		s.handleListCalendars,
	)
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	create := remindkit.CreateReminderRequest{
		Title:      title,
		Notes:      req.GetString("notes", ""),
		URL:        req.GetString("url", ""),
		Flagged:    req.GetBool("flagged", false),
		CalendarID: req.GetString("calendar_id", ""),
	}

	if dueStr := req.GetString("due_date", ""); dueStr != "" {
		due, err := time.Parse(time.RFC3339, dueStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid due_date: %v (use RFC3339, e.g. 2025-01-15T09:00:00Z)", err)), nil
		}
		create.DueDate = &due
	}

	priority, err := remindkit.ParsePriority(req.GetString("priority", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	create.Priority = priority

	created, err := s.client.CreateReminder(ctx, create)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	s.log.Info("reminder created", zap.String("id", created.ID))
	return jsonResult(created), nil
}

func (s *Server) handleGetReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	r, err := s.client.GetReminderByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get reminder: %v", err)), nil
	}
	return jsonResult(r), nil
}

func (s *Server) handleListReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filter remindkit.Filter

	switch req.GetString("completed", "") {
	case "true":
		done := true
		filter.Completed = &done
	case "false":
		done := false
		filter.Completed = &done
	}

	if p := req.GetString("priority", ""); p != "" {
		priority, err := remindkit.ParsePriority(p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filter.Priority = &priority
	}

	filter.CalendarID = req.GetString("calendar_id", "")

	if after := req.GetString("due_after", ""); after != "" {
		t, err := time.Parse(time.RFC3339, after)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid due_after: %v", err)), nil
		}
		filter.DueAfter = &t
	}
	if before := req.GetString("due_before", ""); before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid due_before: %v", err)), nil
		}
		filter.DueBefore = &t
	}

	reminders, err := s.client.GetReminders(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	return jsonResult(reminders), nil
}

func (s *Server) handleSearchReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	reminders, err := s.client.SearchReminders(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to search reminders: %v", err)), nil
	}
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No reminders matched."), nil
	}
	return jsonResult(reminders), nil
}

func (s *Server) handleNextReminder(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	next, err := s.client.NextReminder(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get next reminder: %v", err)), nil
	}
	if next == nil {
		return mcp.NewToolResultText("No upcoming reminders."), nil
	}
	return jsonResult(next), nil
}

func (s *Server) handleUpdateReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	var upd remindkit.ReminderUpdate
	if title := req.GetString("title", ""); title != "" {
		upd.Title = &title
	}
	if notes := req.GetString("notes", ""); notes != "" {
		upd.Notes = &notes
	}
	if url := req.GetString("url", ""); url != "" {
		upd.URL = &url
	}
	if dueStr := req.GetString("due_date", ""); dueStr != "" {
		due, err := time.Parse(time.RFC3339, dueStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid due_date: %v", err)), nil
		}
		upd.DueDate = &due
	}
	if p := req.GetString("priority", ""); p != "" {
		priority, err := remindkit.ParsePriority(p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		upd.Priority = &priority
	}

	updated, err := s.client.UpdateReminder(ctx, id, upd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}
	return jsonResult(updated), nil
}

func (s *Server) handleCompleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if _, err := s.client.CompleteReminder(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete reminder: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s marked as completed.", id)), nil
}

func (s *Server) handleReopenReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if _, err := s.client.ReopenReminder(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to reopen reminder: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s reopened.", id)), nil
}

func (s *Server) handleDeleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if err := s.client.DeleteReminder(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted.", id)), nil
}

func (s *Server) handleListCalendars(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	calendars, err := s.client.Calendars().List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list calendars: %v", err)), nil
	}
	if len(calendars) == 0 {
		return mcp.NewToolResultText("No calendars found."), nil
	}
	return jsonResult(calendars), nil
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	output, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(output))
}
