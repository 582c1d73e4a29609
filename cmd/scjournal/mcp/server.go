package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/neilberkman/scjournal/internal/core/db"
	"github.com/neilberkman/scjournal/internal/core/models"
	"github.com/neilberkman/scjournal/internal/core/search"
)

// ListSessionsArgs defines arguments for the list_sessions tool
type ListSessionsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Number of most recent sessions to return (default: all)"`
}

// GetSessionArgs defines arguments for the get_session tool
type GetSessionArgs struct {
	SessionID string `json:"session_id" jsonschema:"description=Session ID or unique prefix,required"`
}

// SearchActivitiesArgs defines arguments for the search_activities tool
type SearchActivitiesArgs struct {
	Query string `json:"query" jsonschema:"description=Search term to match against activity logs,required"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Max results to return (default: 20)"`
}

// SessionEntry is a session record together with its store ID
type SessionEntry struct {
	SessionID string `json:"session_id"`
	Summary   string `json:"summary"`
	models.Record
}

// StatisticsResult is returned by get_statistics
type StatisticsResult struct {
	Statistics models.Statistics `json:"statistics"`
	Totals     models.Totals     `json:"totals"`
}

// StartServer starts the MCP server on stdio
func StartServer(dbPath string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
	}()

	return server.ServeStdio(NewServer(database))
}

// NewServer registers the journal tools on a new MCP server
func NewServer(database *db.DB) *server.MCPServer {
	s := server.NewMCPServer(
		"SCJournal",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	listTool := mcp.NewTool("list_sessions",
		mcp.WithDescription("List logged Star Citizen play sessions in the order they were logged, most recent last"),
		mcp.WithNumber("limit",
			mcp.Description("Number of most recent sessions to return (default: all)")),
	)
	s.AddTool(listTool, makeListSessionsHandler(database))

	sessionTool := mcp.NewTool("get_session",
		mcp.WithDescription("Retrieve one play session with its full activity log, earnings and expenses"),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session ID or unique prefix")),
	)
	s.AddTool(sessionTool, makeGetSessionHandler(database))

	statsTool := mcp.NewTool("get_statistics",
		mcp.WithDescription("Journal statistics: total sessions, total playtime, most used ship, ship usage and money totals"),
	)
	s.AddTool(statsTool, makeGetStatisticsHandler(database))

	searchTool := mcp.NewTool("search_activities",
		mcp.WithDescription("Full-text search across every session's activity log"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term to match against activity logs")),
		mcp.WithNumber("limit",
			mcp.Description("Max results to return (default: 20)")),
	)
	s.AddTool(searchTool, makeSearchActivitiesHandler(database))

	return s
}

func decodeArgs(request mcp.CallToolRequest, v interface{}) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	if string(argsBytes) == "null" {
		return nil
	}
	return json.Unmarshal(argsBytes, v)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	resultJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func entry(stored db.StoredSession) SessionEntry {
	return SessionEntry{
		SessionID: stored.ID,
		Summary:   stored.Session.DescribeShort(),
		Record:    stored.Session.Record(),
	}
}

func makeListSessionsHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListSessionsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		sessions, err := database.ListSessions(args.Limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}

		entries := make([]SessionEntry, 0, len(sessions))
		for _, stored := range sessions {
			entries = append(entries, entry(stored))
		}

		return jsonResult(map[string]interface{}{
			"sessions": entries,
		})
	}
}

func makeGetSessionHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetSessionArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		stored, err := database.GetSession(args.SessionID)
		if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrAmbiguousID) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}

		return jsonResult(entry(*stored))
	}
}

func makeGetStatisticsHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		journal, err := database.LoadJournal()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load journal: %v", err)), nil
		}

		return jsonResult(StatisticsResult{
			Statistics: journal.Statistics(),
			Totals:     journal.Totals(),
		})
	}
}

func makeSearchActivitiesHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchActivitiesArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		results, err := search.Activities(database, args.Query, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if results == nil {
			results = []search.SearchResult{}
		}

		return jsonResult(map[string]interface{}{
			"results": results,
		})
	}
}
