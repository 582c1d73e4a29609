package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/scjournal/internal/core/db"
	"github.com/neilberkman/scjournal/internal/core/models"
)

var base = time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) (*db.DB, []string) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := db.New(tmpfile.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	a := models.NewSession(base, "Lorville", "Cutlass")
	a.AddActivity("Bounty hunting near Hurston")
	a.AddEarnings(15000, "VLRT bounty")
	a.End(base.Add(90 * time.Minute))

	b := models.NewSession(base.Add(24*time.Hour), "Area18", "Cutlass")
	b.AddExpense(500, "Fuel")
	b.End(base.Add(24*time.Hour + 45*time.Minute))

	c := models.NewSession(base.Add(48*time.Hour), "New Babbage", "Freelancer")

	var ids []string
	for _, s := range []*models.Session{a, b, c} {
		id, err := database.InsertSession(s)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return database, ids
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	var request mcp.CallToolRequest
	request.Params.Arguments = args
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

func TestGetStatistics(t *testing.T) {
	database, _ := setupDB(t)

	result := call(t, makeGetStatisticsHandler(database), nil)
	require.False(t, result.IsError)

	var got StatisticsResult
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &got))

	assert.Equal(t, 3, got.Statistics.TotalSessions)
	assert.Equal(t, "2h 15m", got.Statistics.TotalPlaytime)
	assert.Equal(t, "Cutlass", got.Statistics.MostUsedShip)
	assert.Equal(t, map[string]int{"Cutlass": 2, "Freelancer": 1}, got.Statistics.ShipUsage)
	assert.Equal(t, models.Totals{Earnings: 15000, Expenses: 500, NetProfit: 14500}, got.Totals)
}

func TestListSessions(t *testing.T) {
	database, ids := setupDB(t)

	result := call(t, makeListSessionsHandler(database), map[string]interface{}{"limit": 2})
	require.False(t, result.IsError)

	var got struct {
		Sessions []SessionEntry `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &got))

	require.Len(t, got.Sessions, 2)
	assert.Equal(t, ids[1], got.Sessions[0].SessionID)
	assert.Equal(t, ids[2], got.Sessions[1].SessionID)
	assert.Equal(t, "Freelancer", got.Sessions[1].Ship)
	assert.Nil(t, got.Sessions[1].EndTime)
	assert.Equal(t, -500.0, got.Sessions[0].NetProfit)

	all := call(t, makeListSessionsHandler(database), nil)
	require.NoError(t, json.Unmarshal([]byte(text(t, all)), &got))
	assert.Len(t, got.Sessions, 3)
}

func TestGetSession(t *testing.T) {
	database, ids := setupDB(t)

	result := call(t, makeGetSessionHandler(database), map[string]interface{}{"session_id": ids[0]})
	require.False(t, result.IsError)

	var got SessionEntry
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &got))
	assert.Equal(t, ids[0], got.SessionID)
	assert.Equal(t, "Session on 2025-05-01 19:00 (1h 30m) - Cutlass at Lorville", got.Summary)
	assert.Equal(t, []string{"Bounty hunting near Hurston", "Earned 15000.0 aUEC: VLRT bounty"}, got.Activities)
	assert.Equal(t, "2025-05-01T19:00:00Z", got.StartTime)

	missing := call(t, makeGetSessionHandler(database), map[string]interface{}{"session_id": "ZZZZ"})
	assert.True(t, missing.IsError)
}

func TestSearchActivities(t *testing.T) {
	database, ids := setupDB(t)

	result := call(t, makeSearchActivitiesHandler(database), map[string]interface{}{"query": "bounty"})
	require.False(t, result.IsError)

	var got struct {
		Results []struct {
			SessionID string `json:"session_id"`
			Activity  string `json:"activity"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &got))
	require.Len(t, got.Results, 2)
	for _, r := range got.Results {
		assert.Equal(t, ids[0], r.SessionID)
	}

	empty := call(t, makeSearchActivitiesHandler(database), map[string]interface{}{"query": ""})
	assert.True(t, empty.IsError)
}

func rpc(t *testing.T, s *server.MCPServer, id int, method string, params string) string {
	t.Helper()

	message := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":%q,"params":%s}`, id, method, params)
	response := s.HandleMessage(context.Background(), json.RawMessage(message))
	require.NotNil(t, response)

	out, err := json.Marshal(response)
	require.NoError(t, err)
	return string(out)
}

func TestServerDispatchesTools(t *testing.T) {
	database, ids := setupDB(t)
	s := NewServer(database)

	rpc(t, s, 1, "initialize", `{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}`)

	listed := rpc(t, s, 2, "tools/list", `{}`)
	for _, name := range []string{"list_sessions", "get_session", "get_statistics", "search_activities"} {
		assert.Contains(t, listed, `"`+name+`"`)
	}

	stats := rpc(t, s, 3, "tools/call", `{"name":"get_statistics","arguments":{}}`)
	assert.Contains(t, stats, "total_sessions")
	assert.Contains(t, stats, "Cutlass")

	session := rpc(t, s, 4, "tools/call", fmt.Sprintf(`{"name":"get_session","arguments":{"session_id":%q}}`, ids[2]))
	assert.Contains(t, session, "New Babbage")
}
