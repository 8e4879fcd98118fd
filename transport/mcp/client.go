package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/history"
	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Chat Relay",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Chat Relay - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The relay hosts named chat rooms with live presence counts and an anonymous
one-to-one stranger pairing pool. These tools are read-only: they observe
rooms, history, and server load, but never send messages or join rooms.
Live traffic flows over WebSocket only.

AVAILABLE TOOLS:
- list_rooms: List live rooms with member counts
- room_info: Get one room's presence count
- recent_messages: Recent persisted messages for a room
- server_stats: Connection, room, and pairing counters
- register_user: Create a chat account`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all live rooms with their member counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "room_info",
		Description: "Get the presence count of one live room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room": map[string]interface{}{
					"type":        "string",
					"description": "Room name",
				},
			},
			Required: []string{"room"},
		},
	}, c.handleRoomInfo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "recent_messages",
		Description: "Get recent persisted messages for a room, oldest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room": map[string]interface{}{
					"type":        "string",
					"description": "Room name",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of messages to return",
				},
			},
			Required: []string{"room"},
		},
	}, c.handleRecentMessages)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Get connection, room, and pairing counters for the relay",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerStats)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "register_user",
		Description: "Create a chat account that can log in and connect over WebSocket",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Account name, 1-32 characters",
				},
				"password": map[string]interface{}{
					"type":        "string",
					"description": "Password, at least 6 characters",
				},
			},
			Required: []string{"username", "password"},
		},
	}, c.handleRegisterUser)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                 `json:"count"`
		Rooms []*service.RoomInfo `json:"rooms"`
	}

	err := c.apiCall("GET", "/api/rooms", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No live rooms."), nil
	}

	result := fmt.Sprintf("Live Rooms (%d):\n\n", response.Count)
	for _, room := range response.Rooms {
		result += fmt.Sprintf("- %s (%d %s)\n", room.Name, room.Members, plural(room.Members, "member"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRoomInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	room, _ := args["room"].(string)

	var info service.RoomInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", room), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Room: %s\nMembers: %d\n", info.Name, info.Members)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRecentMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	room, _ := args["room"].(string)

	path := fmt.Sprintf("/api/rooms/%s/messages", room)
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		path += fmt.Sprintf("?limit=%d", int(limit))
	}

	var response struct {
		Room     string            `json:"room"`
		Count    int               `json:"count"`
		Messages []history.Message `json:"messages"`
	}
	err := c.apiCall("GET", path, nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMessages(response.Room, response.Messages)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var stats service.Stats
	err := c.apiCall("GET", "/api/stats", nil, &stats)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatStats(&stats)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRegisterUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	username, _ := args["username"].(string)
	password, _ := args["password"].(string)

	body := map[string]string{
		"username": username,
		"password": password,
	}

	var response map[string]string
	err := c.apiCall("POST", "/api/register", body, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created account: %s\n", response["username"])
	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatMessages(room string, messages []history.Message) string {
	if len(messages) == 0 {
		return fmt.Sprintf("No messages in room %s.", room)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Messages in %s (%d):\n\n", room, len(messages)))
	for _, msg := range messages {
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n",
			msg.CreatedAt.Format("2006-01-02 15:04:05"), msg.Username, msg.Text))
	}
	return b.String()
}

func formatStats(stats *service.Stats) string {
	var b strings.Builder
	b.WriteString("Server Stats:\n\n")
	b.WriteString(fmt.Sprintf("Connections: %d\n", stats.Connections))
	b.WriteString(fmt.Sprintf("Live rooms: %d\n", stats.Rooms))
	b.WriteString(fmt.Sprintf("Waiting for a stranger: %d\n", stats.Waiting))
	b.WriteString(fmt.Sprintf("Active pairs: %d\n", stats.ActivePairs))
	b.WriteString(fmt.Sprintf("Uptime: %s\n", stats.Uptime))
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
