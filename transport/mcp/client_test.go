package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/history"
	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"count": float64(1),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/rooms", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["count"] != expectedResponse["count"] {
		t.Errorf("Expected count %v, got %v", expectedResponse["count"], response["count"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/rooms", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/rooms", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "room not found: ghost"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/rooms/ghost", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}
	if !strings.Contains(err.Error(), "room not found") {
		t.Errorf("Expected API error message passed through, got: %v", err)
	}
}

func TestClient_listRooms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/api/rooms" {
			t.Errorf("Expected GET /api/rooms, got %s %s", r.Method, r.URL.Path)
		}

		resp := map[string]interface{}{
			"count": 2,
			"rooms": []*service.RoomInfo{
				{Name: "dev", Members: 1},
				{Name: "general", Members: 3},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "list_rooms",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleListRooms(ctx, request)
	if err != nil {
		t.Fatalf("listRooms failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "general (3 members)") {
		t.Errorf("Expected room listing in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "dev (1 member)") {
		t.Errorf("Expected singular member count, got: %s", resultStr.Text)
	}
}

func TestClient_recentMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms/general/messages" {
			t.Errorf("Expected /api/rooms/general/messages, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("Expected limit=5, got %q", r.URL.Query().Get("limit"))
		}

		resp := map[string]interface{}{
			"room":  "general",
			"count": 1,
			"messages": []history.Message{
				{
					ID:        "m1",
					Room:      "general",
					Username:  "alice",
					Text:      "hello",
					CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "recent_messages",
			Arguments: map[string]interface{}{
				"room":  "general",
				"limit": float64(5),
			},
		},
	}

	result, err := client.handleRecentMessages(ctx, request)
	if err != nil {
		t.Fatalf("recentMessages failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "alice: hello") {
		t.Errorf("Expected message in result, got: %s", resultStr.Text)
	}
}

func TestClient_serverStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stats" {
			t.Errorf("Expected /api/stats, got %s", r.URL.Path)
		}
		resp := service.Stats{Connections: 4, Rooms: 2, Waiting: 1, ActivePairs: 1, Uptime: "2m0s"}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "server_stats",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleServerStats(ctx, request)
	if err != nil {
		t.Fatalf("serverStats failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	for _, field := range []string{"Connections: 4", "Live rooms: 2", "Active pairs: 1", "Uptime: 2m0s"} {
		if !strings.Contains(resultStr.Text, field) {
			t.Errorf("Expected field %q in result, got: %s", field, resultStr.Text)
		}
	}
}

func TestFormatMessages_Empty(t *testing.T) {
	result := formatMessages("general", nil)
	if !strings.Contains(result, "No messages") {
		t.Errorf("Expected empty-room notice, got: %s", result)
	}
}

func TestPlural(t *testing.T) {
	if plural(1, "member") != "member" {
		t.Error("Expected singular for 1")
	}
	if plural(2, "member") != "members" {
		t.Error("Expected plural for 2")
	}
	if plural(0, "member") != "members" {
		t.Error("Expected plural for 0")
	}
}
