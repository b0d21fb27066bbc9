package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func withTelegramServer(t *testing.T, handler http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	originalURL := apiBaseURL
	apiBaseURL = server.URL + "/bot"
	t.Cleanup(func() { apiBaseURL = originalURL })

	n, err := NewTelegramNotifier("test-token", "12345")
	if err != nil {
		t.Fatalf("NewTelegramNotifier failed: %v", err)
	}
	return n
}

func TestNewTelegramNotifier_Validation(t *testing.T) {
	tests := []struct {
		name     string
		botToken string
		chatID   string
		wantErr  bool
	}{
		{"valid", "token", "123", false},
		{"missing token", "", "123", true},
		{"missing chat", "token", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTelegramNotifier(tt.botToken, tt.chatID)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTelegramNotifier() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTelegramNotifier_Notify(t *testing.T) {
	var got map[string]interface{}
	n := withTelegramServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	})

	if err := n.Notify(sampleDigest(t)); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if got["chat_id"] != "12345" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", got)
	}
	if text, _ := got["text"].(string); !strings.Contains(text, "Standings after Masters") {
		t.Errorf("unexpected text %q", text)
	}
}

func TestTelegramNotifier_APIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"not ok", http.StatusOK, `{"ok":false,"description":"chat not found"}`, "chat not found"},
		{"http error", http.StatusBadRequest, `{"ok":false,"description":"Bad Request"}`, "status 400"},
		{"html error page", http.StatusBadGateway, `<html>bad gateway</html>`, "status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := withTelegramServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			err := n.SendMessage("hello")
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("SendMessage() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestSendMessage_EmptyText(t *testing.T) {
	n, _ := NewTelegramNotifier("token", "123")
	if err := n.SendMessage(""); err == nil {
		t.Error("expected error for empty text")
	}
}
