package houdiniswap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRedactHeaders(t *testing.T) {
	headers := map[string]string{
		"Authorization": "key:secret",
		"Content-Type":  "application/json",
	}
	redacted := redactHeaders(headers)

	if redacted["Authorization"] != "***REDACTED***" {
		t.Errorf("Expected authorization masked, got %q", redacted["Authorization"])
	}
	if redacted["Content-Type"] != "application/json" {
		t.Errorf("Expected other headers untouched, got %q", redacted["Content-Type"])
	}
	// The input map is copied, not mutated.
	if headers["Authorization"] != "key:secret" {
		t.Error("Expected original map unmodified")
	}
}

func TestLogrusLoggerFields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	adapter := NewLogrusLogger(logger)

	adapter.Info("request", "method", "GET", "endpoint", "/tokens")

	if len(hook.Entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(hook.Entries))
	}
	entry := hook.LastEntry()
	if entry.Message != "request" {
		t.Errorf("Expected message 'request', got %q", entry.Message)
	}
	if entry.Data["method"] != "GET" || entry.Data["endpoint"] != "/tokens" {
		t.Errorf("Unexpected fields: %v", entry.Data)
	}
}

// recordingLogger captures every emission for credential leak checks.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) log(msg string, keysAndValues []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, msg+" "+fmt.Sprint(keysAndValues...))
}

func (l *recordingLogger) Debug(msg string, kv ...any) { l.log(msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...any)  { l.log(msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...any)  { l.log(msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...any) { l.log(msg, kv) }

func TestCredentialsNeverLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	recorder := &recordingLogger{}
	client := newTestClient(t, server.URL, WithMaxRetries(1), WithLogger(recorder))
	_, _ = client.request(context.Background(), "GET", "/tokens", nil, nil)

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if len(recorder.lines) == 0 {
		t.Fatal("Expected log emissions from failing request")
	}
	for _, line := range recorder.lines {
		if strings.Contains(line, testAPISecret) || strings.Contains(line, testAPIKey+":"+testAPISecret) {
			t.Errorf("Credential leaked into log line: %q", line)
		}
	}
}
