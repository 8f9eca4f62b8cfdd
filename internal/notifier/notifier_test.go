package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/backtrack/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubUserConfigDir(t *testing.T, dir string) {
	t.Helper()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }
}

func stubFindProcess(t *testing.T, fn func(pid int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = fn
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	stubUserConfigDir(t, tempDir)

	t.Run("default location", func(t *testing.T) {
		want := filepath.Join(tempDir, constants.TrayAppIdentifier)
		dir, err := GetTrayAppConfigDir()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir != want {
			t.Errorf("expected %s, got %s", want, dir)
		}
	})

	t.Run("custom lockfile dir from settings", func(t *testing.T) {
		trayConfigDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
		if err := os.MkdirAll(trayConfigDir, 0755); err != nil {
			t.Fatal(err)
		}

		customDir := "/custom/backtrack/dir"
		settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
		if err := os.WriteFile(filepath.Join(trayConfigDir, "settings.json"), []byte(settingsJSON), 0644); err != nil {
			t.Fatal(err)
		}

		dir, err := GetTrayAppConfigDir()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir != customDir {
			t.Errorf("expected %s, got %s", customDir, dir)
		}
	})
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)
	writeLockfile := func(t *testing.T, content string) {
		t.Helper()
		if err := os.WriteFile(lockfilePath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("lockfile missing", func(t *testing.T) {
		if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
			t.Error("expected error for missing lockfile")
		}
	})

	badLockfiles := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"two-part legacy format", "8080|12345", ""},
		{"no separators", "invalid", ""},
		{"empty secret", "8080|12345|", "secret"},
		{"empty port", "|12345|testsecret123", ""},
		{"port out of range", "99999|12345|testsecret123", ""},
		{"non-numeric pid", "8080|abc|testsecret123", ""},
	}
	for _, tt := range badLockfiles {
		t.Run(tt.name, func(t *testing.T) {
			writeLockfile(t, tt.content)
			_, _, err := findAndValidateTrayProcess(lockfilePath)
			if err == nil {
				t.Fatalf("accepted lockfile %q", tt.content)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantMsg)
			}
		})
	}

	t.Run("process not running", func(t *testing.T) {
		writeLockfile(t, "8080|12345|testsecret123")
		stubFindProcess(t, func(pid int) (ps.Process, error) {
			return nil, nil
		})
		if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
			t.Error("expected error for missing process")
		}
	})

	t.Run("wrong executable", func(t *testing.T) {
		writeLockfile(t, "8080|12345|testsecret123")
		stubFindProcess(t, func(pid int) (ps.Process, error) {
			return &mockProcess{pid: pid, executable: "other-app"}, nil
		})
		if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
			t.Error("expected error for wrong executable")
		}
	})

	t.Run("valid lockfile and process", func(t *testing.T) {
		writeLockfile(t, "8080|12345|testsecret123")
		stubFindProcess(t, func(pid int) (ps.Process, error) {
			return &mockProcess{pid: pid, executable: "backtrack-tray"}, nil
		})
		port, secret, err := findAndValidateTrayProcess(lockfilePath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if port != "8080" {
			t.Errorf("expected port 8080, got %s", port)
		}
		if secret != "testsecret123" {
			t.Errorf("expected secret testsecret123, got %s", secret)
		}
	})
}

func TestSendNotification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Backtrack-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}

		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]

	t.Run("delivers with secret", func(t *testing.T) {
		if err := sendNotification(port, "test-secret", WebhookPayload{Text: "hello"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing secret rejected", func(t *testing.T) {
		if err := sendNotification(port, "", WebhookPayload{Text: "hello"}); err == nil {
			t.Error("expected error for missing secret")
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		if err := sendNotification(port, "wrong-secret", WebhookPayload{Text: "hello"}); err == nil {
			t.Error("expected error for wrong secret")
		}
	})

	t.Run("server failure surfaces", func(t *testing.T) {
		if err := sendNotification(port, "test-secret", WebhookPayload{Text: "fail"}); err == nil {
			t.Error("expected error for server failure")
		}
	})
}

func TestNotify_RetriesTransientFailures(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Fail the first two attempts, then accept.
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.Header.Get("X-Backtrack-Secret") != "retry-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]

	tempDir := t.TempDir()
	stubUserConfigDir(t, tempDir)
	stubFindProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "backtrack-tray"}, nil
	})

	trayConfigDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayConfigDir, 0755); err != nil {
		t.Fatal(err)
	}
	lockfile := fmt.Sprintf("%s|12345|retry-secret", port)
	if err := os.WriteFile(filepath.Join(trayConfigDir, constants.NotifierLockfileName), []byte(lockfile), 0644); err != nil {
		t.Fatal(err)
	}

	if err := New().Notify("hello"); err != nil {
		t.Errorf("Notify() error = %v, want success after retries", err)
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}
