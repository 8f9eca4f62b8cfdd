package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/backtrack/internal/constants"
)

// Seams for tests.
var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Notifier struct{}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// lockfile is the parsed form of the tray app's lockfile, written as
// "port|pid|secret" on startup.
type lockfile struct {
	port   string
	pid    int
	secret string
}

func New() *Notifier {
	return &Notifier{}
}

// Notify delivers a notification through the local tray app. Lockfile and
// process validation failures are terminal; the HTTP delivery itself is
// retried a bounded number of times.
func (n *Notifier) Notify(text string) error {
	trayDir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(constants.NotifyRetryDelay)
		}
		if lastErr = sendNotification(port, secret, payload); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("notification failed after %d attempts: %w", constants.NotifyMaxRetries, lastErr)
}

// GetTrayAppConfigDir returns the directory holding the tray app's lockfile.
// The tray app can relocate its lockfile via settings.json; otherwise it sits
// in the app's own config directory.
func GetTrayAppConfigDir() (string, error) {
	base, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayDir := filepath.Join(base, constants.TrayAppIdentifier)
	if custom, ok := customLockfileDir(trayDir); ok {
		return custom, nil
	}
	return trayDir, nil
}

// customLockfileDir reads the tray app's settings.json and reports a relocated
// lockfile directory, if one is configured. Unreadable or malformed settings
// fall back to the default location.
func customLockfileDir(trayDir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return "", false
	}

	var cfg struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return "", false
	}
	if cfg.Settings.LockfileDir == nil || *cfg.Settings.LockfileDir == "" {
		return "", false
	}
	return *cfg.Settings.LockfileDir, true
}

// parseLockfile validates the raw lockfile content. Older tray builds wrote
// only "port|pid"; those are rejected so a notification never goes out
// unauthenticated.
func parseLockfile(content []byte) (lockfile, error) {
	fields := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(fields) != 3 {
		return lockfile{}, errors.New("lockfile is malformed")
	}

	lf := lockfile{port: fields[0], secret: fields[2]}

	if strings.TrimSpace(lf.port) == "" {
		return lockfile{}, errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(lf.port)
	if err != nil {
		return lockfile{}, errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return lockfile{}, fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	lf.pid, err = strconv.Atoi(fields[1])
	if err != nil {
		return lockfile{}, errors.New("invalid process ID in lockfile")
	}

	if strings.TrimSpace(lf.secret) == "" {
		return lockfile{}, errors.New("secret in lockfile is empty")
	}

	return lf, nil
}

// verifyTrayProcess confirms the pid from the lockfile belongs to a live
// backtrack-tray process, not a stale file or a recycled pid.
func verifyTrayProcess(pid int) error {
	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return errors.New("backtrack-tray process not running")
	}
	if !strings.HasPrefix(proc.Executable(), "backtrack-tray") {
		return fmt.Errorf("process with PID %d is not backtrack-tray (is %s)", pid, proc.Executable())
	}
	return nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("backtrack-tray is not running")
	}

	lf, err := parseLockfile(content)
	if err != nil {
		return "", "", err
	}
	if err := verifyTrayProcess(lf.pid); err != nil {
		return "", "", err
	}

	return lf.port, lf.secret, nil
}

func sendNotification(port string, secret string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Backtrack-Secret", secret)

	client := &http.Client{Timeout: constants.NotifyTimeout}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
	}
	return nil
}
