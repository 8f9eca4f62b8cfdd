package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// SchrothType classifies a scoliosis curve pattern per the Schroth method
type SchrothType string

// Severity buckets a curve by Cobb angle range
type Severity string

// Difficulty grades an exercise
type Difficulty string

// Permission mirrors the tri-state notification permission of the host platform
type Permission string

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "backtrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/backtrack/backtrack.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is the calendar-month format used for freeze bookkeeping (YYYY-MM)
	MonthFormat = "2006-01"

	// StateKey is the store key holding the serialized gamification state
	StateKey = "gamification_state"

	// Streak constants
	DefaultGoalDays = 4
	MinGoalDays     = 1
	MaxGoalDays     = 7
	DaysPerWeek     = 7
	// WeekHistoryLimit bounds how many archived weeks are retained
	WeekHistoryLimit = 12

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "backtrack-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifyTimeout          = 5 * time.Second
	NotifierLockfileName   = "backtrack-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.backtrack"

	// Schroth curve types
	Schroth3C      SchrothType = "3C"
	Schroth3CP     SchrothType = "3CP"
	Schroth4C      SchrothType = "4C"
	Schroth4CP     SchrothType = "4CP"
	SchrothUnknown SchrothType = "unknown"

	// Severity bands
	SeverityMild       Severity = "mild"
	SeverityModerate   Severity = "moderate"
	SeveritySevere     Severity = "severe"
	SeverityVerySevere Severity = "very_severe"

	// Exercise difficulty levels
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"

	// Exercise target areas
	TargetThoracic  = "thoracic"
	TargetLumbar    = "lumbar"
	TargetPelvis    = "pelvis"
	TargetFullSpine = "full_spine"

	// Notification permission states
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Session states. The first NumMainTabs states are the top-level tabs the
// user cycles with tab/shift+tab; the rest are modal overlays.
const (
	StateDashboard SessionState = iota
	StateExercises
	StateEditGoal
	StateConfirmation
)

// NumMainTabs is the number of top-level tab states.
const NumMainTabs = 2
