package storage

import (
	"errors"

	"github.com/julianstephens/backtrack/internal/models"
)

// ErrKeyNotFound is returned when a requested key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Values
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}
