// Package settings loads and persists the JSON configuration document.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	loggerpkg "electron/pkg/logger"
)

// Default values written when no usable settings file exists.
const (
	DefaultModel         = "gpt-4o-mini"
	DefaultSystemMessage = "You are {assistant_name}, a command line AI assistant for {user_name} who knows everything."
	DefaultAssistantName = "Electron"
	DefaultUserName      = "User"
)

// requiredKeys must all be present in a parseable settings document.
var requiredKeys = []string{"model", "api_key", "system_message", "assistant_name", "user_name"}

// Settings is the persisted configuration document.
type Settings struct {
	Model         string `json:"model"`
	APIKey        string `json:"api_key"`
	SystemMessage string `json:"system_message"`
	AssistantName string `json:"assistant_name"`
	UserName      string `json:"user_name"`
}

// Default returns the baseline settings document.
func Default() Settings {
	return Settings{
		Model:         DefaultModel,
		APIKey:        "",
		SystemMessage: DefaultSystemMessage,
		AssistantName: DefaultAssistantName,
		UserName:      DefaultUserName,
	}
}

// RenderedSystemMessage substitutes the name placeholders.
func (s Settings) RenderedSystemMessage() string {
	return strings.NewReplacer(
		"{assistant_name}", s.AssistantName,
		"{user_name}", s.UserName,
	).Replace(s.SystemMessage)
}

// Source records why Load returned the settings it did. Defaulting due
// to an absent file and defaulting due to a corrupt one produce the
// same values but stay distinguishable to callers.
type Source int

const (
	SourceFile Source = iota
	SourceDefaultMissing
	SourceDefaultCorrupt
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceDefaultMissing:
		return "default (missing file)"
	case SourceDefaultCorrupt:
		return "default (corrupt file)"
	default:
		return "unknown"
	}
}

// Result pairs loaded settings with their provenance.
type Result struct {
	Settings Settings
	Source   Source
}

// MissingKeyError reports a parseable settings document that lacks a
// required key. This signals corruption to the caller rather than
// silently defaulting.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required key %q in settings", e.Key)
}

// Load reads the settings document at path. An absent file or invalid
// JSON falls back to defaults (best-effort persisting them); a valid
// document missing a required key is a fatal *MissingKeyError.
func Load(path string, logger loggerpkg.Logger) (Result, error) {
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("read settings file: %w", err)
		}
		loggerpkg.Warnf(logger, "settings file not found at %q, using default settings", path)
		writeDefaults(path, logger)
		return Result{Settings: Default(), Source: SourceDefaultMissing}, nil
	}

	if !gjson.ValidBytes(data) {
		loggerpkg.Errorf(logger, "invalid JSON in settings file %q, using default settings", path)
		writeDefaults(path, logger)
		return Result{Settings: Default(), Source: SourceDefaultCorrupt}, nil
	}

	for _, key := range requiredKeys {
		if !gjson.GetBytes(data, key).Exists() {
			return Result{}, &MissingKeyError{Key: key}
		}
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		loggerpkg.Errorf(logger, "invalid settings document %q, using default settings: %v", path, err)
		writeDefaults(path, logger)
		return Result{Settings: Default(), Source: SourceDefaultCorrupt}, nil
	}
	return Result{Settings: s, Source: SourceFile}, nil
}

// writeDefaults persists the default document, but never overwrites a
// non-empty file. Failures are logged, not returned.
func writeDefaults(path string, logger loggerpkg.Logger) {
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		loggerpkg.Warnf(logger, "default settings not written: %q already exists and is not empty", path)
		return
	}
	loggerpkg.Warnf(logger, "writing default settings to %q", path)
	b, err := json.MarshalIndent(Default(), "", "    ")
	if err != nil {
		loggerpkg.Errorf(logger, "failed to encode default settings: %v", err)
		return
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		loggerpkg.Errorf(logger, "failed to write default settings to %q: %v", path, err)
		return
	}
	loggerpkg.Infof(logger, "default settings written to %q", path)
}

// SaveAPIKey rewrites only the api_key field of the on-disk document,
// preserving every other field in place.
func SaveAPIKey(path, key string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	updated, err := sjson.SetBytesOptions(data, "api_key", key, &sjson.Options{Optimistic: true})
	if err != nil {
		return fmt.Errorf("update api_key: %w", err)
	}
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
