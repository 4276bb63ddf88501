// Tests for loading, defaulting, and rewriting the settings document.
package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loggerpkg "electron/pkg/logger"
)

func TestLoadAbsentFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	result, err := Load(path, loggerpkg.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, SourceDefaultMissing, result.Source)
	assert.Equal(t, Default(), result.Settings)
	assert.Equal(t, "gpt-4o-mini", result.Settings.Model)
	assert.Equal(t, "", result.Settings.APIKey)

	// The defaults must now be on disk and load back identically.
	again, err := Load(path, loggerpkg.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, SourceFile, again.Source)
	assert.Equal(t, result.Settings, again.Settings)
}

func TestLoadCorruptFileFallsBackWithoutOverwriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	result, err := Load(path, loggerpkg.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, SourceDefaultCorrupt, result.Source)
	assert.Equal(t, Default(), result.Settings)

	// A non-empty file is never overwritten, even when corrupt.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestLoadMissingRequiredKey(t *testing.T) {
	for _, key := range requiredKeys {
		t.Run(key, func(t *testing.T) {
			doc := map[string]string{
				"model":          "gpt-4o-mini",
				"api_key":        "",
				"system_message": "hi",
				"assistant_name": "Electron",
				"user_name":      "User",
			}
			delete(doc, key)
			b, err := json.Marshal(doc)
			require.NoError(t, err)
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, b, 0o644))

			_, err = Load(path, loggerpkg.NopLogger{})
			var missing *MissingKeyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, key, missing.Key)
		})
	}
}

func TestSaveAPIKeyPreservesOtherFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	doc := `{
    "model": "gpt-4o-mini",
    "api_key": "",
    "system_message": "hello {user_name}",
    "assistant_name": "Electron",
    "user_name": "Ada",
    "extra": "kept"
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	require.NoError(t, SaveAPIKey(path, "sk-test-123"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "sk-test-123", got["api_key"])
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.Equal(t, "hello {user_name}", got["system_message"])
	assert.Equal(t, "Ada", got["user_name"])
	assert.Equal(t, "kept", got["extra"])
}

func TestSaveAPIKeyMissingFile(t *testing.T) {
	err := SaveAPIKey(filepath.Join(t.TempDir(), "nope.json"), "k")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRenderedSystemMessage(t *testing.T) {
	s := Settings{
		SystemMessage: "You are {assistant_name}, helping {user_name}.",
		AssistantName: "Electron",
		UserName:      "Ada",
	}
	assert.Equal(t, "You are Electron, helping Ada.", s.RenderedSystemMessage())
}
