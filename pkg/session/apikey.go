package session

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	loggerpkg "electron/pkg/logger"
	"electron/pkg/render"
	"electron/pkg/settings"
)

// EnvAPIKey is the environment variable consulted when the settings
// document carries no credential.
const EnvAPIKey = "API_KEY"

// ErrAPIKeyDeclined reports that the user refused to supply a key.
var ErrAPIKeyDeclined = errors.New("api key not provided")

// ProvisionAPIKey resolves the completion credential: the settings
// value wins, then the environment, then an interactive prompt. A
// persisted key is written back to only the api_key field of the
// settings document; declining to persist keeps it for this session.
func ProvisionAPIKey(cfg settings.Settings, settingsPath string, console *render.Console, scanner *bufio.Scanner, logger loggerpkg.Logger) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}

	console.Ask(fmt.Sprintf("Your API key is missing in %q and is not set in the environment as %q!\nWould you like to set it now?", settingsPath, EnvAPIKey))
	response, ok := readLine(scanner)
	if !ok || !IsConfirmation(response) {
		return "", ErrAPIKeyDeclined
	}

	console.Ask("Input your API key")
	var key string
	for key == "" {
		line, ok := readLine(scanner)
		if !ok {
			return "", ErrAPIKeyDeclined
		}
		key = strings.TrimSpace(line)
	}

	console.Ask("Save API key for future use?")
	save, _ := readLine(scanner)
	if IsConfirmation(save) {
		if err := settings.SaveAPIKey(settingsPath, key); err != nil {
			loggerpkg.Errorf(logger, "failed to save API key: %v", err)
			console.ErrorLine("API key not saved. See logs for more info.")
		} else {
			console.Success("API key saved.")
		}
	} else {
		console.Warn("API key not saved.")
	}
	return key, nil
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}
