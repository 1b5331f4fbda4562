// settings.go loads the optional per-context settings file, labctl.jsonc.
//
// The settings file lets a checkout pin extra compose overlays and env
// files (and a default profile) without every collaborator passing the
// same flags. JSONC is accepted so the file can carry comments, the same
// convention devcontainer.json follows.
package container

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/isaaclab-tools/labctl/internal/model"
)

// SettingsFileName is the optional settings file looked up in the
// context directory.
const SettingsFileName = "labctl.jsonc"

// Settings holds the per-context defaults from labctl.jsonc. The zero
// value (no file present) applies no extensions.
type Settings struct {
	// Profile is the default profile when the command line does not
	// specify one. Subject to the same alias normalization as the flag.
	Profile string `json:"profile,omitempty"`

	// ComposeFiles are extra compose files appended after
	// docker-compose.yaml, before any command-line --file extensions.
	ComposeFiles []string `json:"composeFiles,omitempty"`

	// EnvFiles are extra env files appended after the base and
	// profile-specific env files, before any command-line extensions.
	EnvFiles []string `json:"envFiles,omitempty"`
}

// LoadSettings reads labctl.jsonc from the context directory. A missing
// file yields empty settings; a malformed file is a configuration error.
func LoadSettings(contextDir string) (*Settings, error) {
	path := filepath.Join(contextDir, SettingsFileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read settings file %s", path), err)
	}

	// Strip JSONC comments and trailing commas before parsing with the
	// standard library.
	var settings Settings
	if err := json.Unmarshal(jsonc.ToJSON(raw), &settings); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse settings file %s", path), err)
	}

	return &settings, nil
}
