// Package config loads and validates the application settings file and
// resolves the workspace-relative paths the other components work from.
//
// All paths are anchored at an explicit base directory; there is no hidden
// process-global root. The base directory is chosen by the CLI shell (flag,
// environment, or upward discovery) and carried through Load.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/mail-composer/internal/apperror"
)

// configRelPath is where the settings file lives under the workspace root.
const configRelPath = "config/app.json"

// Config is the validated application configuration.
type Config struct {
	From            string `json:"from"`
	Department      string `json:"department"`
	ThunderbirdExe  string `json:"thunderbird_exe"`
	LogDir          string `json:"log_dir"`
	InputDir        string `json:"input_dir"`
	AddressBookFile string `json:"address_book_file"`
	OutputDir       string `json:"output_dir"`
	StartTimeFile   string `json:"start_time_file"`

	baseDir string
}

// Load reads {baseDir}/config/app.json, normalizes the mail-client path, and
// validates the result.
func Load(baseDir string) (Config, error) {
	path := filepath.Join(baseDir, configRelPath)

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, apperror.New(apperror.InternalServerError,
			"failed to read the configuration file").
			WithHint("check that config/app.json exists under the workspace root").
			WithCause(err)
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return Config{}, apperror.New(apperror.UnavailableForLegalReasons,
			"failed to parse the configuration file").
			WithHint("check the JSON syntax of config/app.json").
			WithCause(err)
	}

	// Accept Windows-style paths in thunderbird_exe.
	cfg.ThunderbirdExe = strings.ReplaceAll(cfg.ThunderbirdExe, `\`, "/")
	cfg.baseDir = baseDir

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Exists reports whether the settings file is present under baseDir without
// loading it.
func Exists(baseDir string) bool {
	info, err := os.Stat(filepath.Join(baseDir, configRelPath))
	return err == nil && !info.IsDir()
}

// Validate checks the fields that must not be blank.
func (c Config) Validate() error {
	if strings.TrimSpace(c.From) == "" {
		return apperror.New(apperror.UnavailableForLegalReasons,
			"sender name is not configured").
			WithHint(`set the "from" field in config/app.json`)
	}
	if strings.TrimSpace(c.Department) == "" {
		return apperror.New(apperror.UnavailableForLegalReasons,
			"department is not configured").
			WithHint(`set the "department" field in config/app.json`)
	}
	if strings.TrimSpace(c.ThunderbirdExe) == "" {
		return apperror.New(apperror.UnavailableForLegalReasons,
			"mail client path is not configured").
			WithHint(`set the "thunderbird_exe" field in config/app.json`)
	}
	return nil
}

// BaseDir returns the workspace root this configuration was loaded from.
func (c Config) BaseDir() string {
	return c.baseDir
}

// AddressBookPath is {base}/{input_dir}/{address_book_file}.
func (c Config) AddressBookPath() string {
	return filepath.Join(c.baseDir, c.InputDir, c.AddressBookFile)
}

// StartTimeFilePath is {base}/{input_dir}/{start_time_file}.
func (c Config) StartTimeFilePath() string {
	return filepath.Join(c.baseDir, c.InputDir, c.StartTimeFile)
}

// StartTimeStorePath is {base}/{log_dir}/{start_time_file}, the location the
// start-time store actually writes to.
func (c Config) StartTimeStorePath() string {
	return filepath.Join(c.baseDir, c.LogDir, c.StartTimeFile)
}

// OutputDirPath is {base}/{output_dir}.
func (c Config) OutputDirPath() string {
	return filepath.Join(c.baseDir, c.OutputDir)
}

// LogDirPath is {base}/{log_dir}.
func (c Config) LogDirPath() string {
	return filepath.Join(c.baseDir, c.LogDir)
}

// Source loads the configuration from a fixed base directory on demand.
type Source struct {
	baseDir string
}

// NewSource binds a loader to the workspace root.
func NewSource(baseDir string) Source {
	return Source{baseDir: baseDir}
}

// Load reads and validates the configuration.
func (s Source) Load() (Config, error) {
	return Load(s.baseDir)
}

// Exists reports whether the settings file is present.
func (s Source) Exists() bool {
	return Exists(s.baseDir)
}
