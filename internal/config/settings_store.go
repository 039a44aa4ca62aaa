package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

type AppSettings struct {
	SourceDir      string `json:"source_dir"`
	OutputDir      string `json:"output_dir"`
	OrganizeScript string `json:"organize_script,omitempty"`
	VerifyScript   string `json:"verify_script,omitempty"`
	Debug          bool   `json:"debug"`
}

func SettingsPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "organizer-gui", "settings.json"), nil
}

func LoadSettings() (AppSettings, error) {
	path, err := SettingsPath()
	if err != nil {
		return AppSettings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return AppSettings{}, err
	}
	var settings AppSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return AppSettings{}, err
	}
	return settings, nil
}

func SaveSettings(settings AppSettings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

// MergeOptionsWithSettings fills in options left empty on the command line
// from the saved settings. Explicit flags always win.
func MergeOptionsWithSettings(cli Options, saved AppSettings) Options {
	if strings.TrimSpace(cli.SourceDir) == "" {
		cli.SourceDir = saved.SourceDir
	}
	if strings.TrimSpace(cli.OutputDir) == "" {
		cli.OutputDir = saved.OutputDir
	}
	if strings.TrimSpace(saved.OrganizeScript) != "" && cli.OrganizeScript == defaultScriptPath(OrganizeScriptName) {
		cli.OrganizeScript = saved.OrganizeScript
	}
	if strings.TrimSpace(saved.VerifyScript) != "" && cli.VerifyScript == defaultScriptPath(VerifyScriptName) {
		cli.VerifyScript = saved.VerifyScript
	}
	if !cli.Debug {
		cli.Debug = saved.Debug
	}
	return cli
}

func SettingsFromOptions(opts Options) AppSettings {
	return AppSettings{
		SourceDir:      strings.TrimSpace(opts.SourceDir),
		OutputDir:      strings.TrimSpace(opts.OutputDir),
		OrganizeScript: strings.TrimSpace(opts.OrganizeScript),
		VerifyScript:   strings.TrimSpace(opts.VerifyScript),
		Debug:          opts.Debug,
	}
}
