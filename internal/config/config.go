package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Names the organizer scripts write into the organized directory. The GUI
// never creates these; it only reads them.
const (
	ChecksumLogName  = "organized_files_checksum.log"
	OrganizerLogName = "organizer.log"
	IntegrityLogName = "integrity_check.log"
	BackupsDirName   = "backups"
)

const (
	OrganizeScriptName = "organize_files.sh"
	VerifyScriptName   = "verify_integrity.sh"
)

type Options struct {
	OrganizeScript string `long:"organize-script" env:"ORGANIZER_ORGANIZE_SCRIPT" description:"Path to the organize script"`
	VerifyScript   string `long:"verify-script" env:"ORGANIZER_VERIFY_SCRIPT" description:"Path to the integrity verify script"`
	SourceDir      string `long:"source-dir" env:"ORGANIZER_SOURCE_DIR" description:"Folder containing files to organize"`
	OutputDir      string `long:"output-dir" env:"ORGANIZER_OUTPUT_DIR" description:"Organized output folder"`
	Headless       bool   `long:"headless" env:"ORGANIZER_HEADLESS" description:"Run the terminal UI instead of the GUI (GUI builds only)"`
	Debug          bool   `long:"debug" env:"ORGANIZER_DEBUG" description:"Enable verbose debug output"`
}

func ParseOptions() (Options, error) {
	_ = godotenv.Load()
	opts := Options{}
	if _, err := flags.Parse(&opts); err != nil {
		return Options{}, err
	}
	if opts.OrganizeScript == "" {
		opts.OrganizeScript = defaultScriptPath(OrganizeScriptName)
	}
	if opts.VerifyScript == "" {
		opts.VerifyScript = defaultScriptPath(VerifyScriptName)
	}
	return opts, nil
}

// defaultScriptPath resolves a script name next to the running executable,
// falling back to the working directory when the executable path is unknown.
func defaultScriptPath(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}

func ValidateOrganize(script, sourceDir, outputDir string) error {
	if err := validateScript(script); err != nil {
		return err
	}
	if strings.TrimSpace(sourceDir) == "" {
		return errors.New("select a source folder")
	}
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return errors.New("source folder does not exist: " + sourceDir)
	}
	if strings.TrimSpace(outputDir) == "" {
		return errors.New("select an output folder")
	}
	return nil
}

func ValidateVerify(script, dir string) error {
	if err := validateScript(script); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" {
		return errors.New("select an organized folder")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return errors.New("organized folder does not exist: " + dir)
	}
	return nil
}

func validateScript(script string) error {
	if strings.TrimSpace(script) == "" {
		return errors.New("script path is empty")
	}
	info, err := os.Stat(script)
	if err != nil || info.IsDir() {
		return errors.New("script not found: " + script)
	}
	return nil
}

func ChecksumLogPath(organizedDir string) string {
	return filepath.Join(organizedDir, ChecksumLogName)
}

// LiveLogPaths lists the script log files to tail under an organized
// directory. Files that do not exist yet are still listed; the tailer
// reports them as missing until the scripts create them.
func LiveLogPaths(organizedDir string) []string {
	return []string{
		filepath.Join(organizedDir, OrganizerLogName),
		filepath.Join(organizedDir, IntegrityLogName),
	}
}

func BackupsDir(organizedDir string) string {
	return filepath.Join(organizedDir, BackupsDirName)
}
