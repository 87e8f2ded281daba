package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// PathResolver finds config and input files relative to the user config
// directory, the executable and the working directory.
type PathResolver struct {
	app       string
	execDir   string
	homeDir   string
	configDir string
}

// NewPathResolver resolves the directories used by app.
func NewPathResolver(app string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		app:       app,
		execDir:   filepath.Dir(execPath),
		homeDir:   homeDir,
		configDir: configDir(app, homeDir),
	}
	log.Debugf("PathResolver: execDir=%s configDir=%s", pr.execDir, pr.configDir)
	return pr, nil
}

// configDir returns the platform config directory for app.
func configDir(app, homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, app)
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, app)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", app)
	}
	return filepath.Join(homeDir, ".config", app)
}

// ConfigDir returns the preferred config directory.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// ExecDir returns the directory holding the running binary.
func (pr *PathResolver) ExecDir() string {
	return pr.execDir
}

// ConfigPath returns a writable location for filename, falling back to
// ~/.<app>, the temp dir and the executable dir in that order.
func (pr *PathResolver) ConfigPath(filename string) string {
	candidates := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+pr.app),
		filepath.Join(os.TempDir(), pr.app),
		pr.execDir,
	}
	for i, dir := range candidates {
		if DirWritable(dir) {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path
		}
	}
	path := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", path)
	return path
}

// ResolveInput finds an input file. Relative names are tried against the
// working directory, the executable dir and <configDir>/data.
func (pr *PathResolver) ResolveInput(name string) (string, error) {
	if filepath.IsAbs(name) {
		if FileExists(name) {
			return name, nil
		}
		return "", &os.PathError{Op: "resolve", Path: name, Err: os.ErrNotExist}
	}
	candidates := []string{name, filepath.Join(pr.execDir, name), filepath.Join(pr.configDir, "data", name)}
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Resolved input %s to %s", name, path)
			return path, nil
		}
		log.Debugf("Input candidate not found: %s", path)
	}
	return "", &os.PathError{Op: "resolve", Path: name, Err: os.ErrNotExist}
}

// RuntimeInfo returns paths and platform details for debug output.
func (pr *PathResolver) RuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"exec_dir":   pr.execDir,
		"current":    cwd,
		"config_dir": pr.configDir,
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
	for _, env := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if v := os.Getenv(env); v != "" {
			info["env_"+strings.ToLower(env)] = v
		}
	}
	return info
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// DirWritable creates dir if needed and probes it with a throwaway file.
func DirWritable(dir string) bool {
	if err := EnsureDir(dir); err != nil {
		log.Debugf("Cannot create directory %s: %v", dir, err)
		return false
	}
	probe, err := os.CreateTemp(dir, ".write_test-*")
	if err != nil {
		log.Debugf("Directory %s is not writable: %v", dir, err)
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

// AbsPath returns the absolute form of path, or "unknown" for an empty path.
func AbsPath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
