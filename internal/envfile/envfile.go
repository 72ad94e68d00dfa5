package envfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Configurer writes project-local environment variables and appends exports
// to the user's shell profile. Both targets are append-only: existing keys
// and existing lines are never rewritten, so repeated runs stay additive.
type Configurer struct {
	log  *slog.Logger
	goos string
}

func NewConfigurer(logger *slog.Logger, goos string) *Configurer {
	return &Configurer{log: logger, goos: goos}
}

// WriteProjectEnv appends KEY="VALUE" lines to path (relative to the current
// project root) for every key not already present in the file.
func (c *Configurer) WriteProjectEnv(path string, vars map[string]string) error {
	if len(vars) == 0 {
		return nil
	}

	existing := map[string]bool{}
	if data, err := os.ReadFile(path); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if key, _, ok := strings.Cut(line, "="); ok {
				existing[strings.TrimSpace(key)] = true
			}
		}
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		if existing[k] {
			c.log.Info("env key already present, keeping existing value", "key", k)
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	for _, k := range keys {
		if _, err := fmt.Fprintf(f, "%s=%q\n", k, vars[k]); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		c.log.Info("added project env variable", "key", k)
	}
	return nil
}

// AppendShellProfile appends each line not already verbatim present in the
// user's shell profile. On Windows there is no profile mechanism safe to
// automate; the lines are surfaced as manual instructions instead.
func (c *Configurer) AppendShellProfile(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if c.goos == "windows" {
		c.log.Warn("shell profile changes are not automated on Windows; apply these manually:")
		for _, line := range lines {
			c.log.Warn("  " + line)
		}
		return nil
	}

	profile, err := c.profilePath()
	if err != nil {
		return err
	}

	var content string
	if data, err := os.ReadFile(profile); err == nil {
		content = string(data)
	}
	present := map[string]bool{}
	for _, line := range strings.Split(content, "\n") {
		present[line] = true
	}

	var missing []string
	for _, line := range lines {
		if present[line] {
			c.log.Info("profile line already present, skipping", "line", line)
			continue
		}
		missing = append(missing, line)
	}
	if len(missing) == 0 {
		return nil
	}

	f, err := os.OpenFile(profile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", profile, err)
	}
	defer f.Close()
	for _, line := range missing {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("writing %s: %w", profile, err)
		}
		c.log.Info("appended to shell profile", "file", filepath.Base(profile), "line", line)
	}
	return nil
}

// profilePath picks the profile file from the active shell: zsh gets .zshrc,
// everything else .bashrc.
func (c *Configurer) profilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	rc := ".bashrc"
	if strings.Contains(os.Getenv("SHELL"), "zsh") {
		rc = ".zshrc"
	}
	return filepath.Join(home, rc), nil
}
