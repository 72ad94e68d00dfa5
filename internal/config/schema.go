package config

// Config is the top-level provisioning configuration.
type Config struct {
	// Packages maps a package-manager id to its package list. No
	// cross-manager translation happens; the operator supplies one list per
	// manager they care about.
	Packages map[string][]string `yaml:"packages,omitempty"`

	Project Project `yaml:"project"`
	Env     Env     `yaml:"env,omitempty"`
	Venv    Venv    `yaml:"venv,omitempty"`

	// Hooks are raw shell command templates run after environment setup.
	// {{RUNTIME_PYTHON}} and {{RUNTIME_PIP}} resolve to the environment's
	// tools, or system-wide fallbacks.
	Hooks []string `yaml:"hooks,omitempty"`

	CommitMessage string `yaml:"commit_message,omitempty"`
}

// Project describes the workspace to scaffold.
type Project struct {
	Path      string `yaml:"path"`
	Structure []Node `yaml:"structure,omitempty"`
}

// Node is one entry of the project tree: a directory, or a file with
// declared content. Paths are relative to the project root and must not
// escape it.
type Node struct {
	Path    string `yaml:"path"`
	Dir     bool   `yaml:"dir,omitempty"`
	Content string `yaml:"content,omitempty"`
}

// Env holds the two independent environment-variable scopes.
type Env struct {
	// File is the project-local env file name, relative to the project root.
	File string `yaml:"file,omitempty"`
	// Project entries become KEY="VALUE" lines in File, append-only.
	Project map[string]string `yaml:"project,omitempty"`
	// Shell entries are raw lines appended to the user's shell profile,
	// deduplicated by exact match.
	Shell []string `yaml:"shell,omitempty"`
}

// Venv describes the isolated Python environment.
type Venv struct {
	Enabled  bool     `yaml:"enabled,omitempty"`
	Name     string   `yaml:"name,omitempty"`
	Packages []string `yaml:"packages,omitempty"`
}
