package pkgmgr

// ID identifies a supported system package manager. The value doubles as the
// executable name probed for on the search path.
type ID string

const (
	AptGet ID = "apt-get"
	Dnf    ID = "dnf"
	Yum    ID = "yum"
	Pacman ID = "pacman"
	Brew   ID = "brew"
	Winget ID = "winget"
	None   ID = ""
)

// Commands holds the invocation shapes for one package manager. Update may be
// empty (a no-op); Install and Check are never empty for a supported manager.
type Commands struct {
	Update  []string
	Install []string
	Check   []string

	// CheckByOutput marks managers whose check command exits zero even when
	// the package is absent; membership is decided by scanning the captured
	// stdout for the package token instead of trusting the exit code.
	CheckByOutput bool

	// CheckFullSpec marks managers whose check command takes the full package
	// spec (e.g. a winget package Id) rather than the leading name token.
	CheckFullSpec bool
}

// Manager idiosyncrasies live here as data, not control flow. Adding a
// manager is a table entry plus a probe-order slot in resolver.go.
var table = map[ID]Commands{
	AptGet: {
		Update:  []string{"apt-get", "update"},
		Install: []string{"apt-get", "install", "-y"},
		Check:   []string{"dpkg", "-s"},
	},
	Dnf: {
		Install: []string{"dnf", "install", "-y"},
		Check:   []string{"rpm", "-q"},
	},
	Yum: {
		Install: []string{"yum", "install", "-y"},
		Check:   []string{"rpm", "-q"},
	},
	Pacman: {
		Update:  []string{"pacman", "-Syu", "--noconfirm"},
		Install: []string{"pacman", "-S", "--noconfirm"},
		Check:   []string{"pacman", "-Q"},
	},
	Brew: {
		Update:        []string{"brew", "update"},
		Install:       []string{"brew", "install"},
		Check:         []string{"brew", "list", "--versions"},
		CheckByOutput: true,
		CheckFullSpec: true,
	},
	Winget: {
		Install:       []string{"winget", "install", "-e", "--accept-source-agreements", "--id"},
		Check:         []string{"winget", "list", "--id"},
		CheckFullSpec: true,
	},
}

// Lookup returns the command templates for a manager.
func Lookup(id ID) (Commands, bool) {
	c, ok := table[id]
	return c, ok
}

// Known reports whether name is a supported manager id.
func Known(name string) bool {
	_, ok := table[ID(name)]
	return ok
}

// Supported lists every manager id with a command table, in probe order.
func Supported() []ID {
	return []ID{AptGet, Dnf, Yum, Pacman, Brew, Winget}
}
