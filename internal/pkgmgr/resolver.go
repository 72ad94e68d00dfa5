package pkgmgr

import "os/exec"

// probeOrder is the fixed detection priority per platform family. Order
// matters: systems can expose several managers at once (dnf plus a legacy
// yum shim), and the first match must win deterministically.
var probeOrder = map[string][]ID{
	"linux":   {AptGet, Dnf, Yum, Pacman},
	"darwin":  {Brew},
	"windows": {Winget},
}

// Detect probes for each candidate manager's executable on the search path
// and returns the first present, or None when nothing is found. None is a
// valid terminal state, not an error; installation is skipped entirely.
func Detect(goos string, look func(string) (string, error)) ID {
	if look == nil {
		look = exec.LookPath
	}
	for _, id := range probeOrder[goos] {
		if _, err := look(string(id)); err == nil {
			return id
		}
	}
	return None
}
