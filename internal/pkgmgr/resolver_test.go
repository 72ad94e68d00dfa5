package pkgmgr

import (
	"errors"
	"testing"
)

func lookFor(present ...string) func(string) (string, error) {
	set := map[string]bool{}
	for _, p := range present {
		set[p] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
}

func TestDetectPriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		present []string
		want    ID
	}{
		{"apt wins on debian", "linux", []string{"apt-get", "dnf"}, AptGet},
		{"dnf preferred over yum shim", "linux", []string{"dnf", "yum"}, Dnf},
		{"yum alone", "linux", []string{"yum"}, Yum},
		{"pacman alone", "linux", []string{"pacman"}, Pacman},
		{"brew on darwin", "darwin", []string{"brew"}, Brew},
		{"winget on windows", "windows", []string{"winget"}, Winget},
		{"nothing found", "linux", nil, None},
		{"brew ignored on linux", "linux", []string{"brew"}, None},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.goos, lookFor(tc.present...))
			if got != tc.want {
				t.Errorf("Detect(%s, %v) = %q, want %q", tc.goos, tc.present, got, tc.want)
			}
		})
	}
}

func TestTableInvariants(t *testing.T) {
	for _, id := range Supported() {
		cmds, ok := Lookup(id)
		if !ok {
			t.Fatalf("no command table for %q", id)
		}
		if len(cmds.Install) == 0 {
			t.Errorf("%q has empty install template", id)
		}
		if len(cmds.Check) == 0 {
			t.Errorf("%q has empty check template", id)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("apt-get") {
		t.Error("apt-get should be known")
	}
	if Known("choco") {
		t.Error("choco has no command table and must not be known")
	}
}
