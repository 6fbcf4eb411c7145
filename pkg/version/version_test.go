package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	savedVersion, savedCommit := Version, Commit
	defer func() { Version, Commit = savedVersion, savedCommit }()

	Version = "1.2.3"
	Commit = "abcdef1234567890"

	info := Info()
	if !strings.Contains(info, "repcache 1.2.3") {
		t.Errorf("Info() = %q, missing version", info)
	}
	if !strings.Contains(info, "abcdef1") {
		t.Errorf("Info() = %q, missing short commit", info)
	}
	if strings.Contains(info, "abcdef12") {
		t.Errorf("Info() = %q, commit not truncated to 7 chars", info)
	}
}

func TestInfo_ShortCommit(t *testing.T) {
	savedCommit := Commit
	defer func() { Commit = savedCommit }()

	Commit = "abc"
	if info := Info(); !strings.Contains(info, "abc") {
		t.Errorf("Info() = %q, short commit should pass through", info)
	}
}

func TestShort(t *testing.T) {
	savedVersion := Version
	defer func() { Version = savedVersion }()

	Version = "2.0.0"
	if got := Short(); got != "2.0.0" {
		t.Errorf("Short() = %q, want 2.0.0", got)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	for _, field := range []string{"Version:", "Commit:", "Build Date:", "Go Version:", "OS/Arch:"} {
		if !strings.Contains(full, field) {
			t.Errorf("Full() missing %q:\n%s", field, full)
		}
	}
}
