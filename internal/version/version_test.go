package version

import (
	"testing"
)

func TestGetCurrentVersion(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "1.2.3"
	if v := GetCurrentVersion(); v != "1.2.3" {
		t.Errorf("expected 1.2.3, got %s", v)
	}
	Version = "v2.0"
	if v := GetCurrentVersion(); v != "2.0.0" {
		t.Errorf("expected 2.0.0, got %s", v)
	}
	Version = "not-a-version"
	if v := GetCurrentVersion(); v != "dev" {
		t.Errorf("expected dev, got %s", v)
	}
}

func TestGetMinorVersion(t *testing.T) {
	if v := GetMinorVersion("0.1.7"); v != "0.1" {
		t.Errorf("expected 0.1, got %s", v)
	}
	if v := GetMinorVersion("garbage"); v != "" {
		t.Errorf("expected empty minor version, got %s", v)
	}
}
