package version

import "testing"

func TestGetMinorVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"0.2.1", "0.2"},
		{"1.10.3", "1.10"},
		{"0.2", "0.2"},
		{"1", "1"},
	}
	for _, tt := range tests {
		if got := GetMinorVersion(tt.version); got != tt.want {
			t.Errorf("GetMinorVersion(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestVersionComparison(t *testing.T) {
	if !IsVersionGreaterThan("0.2.1", "0.2.0") {
		t.Error("Expected 0.2.1 > 0.2.0")
	}
	if IsVersionGreaterThan("0.2.0", "0.2.0") {
		t.Error("Expected 0.2.0 not > itself")
	}
	if !IsVersionGreaterOrEqualThan("0.2", "0.2") {
		t.Error("Expected 0.2 >= 0.2")
	}
	if IsVersionGreaterOrEqualThan("0.1", "0.2") {
		t.Error("Expected 0.1 < 0.2")
	}
}
