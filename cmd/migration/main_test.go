package main

import "testing"

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("parseSteps(nil)=%d,%v want 1,nil", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("parseSteps(3)=%d,%v want 3,nil", got, err)
	}
	for _, bad := range []string{"0", "-1", "x"} {
		if _, err := parseSteps([]string{bad}); err == nil {
			t.Fatalf("expected error for steps %q", bad)
		}
	}
}

func TestParseVersion(t *testing.T) {
	if got, err := parseVersion("1771900100"); err != nil || got != 1771900100 {
		t.Fatalf("parseVersion=%d,%v", got, err)
	}
	if _, err := parseVersion("-2"); err == nil {
		t.Fatalf("expected error for negative version")
	}
}
