package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	out := String()
	for _, want := range []string{Version, Commit, Date} {
		if !strings.Contains(out, want) {
			t.Errorf("String() = %q, missing %q", out, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	out := Template()
	if !strings.Contains(out, "{{.Name}}") {
		t.Errorf("Template() = %q, should contain the cobra name placeholder", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("Template() = %q, should end with a newline", out)
	}
}
