package errors

import (
	"strings"
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{"Simple", "lodash", false},
		{"Scoped", "@acme/core", false},
		{"WithDots", "socket.io", false},
		{"Empty", "", true},
		{"Traversal", "../etc/passwd", true},
		{"DoubleSlash", "a//b", true},
		{"Backslash", `a\b`, true},
		{"ControlChar", "a\x01b", true},
		{"NullByte", "a\x00b", true},
		{"TooLong", strings.Repeat("a", 257), true},
		{"MaxLength", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.pkg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.pkg, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("error code = %s, want INVALID_PACKAGE", GetCode(err))
			}
		})
	}
}
