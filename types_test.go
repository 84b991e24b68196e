package ccheck

import (
	"errors"
	"fmt"
	"testing"
)

func TestLanguage_String(t *testing.T) {
	tests := []struct {
		lang Language
		want string
	}{
		{LanguageC, "c"},
		{LanguageCXX, "cpp"},
		{Language(99), "Language(99)"},
	}

	for _, tt := range tests {
		if got := tt.lang.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLanguageNames(t *testing.T) {
	names := LanguageNames()
	if len(names) != len(LanguageValues()) {
		t.Fatalf("len(names) = %d, want %d", len(names), len(LanguageValues()))
	}
	if names[0] != "c" || names[1] != "cpp" {
		t.Errorf("LanguageNames() = %v", names)
	}
}

func TestLanguage_SourceExt(t *testing.T) {
	if got := LanguageC.sourceExt(); got != ".c" {
		t.Errorf("LanguageC.sourceExt() = %q", got)
	}
	if got := LanguageCXX.sourceExt(); got != ".cc" {
		t.Errorf("LanguageCXX.sourceExt() = %q", got)
	}
}

func TestCheckError(t *testing.T) {
	underlying := errors.New("probe failed")
	err := &CheckError{Kind: "header", Name: "unistd.h", Language: LanguageC, Err: underlying}

	want := "c header unistd.h required but not found: probe failed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should reach the wrapped error")
	}

	bare := &CheckError{Kind: "symbol", Name: "printf", Language: LanguageCXX}
	if bare.Error() != "cpp symbol printf required but not found" {
		t.Errorf("Error() = %q", bare.Error())
	}

	var ce *CheckError
	wrapped := fmt.Errorf("configure: %w", err)
	if !errors.As(wrapped, &ce) {
		t.Error("errors.As should find CheckError through wrapping")
	}
}
