package main

import (
	"strings"
	"testing"

	"github.com/Snaipe/ccheck"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  ccheck.Language
	}{
		{"c", ccheck.LanguageC},
		{"C", ccheck.LanguageC},
		{"cpp", ccheck.LanguageCXX},
		{"CPP", ccheck.LanguageCXX},
		{"c++", ccheck.LanguageCXX},
		{" c ", ccheck.LanguageC},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLanguage(tt.input)
			if err != nil {
				t.Fatalf("parseLanguage(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseLanguage(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLanguage_Unknown(t *testing.T) {
	_, err := parseLanguage("rust")
	if err == nil {
		t.Fatal("parseLanguage(rust) expected error")
	}

	msg := err.Error()
	if !strings.Contains(msg, `unknown language: "rust"`) {
		t.Fatalf("error %q missing unknown language context", msg)
	}
	if !strings.Contains(msg, "available:") {
		t.Fatalf("error %q missing available languages", msg)
	}
}

func TestHeaderGuard(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"config.h", "CONFIG_H"},
		{"build/config.h", "CONFIG_H"},
		{"my-config.h.in", "MY_CONFIG_H_IN"},
		{"Config2.H", "CONFIG2_H"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := headerGuard(tt.path); got != tt.want {
				t.Errorf("headerGuard(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckOptions_Options(t *testing.T) {
	empty := &CheckOptions{}
	if got := empty.options(); len(got) != 0 {
		t.Errorf("options() = %d options for empty flags, want 0", len(got))
	}

	full := &CheckOptions{
		Libraries: []string{"rt"},
		Prefix:    []string{"#include <sys/mman.h>"},
		Variable:  "HAVE_X",
		Required:  true,
	}
	if got := full.options(); len(got) != 4 {
		t.Errorf("options() = %d options, want 4", len(got))
	}
}
