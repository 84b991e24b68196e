package ccheck

import (
	"errors"
	"fmt"
)

// ErrNoCompiler is returned when no usable compiler can be found for a language.
var ErrNoCompiler = errors.New("no compiler found")

// Language identifies the compiler language a check runs under.
type Language int

const (
	// LanguageC checks against the C compiler (cc, gcc, clang or $CC).
	LanguageC Language = iota
	// LanguageCXX checks against the C++ compiler (c++, g++, clang++ or $CXX).
	LanguageCXX
)

var languageNames = map[Language]string{
	LanguageC:   "c",
	LanguageCXX: "cpp",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Language(%d)", l)
}

// LanguageValues returns all supported languages in stable order.
func LanguageValues() []Language {
	return []Language{LanguageC, LanguageCXX}
}

// LanguageNames returns the names of all supported languages in stable order.
func LanguageNames() []string {
	values := LanguageValues()
	names := make([]string, 0, len(values))
	for _, l := range values {
		names = append(names, l.String())
	}
	return names
}

// sourceExt returns the probe source file extension for the language.
func (l Language) sourceExt() string {
	if l == LanguageCXX {
		return ".cc"
	}
	return ".c"
}

// CheckError represents a required check whose feature was not found.
type CheckError struct {
	// Kind is the check kind: "symbol", "declaration", or "header".
	Kind     string
	Name     string
	Language Language
	Err      error
}

func (e *CheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s %s required but not found: %v", e.Language, e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("%s %s %s required but not found", e.Language, e.Kind, e.Name)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}
