package ccheck

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Toolchain implements [Compiler] by shelling out to a system compiler
// driver (cc, gcc, clang and friends). Each probe writes a small program
// to a temporary directory and runs one compiler invocation on it.
type Toolchain struct {
	path     string
	language Language
}

// candidate compiler drivers probed in order when no environment override
// is set.
var compilerCandidates = map[Language][]string{
	LanguageC:   {"cc", "gcc", "clang"},
	LanguageCXX: {"c++", "g++", "clang++"},
}

var compilerEnvVars = map[Language]string{
	LanguageC:   "CC",
	LanguageCXX: "CXX",
}

// DetectToolchain finds a compiler for the language. The CC/CXX
// environment variables take precedence over the default candidate list.
// Returns an error wrapping [ErrNoCompiler] when nothing usable is found.
func DetectToolchain(lang Language) (*Toolchain, error) {
	if env := os.Getenv(compilerEnvVars[lang]); env != "" {
		path, err := exec.LookPath(env)
		if err != nil {
			return nil, fmt.Errorf("%w: $%s is %q: %v", ErrNoCompiler, compilerEnvVars[lang], env, err)
		}
		return NewToolchain(path, lang), nil
	}

	for _, candidate := range compilerCandidates[lang] {
		path, err := exec.LookPath(candidate)
		if err == nil {
			return NewToolchain(path, lang), nil
		}
	}
	return nil, fmt.Errorf("%w for language %s", ErrNoCompiler, lang)
}

// NewToolchain wraps an explicit compiler driver path.
func NewToolchain(path string, lang Language) *Toolchain {
	return &Toolchain{path: path, language: lang}
}

// Path returns the compiler driver path.
func (t *Toolchain) Path() string {
	return t.path
}

// Language returns the language the toolchain compiles.
func (t *Toolchain) Language() Language {
	return t.language
}

// HasFunction reports whether name exists as a linkable function or symbol.
func (t *Toolchain) HasFunction(name string, args, prefix []string) (bool, error) {
	return t.Links(functionProbe(name, prefix), args)
}

// HasHeaderSymbol reports whether header declares symbol.
func (t *Toolchain) HasHeaderSymbol(header, symbol string, args []string) (bool, error) {
	return t.Compiles(headerSymbolProbe(header, symbol), args)
}

// HasHeader reports whether the named header can be included.
func (t *Toolchain) HasHeader(name string, args []string) (bool, error) {
	return t.Compiles(headerProbe(name), args)
}

// Compiles reports whether code compiles, without linking.
func (t *Toolchain) Compiles(code string, args []string) (bool, error) {
	return t.probe(code, args, false)
}

// Links reports whether code compiles and links into an executable.
func (t *Toolchain) Links(code string, args []string) (bool, error) {
	return t.probe(code, args, true)
}

// WarningToErrorArgs returns the warnings-as-errors arguments.
// All supported drivers speak the GCC dialect.
func (t *Toolchain) WarningToErrorArgs() []string {
	return []string{"-Werror"}
}

// probe runs one compiler invocation on code. A non-zero compiler exit is
// a negative probe result, not an error; only a compiler that cannot be
// started at all reports an error.
func (t *Toolchain) probe(code string, args []string, link bool) (bool, error) {
	dir, err := os.MkdirTemp("", "ccheck-")
	if err != nil {
		return false, fmt.Errorf("probe workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "probe"+t.language.sourceExt())
	if err := os.WriteFile(src, []byte(code), 0o644); err != nil {
		return false, fmt.Errorf("write probe source: %w", err)
	}

	out := filepath.Join(dir, "probe.out")
	argv := make([]string, 0, len(args)+4)
	if !link {
		argv = append(argv, "-c")
	}
	argv = append(argv, src, "-o", out)
	// Extra arguments last so -l flags stay after the source object.
	argv = append(argv, args...)

	err = exec.Command(t.path, argv...).Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("invoke %s: %w", t.path, err)
}
