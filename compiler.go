package ccheck

import (
	"strings"
)

// Compiler is the contract a [Session] delegates to. [Toolchain] is the
// stock implementation; tests substitute fakes to capture invocations.
//
// Every probe returns (false, nil) when the feature is simply absent;
// errors are reserved for invocations that could not run at all.
type Compiler interface {
	// HasFunction reports whether name exists as a linkable function or
	// symbol, with prefix lines prepended to the probe program.
	HasFunction(name string, args, prefix []string) (bool, error)
	// HasHeaderSymbol reports whether header declares symbol, either as a
	// macro or as an object.
	HasHeaderSymbol(header, symbol string, args []string) (bool, error)
	// HasHeader reports whether the named header can be included.
	HasHeader(name string, args []string) (bool, error)
	// Compiles reports whether code compiles (no link step).
	Compiles(code string, args []string) (bool, error)
	// Links reports whether code compiles and links into an executable.
	Links(code string, args []string) (bool, error)
	// WarningToErrorArgs returns the arguments that promote warnings to
	// errors for this compiler.
	WarningToErrorArgs() []string
}

// headerProbe builds the probe program for a header presence check.
func headerProbe(name string) string {
	return strings.Join([]string{
		"#include <" + name + ">",
		"int main(void) { return 0; }",
	}, "\n")
}

// functionProbe builds the probe program for a symbol existence check.
//
// Without includes in the prefix, the classic autoconf form declares the
// symbol with a dummy signature and calls it, so the result depends only
// on the linker finding it. When the prefix includes a real header that
// dummy declaration would conflict, so the probe takes the symbol's
// address instead and lets the header supply the declaration.
func functionProbe(name string, prefix []string) string {
	head := strings.Join(prefix, "\n")
	if head != "" {
		head += "\n"
	}

	if prefixIncludes(prefix) {
		return head + strings.Join([]string{
			"int main(void) {",
			"    void *a = (void*) &" + name + ";",
			"    long long b = (long long) a;",
			"    return (int) b;",
			"}",
		}, "\n")
	}

	return head + strings.Join([]string{
		"#ifdef __cplusplus",
		`extern "C"`,
		"#endif",
		"char " + name + " (void);",
		"int main(void) { return " + name + "(); }",
	}, "\n")
}

// headerSymbolProbe builds the probe program for a declaration-by-name
// check. The #ifndef guard makes macros count as declared without
// expanding them into an expression statement.
func headerSymbolProbe(header, symbol string) string {
	return strings.Join([]string{
		"#include <" + header + ">",
		"int main(void) {",
		"#ifndef " + symbol,
		"    (void) " + symbol + ";",
		"#endif",
		"    return 0;",
		"}",
	}, "\n")
}

func prefixIncludes(prefix []string) bool {
	for _, line := range prefix {
		if strings.Contains(line, "#include") {
			return true
		}
	}
	return false
}
