// Package ccheck provides autoconf-style C/C++ compiler feature checks
// with convention-based configuration output.
//
// The package probes a toolchain for the presence of symbols, declarations
// (including full prototypes), and headers, and records each positive
// outcome in a [ConfigData] object under a derived HAVE_* key that can be
// rendered into a generated config header.
//
// # API Model
//
// ccheck intentionally exposes two layers:
//   - [Session] for convention-driven checks that derive configuration keys
//     and record outcomes
//   - [Compiler]/[Toolchain] for the raw probe primitives a session
//     delegates to
//
// Keep these layers separate: a [Session] never runs the compiler itself,
// it only builds argument lists and forwards to its [Compiler]. Tests can
// substitute a fake [Compiler] to capture exactly what a check would run.
//
// # Quick Check
//
// Detect a toolchain and probe a few features:
//
//	tc, err := ccheck.DetectToolchain(ccheck.LanguageC)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s := ccheck.NewSession(tc, ccheck.WithCompileArgs("-D_GNU_SOURCE"))
//	s.Symbol("shm_open", ccheck.WithLibraries("rt"))
//	s.Header("sys/mman.h")
//	s.Declaration("unistd.h", "environ")
//	s.Config().WriteHeader(os.Stdout, "CONFIG_H")
//
// # Key Derivation
//
// Every check derives its configuration key from the checked name by
// uppercasing it, replacing every non-word character with an underscore,
// and prefixing HAVE_. A successful check for "sys/mman.h" therefore sets
// HAVE_SYS_MMAN_H, and "printf" sets HAVE_PRINTF. Nothing is written for a
// failed check; absence of the key is the "feature not present" signal.
// Use [WithVariable] to override the derived key for a single check.
//
// # Declarations
//
// [Session.Declaration] accepts either a bare identifier ("environ") or a
// full prototype ("int mincore(void *, size_t, unsigned char *)"). The two
// forms are distinguished by parsing, not guessing: a bare identifier runs
// a header-symbol probe, while a prototype is rewritten into a pointer
// assignment and compiled with warnings as errors, so a declaration with
// the wrong signature fails the check.
//
// # Errors
//
// A check that simply finds nothing returns (false, nil); that is an
// expected outcome, not an error. Errors are reserved for malformed input
// (an unparsable declaration string) and toolchain failures (no compiler
// found, compiler failed to start), which propagate unmodified from the
// underlying [Compiler]. A check marked [WithRequired] that fails returns
// a *[CheckError] naming the kind, name, and language of the failed check.
package ccheck
