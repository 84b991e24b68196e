package ccheck

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Session drives convention-based feature checks against a [Compiler].
// It holds the global compile arguments and the default configuration sink
// for one configuration run. Sessions are independent: multiple sessions
// never share state.
//
// A Session is not safe for concurrent use; configuration runs are
// single-threaded by construction.
type Session struct {
	compiler Compiler
	language Language
	args     []string
	config   *ConfigData
	checkLog io.Writer
}

// SessionOption configures a [Session] at construction or via [Session.Setup].
type SessionOption func(*Session)

// WithCompileArgs sets the extra arguments appended to every underlying
// compiler invocation (e.g. feature-test macros like -D_GNU_SOURCE).
// It replaces any previously set arguments.
func WithCompileArgs(args ...string) SessionOption {
	return func(s *Session) {
		s.args = args
	}
}

// WithDefaultConfig sets the default configuration sink checks record into.
func WithDefaultConfig(config *ConfigData) SessionOption {
	return func(s *Session) {
		s.config = config
	}
}

// WithLanguage sets the language checks report under. It does not change
// the session's compiler; pair it with a [Toolchain] for the same language.
func WithLanguage(l Language) SessionOption {
	return func(s *Session) {
		s.language = l
	}
}

// WithCheckLog sets a writer that receives one human-readable line per
// check ("Checking that symbol printf exists: YES"). Nil disables logging.
func WithCheckLog(w io.Writer) SessionOption {
	return func(s *Session) {
		s.checkLog = w
	}
}

// NewSession creates a check session delegating to c.
func NewSession(c Compiler, opts ...SessionOption) *Session {
	s := &Session{compiler: c}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Setup replaces session state with the given options, last write wins.
// Checks performed before Setup keep the outcomes they already recorded.
func (s *Session) Setup(opts ...SessionOption) {
	for _, opt := range opts {
		opt(s)
	}
}

// Config returns the session's default configuration sink, creating an
// empty one on first use.
func (s *Session) Config() *ConfigData {
	if s.config == nil {
		s.config = NewConfigData()
	}
	return s.config
}

// checkOptions holds the per-check options every check operation accepts.
type checkOptions struct {
	libraries []string
	args      []string
	config    *ConfigData
	prefix    []string
	variable  string
	required  bool
}

// CheckOption configures a single check call.
type CheckOption func(*checkOptions)

// WithLibraries links the probe against the named libraries (-l<name>).
func WithLibraries(libraries ...string) CheckOption {
	return func(o *checkOptions) {
		o.libraries = append(o.libraries, libraries...)
	}
}

// WithArgs appends extra compiler arguments for this check only,
// after the session's own arguments.
func WithArgs(args ...string) CheckOption {
	return func(o *checkOptions) {
		o.args = append(o.args, args...)
	}
}

// WithConfig records this check's outcome into config instead of the
// session's default sink.
func WithConfig(config *ConfigData) CheckOption {
	return func(o *checkOptions) {
		o.config = config
	}
}

// WithPrefix prepends source lines (typically #include directives) to the
// symbol probe program.
func WithPrefix(lines ...string) CheckOption {
	return func(o *checkOptions) {
		o.prefix = append(o.prefix, lines...)
	}
}

// WithVariable overrides the derived HAVE_* configuration key.
func WithVariable(name string) CheckOption {
	return func(o *checkOptions) {
		o.variable = name
	}
}

// WithRequired makes a failed check return a *[CheckError] instead of
// (false, nil).
func WithRequired() CheckOption {
	return func(o *checkOptions) {
		o.required = true
	}
}

func applyCheckOptions(opts []CheckOption) *checkOptions {
	o := &checkOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Symbol checks that name exists as a linkable symbol, optionally against
// the libraries from [WithLibraries] and with the include lines from
// [WithPrefix]. On success it records 1 under the derived HAVE_* key.
func (s *Session) Symbol(name string, opts ...CheckOption) (bool, error) {
	if name == "" {
		return false, errors.New("symbol: empty name")
	}
	o := applyCheckOptions(opts)

	ok, err := s.compiler.HasFunction(name, s.compileArgs(o), o.prefix)
	if err != nil {
		return false, err
	}

	s.checklog("symbol", name, ok)
	s.record(ok, name, o)
	if !ok && o.required {
		return false, &CheckError{Kind: "symbol", Name: name, Language: s.language}
	}
	return ok, nil
}

// Declaration checks that decl is declared by header. A bare identifier is
// probed as a header symbol (macros count); a full prototype is rewritten
// into a pointer assignment and compiled with warnings as errors, so a
// declaration with an incompatible signature fails. On success it records
// 1 under the HAVE_* key derived from the declared identifier.
func (s *Session) Declaration(header, decl string, opts ...CheckOption) (bool, error) {
	if header == "" {
		return false, errors.New("declaration: empty header")
	}
	o := applyCheckOptions(opts)

	d, err := ParseDecl(decl)
	if err != nil {
		return false, fmt.Errorf("declaration %q: %w", decl, err)
	}

	var ok bool
	if d.Identifier {
		ok, err = s.compiler.HasHeaderSymbol(header, d.Name, s.compileArgs(o))
		if err != nil {
			return false, err
		}
		s.checklog("declaration for", d.Name, ok)
	} else {
		args := append(s.compileArgs(o), s.compiler.WarningToErrorArgs()...)
		ok, err = s.compiler.Compiles(prototypeProbe(header, d), args)
		if err != nil {
			return false, err
		}
		s.prototypeLog(d, ok)
	}

	s.record(ok, d.Name, o)
	if !ok && o.required {
		return false, &CheckError{Kind: "declaration", Name: d.Name, Language: s.language}
	}
	return ok, nil
}

// Header checks that the named header can be included. On success it
// records 1 under the derived HAVE_* key, with slashes and dots
// normalized to underscores ("sys/mman.h" sets HAVE_SYS_MMAN_H).
func (s *Session) Header(name string, opts ...CheckOption) (bool, error) {
	if name == "" {
		return false, errors.New("header: empty name")
	}
	o := applyCheckOptions(opts)

	ok, err := s.compiler.HasHeader(name, s.compileArgs(o))
	if err != nil {
		return false, err
	}

	s.checklog("header", name, ok)
	s.record(ok, name, o)
	if !ok && o.required {
		return false, &CheckError{Kind: "header", Name: name, Language: s.language}
	}
	return ok, nil
}

// compileArgs builds the argument list for one check: session arguments,
// then per-check arguments, then libraries as -l flags.
func (s *Session) compileArgs(o *checkOptions) []string {
	args := make([]string, 0, len(s.args)+len(o.args)+len(o.libraries))
	args = append(args, s.args...)
	args = append(args, o.args...)
	for _, lib := range o.libraries {
		args = append(args, "-l"+lib)
	}
	return args
}

var nonWordRe = regexp.MustCompile(`\W`)

// configKey derives the conventional configuration key for a checked name.
func configKey(name string) string {
	return "HAVE_" + nonWordRe.ReplaceAllString(strings.ToUpper(name), "_")
}

// record writes the check outcome into the active sink: the per-check sink
// if one was given, else the session default. Only positive outcomes are
// recorded; an absent key means "not found".
func (s *Session) record(ok bool, name string, o *checkOptions) {
	if !ok {
		return
	}
	config := o.config
	if config == nil {
		config = s.Config()
	}
	key := o.variable
	if key == "" {
		key = configKey(name)
	}
	config.Set(key, 1)
}

func (s *Session) checklog(kind, name string, ok bool) {
	if s.checkLog == nil {
		return
	}
	fmt.Fprintf(s.checkLog, "Checking that %s %s exists: %s\n", kind, name, yesno(ok))
}

func (s *Session) prototypeLog(d *Decl, ok bool) {
	if s.checkLog == nil {
		return
	}
	fmt.Fprintf(s.checkLog, "Checking that %s has prototype %s: %s\n", d.Name, d, yesno(ok))
}

func yesno(ok bool) string {
	if ok {
		return "YES"
	}
	return "NO"
}
