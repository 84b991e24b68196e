package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/Snaipe/ccheck"
	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
)

// Build metadata injected via ldflags. When built without ldflags (e.g.,
// plain `go build`), these remain at their zero values and the version
// command omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := &cobra.Command{
		Use:   "ccheck",
		Short: "Compiler feature checks with config header generation",
		Long: `ccheck probes the system C/C++ toolchain for features.

It checks symbol existence, declaration presence (bare identifiers or full
prototypes), and header availability, records outcomes under conventional
HAVE_* keys, and can render them into a generated config header. Use it
for configure-style scripts, CI gating, or porting diagnostics.`,
		SilenceUsage: true,
	}

	root.AddCommand(symbolCmd())
	root.AddCommand(declarationCmd())
	root.AddCommand(headerCmd())
	root.AddCommand(envCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

var languageIdentifiers = map[ccheck.Language][]string{
	ccheck.LanguageC:   {"c"},
	ccheck.LanguageCXX: {"cpp", "c++"},
}

// CheckOptions defines the flags shared by the check subcommands.
type CheckOptions struct {
	Language  ccheck.Language `flag:"language" flagshort:"x" flagdescr:"Language to check with (c, cpp)" flagcustom:"true"`
	Args      []string        `flag:"args" flagshort:"a" flagdescr:"Extra compiler arguments"`
	Libraries []string        `flag:"libraries" flagshort:"l" flagdescr:"Libraries to link probes against"`
	Prefix    []string        `flag:"prefix" flagshort:"p" flagdescr:"Source lines prepended to symbol probes"`
	Variable  string          `flag:"variable" flagdescr:"Override the derived HAVE_* key"`
	Required  bool            `flag:"required" flagdescr:"Exit with code 1 when the feature is missing"`
	Output    string          `flag:"output" flagshort:"o" flagdescr:"Write the resulting config header to this file"`
	Guard     string          `flag:"guard" flagdescr:"Include guard for the generated header"`
	JSON      bool            `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *CheckOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *CheckOptions) DefineLanguage(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*ccheck.Language)
	*fieldPtr = ccheck.LanguageC
	return enumflag.New(fieldPtr, "language", languageIdentifiers, enumflag.EnumCaseInsensitive), descr
}

func (o *CheckOptions) DecodeLanguage(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}
	return parseLanguage(s)
}

// options translates the flags into per-check options.
func (o *CheckOptions) options() []ccheck.CheckOption {
	var opts []ccheck.CheckOption
	if len(o.Libraries) > 0 {
		opts = append(opts, ccheck.WithLibraries(o.Libraries...))
	}
	if len(o.Prefix) > 0 {
		opts = append(opts, ccheck.WithPrefix(o.Prefix...))
	}
	if o.Variable != "" {
		opts = append(opts, ccheck.WithVariable(o.Variable))
	}
	if o.Required {
		opts = append(opts, ccheck.WithRequired())
	}
	return opts
}

func symbolCmd() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "symbol NAME",
		Short: "Check that a symbol exists",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(opts, func(s *ccheck.Session) (bool, error) {
				return s.Symbol(args[0], opts.options()...)
			})
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func declarationCmd() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "declaration HEADER DECL",
		Short: "Check that a header declares an identifier or prototype",
		Long: `Check that HEADER declares DECL.

DECL is either a bare identifier ("environ") or a full prototype
("int mincore(void *, size_t, unsigned char *)"). Prototypes are verified
with warnings as errors, so an incompatible signature fails the check.`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(opts, func(s *ccheck.Session) (bool, error) {
				return s.Declaration(args[0], args[1], opts.options()...)
			})
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func headerCmd() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "header NAME",
		Short: "Check that a header can be included",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(opts, func(s *ccheck.Session) (bool, error) {
				return s.Header(args[0], opts.options()...)
			})
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// runCheck detects a toolchain, runs one check through a fresh session,
// and handles output, config header writing, and exit status.
func runCheck(opts *CheckOptions, run func(*ccheck.Session) (bool, error)) error {
	tc, err := ccheck.DetectToolchain(opts.Language)
	if err != nil {
		return err
	}

	sessionOpts := []ccheck.SessionOption{
		ccheck.WithLanguage(opts.Language),
		ccheck.WithCompileArgs(opts.Args...),
	}
	if !opts.JSON {
		sessionOpts = append(sessionOpts, ccheck.WithCheckLog(os.Stdout))
	}
	s := ccheck.NewSession(tc, sessionOpts...)

	ok, err := run(s)

	var ce *ccheck.CheckError
	if errors.As(err, &ce) {
		if opts.JSON {
			printJSON(map[string]any{
				"ok":   false,
				"kind": ce.Kind,
				"name": ce.Name,
			})
		} else {
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", ce)
		}
		os.Exit(1)
	}
	if err != nil {
		return err
	}

	if opts.JSON {
		if err := printJSON(map[string]any{"ok": ok}); err != nil {
			return err
		}
	}

	if opts.Output != "" {
		if err := writeConfigHeader(s.Config(), opts.Output, opts.Guard); err != nil {
			return err
		}
	}
	return nil
}

func writeConfigHeader(config *ccheck.ConfigData, path, guard string) error {
	if guard == "" {
		guard = headerGuard(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := config.WriteHeader(f, guard); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// headerGuard derives an include guard from the output file name
// ("build/config.h" becomes "CONFIG_H").
func headerGuard(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	guard := make([]byte, 0, len(base))
	for i := 0; i < len(base); i++ {
		c := base[i]
		switch {
		case c >= 'a' && c <= 'z':
			guard = append(guard, c-'a'+'A')
		case c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
			guard = append(guard, c)
		default:
			guard = append(guard, '_')
		}
	}
	return string(guard)
}

// EnvOptions defines flags for the env subcommand.
type EnvOptions struct {
	JSON bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *EnvOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func envCmd() *cobra.Command {
	opts := &EnvOptions{}

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show detected toolchains and host machine",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			host := ccheck.HostMachine()
			paths := map[string]string{}
			for _, lang := range ccheck.LanguageValues() {
				tc, err := ccheck.DetectToolchain(lang)
				if err != nil {
					paths[lang.String()] = ""
					continue
				}
				paths[lang.String()] = tc.Path()
			}

			if opts.JSON {
				return printJSON(map[string]any{
					"host":       host.String(),
					"toolchains": paths,
				})
			}

			fmt.Printf("Host: %s\n", host)
			for _, lang := range ccheck.LanguageValues() {
				path := paths[lang.String()]
				if path == "" {
					path = "not found"
				}
				fmt.Printf("%-4s %s\n", lang.String()+":", path)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tool version and host machine",
		RunE: func(c *cobra.Command, args []string) error {
			if version != "" {
				fmt.Printf("ccheck %s", version)
				if commit != "" {
					fmt.Printf(" (%s)", commit)
				}
				if date != "" {
					fmt.Printf(" built %s", date)
				}
				fmt.Println()
			} else {
				fmt.Println("ccheck (dev)")
			}

			fmt.Printf("Host: %s\n", ccheck.HostMachine())
			return nil
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseLanguage(input string) (ccheck.Language, error) {
	var lang ccheck.Language
	enumValue := enumflag.New(&lang, "language", languageIdentifiers, enumflag.EnumCaseInsensitive)
	if err := enumValue.Set(strings.TrimSpace(input)); err != nil {
		return 0, fmt.Errorf("unknown language: %q (available: %s)", input, strings.Join(ccheck.LanguageNames(), ", "))
	}
	return lang, nil
}
