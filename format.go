package ccheck

import (
	"fmt"
	"io"
	"strings"
)

// String returns a human-readable summary of the stored configuration,
// one "KEY = value" line per key in sorted order.
func (c *ConfigData) String() string {
	var b strings.Builder
	for _, k := range c.Keys() {
		v, _ := c.Get(k)
		fmt.Fprintf(&b, "%s = %v\n", k, v)
	}
	return b.String()
}

// WriteHeader renders the configuration as a C config header: one #define
// per key in sorted order, wrapped in an include guard when guard is
// non-empty. False booleans are emitted as a commented-out #undef so the
// generated header documents checks that ran and failed.
func (c *ConfigData) WriteHeader(w io.Writer, guard string) error {
	var b strings.Builder

	b.WriteString("/* Autogenerated by ccheck. Do not edit. */\n")
	if guard != "" {
		fmt.Fprintf(&b, "#ifndef %s\n#define %s\n", guard, guard)
	}
	b.WriteString("\n")

	for _, k := range c.Keys() {
		v, _ := c.Get(k)
		if val, ok := v.(bool); ok && !val {
			fmt.Fprintf(&b, "/* #undef %s */\n", k)
			continue
		}
		fmt.Fprintf(&b, "#define %s %s\n", k, defineValue(v))
	}

	if guard != "" {
		fmt.Fprintf(&b, "\n#endif /* %s */\n", guard)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
