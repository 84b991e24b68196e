package ccheck

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigData is a configuration sink: a unique-key store of values destined
// for a generated config header. Re-setting an existing key is allowed and
// replaces the previous value, matching configuration-data semantics of
// build systems where repeated identical checks re-record their outcome.
//
// ConfigData is not safe for concurrent use; configuration runs are
// single-threaded by construction.
type ConfigData struct {
	values map[string]any
}

// NewConfigData creates an empty configuration sink.
func NewConfigData() *ConfigData {
	return &ConfigData{values: make(map[string]any)}
}

// Set stores value under key, replacing any previous value.
// Supported value kinds are bool, integers, and strings; anything else is
// rendered with its default formatting when the header is written.
func (c *ConfigData) Set(key string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
}

// SetQuoted stores value under key as a C string literal, escaping
// backslashes and double quotes.
func (c *ConfigData) SetQuoted(key, value string) {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	c.Set(key, `"`+escaped+`"`)
}

// Get returns the value stored under key and whether it is present.
func (c *ConfigData) Get(key string) (any, bool) {
	if c == nil || c.values == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is present.
func (c *ConfigData) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Keys returns all keys in sorted order.
func (c *ConfigData) Keys() []string {
	if c == nil || c.values == nil {
		return nil
	}
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (c *ConfigData) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// defineValue renders a stored value as the replacement text of a #define.
func defineValue(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "1"
		}
		return "0"
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
