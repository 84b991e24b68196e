package ccheck

import (
	"strings"
	"testing"
)

func TestHeaderProbe(t *testing.T) {
	want := "#include <unistd.h>\nint main(void) { return 0; }"
	if got := headerProbe("unistd.h"); got != want {
		t.Errorf("headerProbe() = %q, want %q", got, want)
	}
}

func TestFunctionProbe(t *testing.T) {
	t.Run("no prefix uses dummy declaration", func(t *testing.T) {
		got := functionProbe("shm_open", nil)
		for _, want := range []string{
			"char shm_open (void);",
			"return shm_open();",
			`extern "C"`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("probe missing %q:\n%s", want, got)
			}
		}
		if strings.Contains(got, "&shm_open") {
			t.Errorf("probe should not take the address without includes:\n%s", got)
		}
	})

	t.Run("include in prefix takes the address", func(t *testing.T) {
		got := functionProbe("shm_open", []string{"#include <sys/mman.h>"})
		if !strings.HasPrefix(got, "#include <sys/mman.h>\n") {
			t.Errorf("probe missing prefix:\n%s", got)
		}
		if !strings.Contains(got, "void *a = (void*) &shm_open;") {
			t.Errorf("probe missing address check:\n%s", got)
		}
		if strings.Contains(got, "char shm_open (void);") {
			t.Errorf("dummy declaration would conflict with the real header:\n%s", got)
		}
	})

	t.Run("non-include prefix keeps dummy declaration", func(t *testing.T) {
		got := functionProbe("shm_open", []string{"#define _GNU_SOURCE"})
		if !strings.HasPrefix(got, "#define _GNU_SOURCE\n") {
			t.Errorf("probe missing prefix:\n%s", got)
		}
		if !strings.Contains(got, "char shm_open (void);") {
			t.Errorf("probe missing dummy declaration:\n%s", got)
		}
	})
}

func TestHeaderSymbolProbe(t *testing.T) {
	got := headerSymbolProbe("unistd.h", "environ")
	for _, want := range []string{
		"#include <unistd.h>",
		"#ifndef environ",
		"(void) environ;",
		"#endif",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("probe missing %q:\n%s", want, got)
		}
	}
}
