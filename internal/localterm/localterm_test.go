package localterm

import (
	"runtime"
	"strings"
	"testing"

	tu "termctl/internal/testutil"
)

func TestDefaultShellHonorsEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("SHELL is not used on windows")
	}
	defer tu.WithEnv(t, "SHELL", "/usr/local/bin/fish")()
	sh, args := DefaultShell()
	if sh != "/usr/local/bin/fish" {
		t.Fatalf("shell = %q, want SHELL value", sh)
	}
	if len(args) != 1 || args[0] != "-l" {
		t.Fatalf("args = %v, want login shell flag", args)
	}
}

func TestDefaultShellFallback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("SHELL is not used on windows")
	}
	defer tu.WithEnv(t, "SHELL", "")()
	sh, _ := DefaultShell()
	if !strings.HasPrefix(sh, "/bin/") {
		t.Fatalf("fallback shell = %q, want a /bin shell", sh)
	}
}
