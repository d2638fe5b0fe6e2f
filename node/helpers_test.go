package node

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// fakeTable is a canned ProcessTable.
type fakeTable struct {
	proc Process
	err  error
}

func (f fakeTable) FindByName(name string) (Process, error) {
	return f.proc, f.err
}

// fakeRunner returns canned output per command line and records the
// invocations it saw.
type fakeRunner struct {
	out     map[string]string
	errs    map[string]error
	missing map[string]bool
	calls   []string
}

func (f *fakeRunner) key(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	key := f.key(name, args)
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return f.out[key], err
	}
	if out, ok := f.out[key]; ok {
		return out, nil
	}
	return "", errors.New("exit status 127")
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

// writeProcEntry fabricates a /proc/<pid> entry with the given comm
// and resident page count.
func writeProcEntry(t *testing.T, procRoot string, pid, comm string, rssPages int) {
	t.Helper()

	dir := filepath.Join(procRoot, pid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	stat := pid + " (" + comm + ") S 1 " + pid + " " + pid + " 0 -1 4194304 " +
		"1100 0 2 0 10 5 0 0 20 0 4 0 8912 225693696 " +
		strconv.Itoa(rssPages) + " 18446744073709551615 " +
		"1 1 0 0 0 0 0 0 0 0 0 0 0 17 0 0 0 0 0 0 0 0 0 0 0 0 0\n"

	if err := os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "comm"), []byte(comm+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cmdline"), []byte("/usr/sbin/"+comm+"\x00start\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
}
