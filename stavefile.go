//go:build stave

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
)

// Default target when running `stave` with no arguments.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"i": Install,
	"c": Clean,
	"f": Fixture,
}

const (
	binaryName = "targetsweep"
	modulePath = "github.com/jamesainslie/targetsweep"
	mainPkg    = "./cmd/targetsweep"
	binDir     = "bin"

	// fixtureDir holds a sample workspace for trying the TUI by hand.
	fixtureDir = "bin/fixture"
)

// All runs lint and tests, then builds.
func All() error {
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Build compiles the targetsweep binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating bin directory: %w", err)
	}
	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", exe(filepath.Join(binDir, binaryName)), mainPkg)
}

// Install copies the built binary to GOBIN, GOPATH/bin or /usr/local/bin.
func Install() error {
	st.Deps(Build)

	dir, err := installDir()
	if err != nil {
		return err
	}

	src := exe(filepath.Join(binDir, binaryName))
	dst := exe(filepath.Join(dir, binaryName))
	if st.Verbose() {
		fmt.Printf("Installing %s to %s\n", src, dst)
	}
	return sh.Copy(dst, src)
}

// Uninstall removes the installed binary.
func Uninstall() error {
	dir, err := installDir()
	if err != nil {
		return err
	}

	target := exe(filepath.Join(dir, binaryName))
	if _, err := os.Stat(target); os.IsNotExist(err) {
		if st.Verbose() {
			fmt.Printf("Binary not found at %s, nothing to uninstall\n", target)
		}
		return nil
	}
	return os.Remove(target)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fixture creates a workspace of Cargo projects under bin/fixture, including
// a nested project, hidden and symlinked directories, and manifest-only and
// target-only directories that must not match.
func Fixture() error {
	if err := sh.Rm(fixtureDir); err != nil {
		return err
	}

	projects := []string{"alpha", "beta", "beta/crates/inner", "gamma/sub", ".hidden/skipped"}
	for _, p := range projects {
		dir := filepath.Join(fixtureDir, p)
		if err := os.MkdirAll(filepath.Join(dir, "target", "debug"), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \""+filepath.Base(p)+"\"\n"), 0o644); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Join(fixtureDir, "target-only", "target"), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(fixtureDir, "manifest-only"), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(fixtureDir, "manifest-only", "Cargo.toml"), nil, 0o644); err != nil {
		return err
	}

	if runtime.GOOS != "windows" {
		if err := os.Symlink("alpha", filepath.Join(fixtureDir, "alpha-link")); err != nil {
			return err
		}
	}

	fmt.Printf("Fixture ready: %s (expect 4 matches)\n", fixtureDir)
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if st.Verbose() {
		fmt.Printf("Removing %s/\n", binDir)
	}
	return sh.Rm(binDir + "/")
}

// Fmt formats all Go code.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("running gofmt: %w", err)
	}
	return sh.Run("goimports", "-w", ".")
}

// Tidy runs go mod tidy.
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// installDir resolves the directory Install copies into.
func installDir() (string, error) {
	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return "", fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin != "" {
		return bin, nil
	}

	gopath, err := sh.Output(gocmd, "env", "GOPATH")
	if err != nil {
		return "", fmt.Errorf("determining GOPATH: %w", err)
	}
	if gopath != "" {
		return filepath.Join(gopath, "bin"), nil
	}
	return "/usr/local/bin", nil
}

// exe appends .exe on Windows.
func exe(path string) string {
	if runtime.GOOS == "windows" {
		return path + ".exe"
	}
	return path
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version := "dev"
	commit := "unknown"
	date := time.Now().Format(time.RFC3339)

	if v, err := sh.Output("git", "describe", "--tags", "--always"); err == nil && v != "" {
		version = strings.TrimSpace(v)
	}
	if c, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && c != "" {
		commit = strings.TrimSpace(c)
	}

	pkg := modulePath + "/cmd/targetsweep"
	return fmt.Sprintf(
		"-X %s.version=%s -X %s.commit=%s -X %s.date=%s",
		pkg, version, pkg, commit, pkg, date,
	)
}
