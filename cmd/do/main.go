package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/lumenfide/lumen/cmd/do/cmd"

	"github.com/spf13/cobra"
)

const (
	installedPath = "bin/do"
	sourceDir     = "cmd/do"
)

func main() {
	err := refreshBinary()
	if err != nil {
		fmt.Fprintln(os.Stderr, "do: stale binary:", err)
	}

	rootCmd := &cobra.Command{
		Use:          "do",
		Short:        "Lumen development tasks",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		cmd.DevCmd(),
		cmd.BuildCmd(),
		cmd.MigrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// refreshBinary rebuilds an installed bin/do whose sources have changed and
// replaces the running process with the new build. It is a no-op under
// `go run`. On success it does not return.
func refreshBinary() error {
	exe, err := os.Executable()
	if err != nil || !strings.HasSuffix(exe, installedPath) {
		return nil
	}

	info, err := os.Stat(exe)
	if err != nil {
		return nil
	}
	if !changedSince(sourceDir, info.ModTime()) {
		return nil
	}

	fmt.Println("cmd/do changed, rebuilding", installedPath)
	build := exec.Command("go", "build", "-o", exe, "./"+sourceDir)
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	err = build.Run()
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	return syscall.Exec(exe, os.Args, os.Environ())
}

// changedSince reports whether any Go file under dir is newer than t.
func changedSince(dir string, t time.Time) bool {
	changed := false
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".go" {
			return nil
		}
		info, err := d.Info()
		if err == nil && info.ModTime().After(t) {
			changed = true
			return filepath.SkipAll
		}
		return nil
	})
	return changed
}
