package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

// binaries maps each output in bin/ to its main package.
var binaries = map[string]string{
	"server": "./cmd/server",
	"seed":   "./cmd/seed",
}

func BuildCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "build [binary...]",
		Short: "Build server and seed binaries into bin/ in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "rebuild even when up to date")
	return cmd
}

func runBuild(names []string, force bool) error {
	if len(names) == 0 {
		for name := range binaries {
			names = append(names, name)
		}
	}
	for _, name := range names {
		if _, ok := binaries[name]; !ok {
			return fmt.Errorf("unknown binary %q", name)
		}
	}

	sources := goSources("internal")
	start := time.Now()
	var wg sync.WaitGroup
	errCh := make(chan error, len(names))

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			pkg := binaries[name]
			out := filepath.Join("bin", name)
			inputs := append(goSources(strings.TrimPrefix(pkg, "./")), sources...)
			inputs = append(inputs, "go.mod")
			if !force && isUpToDate(out, inputs) {
				fmt.Printf("[%s] skipped\n", name)
				return
			}

			buildStart := time.Now()
			cmd := exec.Command("go", "build", "-o", out, pkg)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			err := cmd.Run()
			if err != nil {
				errCh <- fmt.Errorf("%s: %w", name, err)
				return
			}

			fmt.Printf("[%s] done (%s)\n", name, time.Since(buildStart).Round(time.Millisecond))
		}(name)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Println("error:", err)
		}
		return fmt.Errorf("build failed")
	}

	fmt.Printf("done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// goSources lists non-test Go and SQL files under root.
func goSources(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		if strings.HasSuffix(path, ".go") || strings.HasSuffix(path, ".sql") {
			files = append(files, path)
		}
		return nil
	})
	return files
}

func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}
