package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

// binaries built by `do build`, keyed by output name.
var binaries = map[string]string{
	"server": "./cmd/server",
	"study":  "./cmd/study",
}

func BuildCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build [server|study]",
		Short: "Build the server and CLI binaries into bin/",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{"server", "study"}
			if len(args) == 1 {
				if _, ok := binaries[args[0]]; !ok {
					return fmt.Errorf("unknown binary %q", args[0])
				}
				names = args
			}
			return build(outDir, names)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "bin", "output directory")
	return cmd
}

func build(outDir string, names []string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	for _, name := range names {
		out := filepath.Join(outDir, name)
		fmt.Printf("==> Building %s...\n", out)
		if err := run("go", "build", "-trimpath", "-o", out, binaries[name]); err != nil {
			return fmt.Errorf("go build %s failed: %w", name, err)
		}
	}

	fmt.Println("==> Done!")
	return nil
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
