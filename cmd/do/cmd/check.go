package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

type check struct {
	name string
	bin  string
	args []string
}

func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run gofmt, go vet and go test in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks([]check{
				{name: "gofmt", bin: "gofmt", args: []string{"-l", "cmd", "internal"}},
				{name: "vet", bin: "go", args: []string{"vet", "./..."}},
				{name: "test", bin: "go", args: []string{"test", "-race", "./..."}},
			})
		},
	}
}

func runChecks(checks []check) error {
	start := time.Now()
	var wg sync.WaitGroup
	errCh := make(chan error, len(checks))

	for _, c := range checks {
		wg.Add(1)
		go func(c check) {
			defer wg.Done()

			checkStart := time.Now()
			out, err := exec.Command(c.bin, c.args...).CombinedOutput()
			if len(out) > 0 {
				fmt.Fprintf(os.Stdout, "[%s]\n%s", c.name, out)
			}
			if err != nil {
				errCh <- fmt.Errorf("%s: %w", c.name, err)
				return
			}
			// gofmt -l exits 0 and lists unformatted files
			if c.name == "gofmt" && len(out) > 0 {
				errCh <- fmt.Errorf("%s: files need formatting", c.name)
				return
			}

			fmt.Printf("[%s] ok (%s)\n", c.name, time.Since(checkStart).Round(time.Millisecond))
		}(c)
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
		return fmt.Errorf("checks failed")
	}

	fmt.Printf("done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}
