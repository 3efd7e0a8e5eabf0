// Command co2-monitor tracks atmospheric CO₂ and the remaining carbon budget.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/cli"
	"github.com/c0pp3rdru1d/C02-Monitor/pkg/version"
)

func main() {
	os.Exit(extractExitCode(run()))
}

func run() error {
	err := cli.Execute(context.Background(), version.GetVersion())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// extractExitCode maps err to the process exit status: 0 on success, the
// carried code for a FetchExitError, 1 otherwise.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var fetchErr *cli.FetchExitError
	if errors.As(err, &fetchErr) {
		return fetchErr.ExitCode
	}
	return 1
}
