// Command clerk keeps business records as one file per record.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/roach88/clerk/internal/cli"
)

func main() {
	// A .env next to the records may set CLERK_CONFIG and CLERK_STORE.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
