// Command airdb runs the airport data engine.
package main

import (
	"os"

	"github.com/roach88/airdb/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
