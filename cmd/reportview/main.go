// Command reportview renders code analyzer reports in the terminal.
package main

import (
	"os"

	"github.com/JonMunkholm/reportviewer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
