package main

import (
	"fmt"
	"os"

	"github.com/boundary-cli/boundary/internal/adapters/inbound/cli"
	"github.com/boundary-cli/boundary/internal/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		if domain.IsCheckFailed(err) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
