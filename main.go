package main

import (
	"os"

	"github.com/openscan/vuln-manager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
