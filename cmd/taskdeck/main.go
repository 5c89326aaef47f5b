package main

import (
	"fmt"
	"os"

	"github.com/taskdeck/taskdeck/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskdeck failed: %v\n", err)
		os.Exit(1)
	}
}
