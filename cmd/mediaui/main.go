package main

import (
	"context"
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	runner := NewRunner(RunnerConfig{})
	if err := runner.App().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mediaui: %v\n", err)
		os.Exit(1)
	}
}
