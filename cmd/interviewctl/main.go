package main

import (
	"fmt"
	"os"

	"interview-assistant/internal/cli"
	"interview-assistant/internal/logger"
)

func main() {
	err := cli.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
