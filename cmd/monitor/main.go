package main

import (
	"os"

	"github.com/linyc/twmonitor/cmd/monitor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
