package main

import (
	"os"

	"github.com/yaozhiwang/chatgpt-sugar/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
