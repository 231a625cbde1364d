package main

import (
	"os"

	"github.com/stake-plus/expertdesk/src/config"
)

func main() {
	config.LoadDotEnv()
	if err := getRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
