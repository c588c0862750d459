package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/mockuments/cmd/cli/internal/commands"
)

func main() {
	_ = godotenv.Load()

	if err := commands.NewCLI(commands.Options{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
