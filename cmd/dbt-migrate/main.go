package main

import (
	"fmt"
	"os"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/cli"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/env"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem/aferofs"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/interaction"
)

func main() {
	// ENVs from OS
	envs, err := env.FromOs()
	if err != nil {
		fmt.Println("cannot load envs: " + err.Error())
		os.Exit(1)
	}

	// Run command
	prompt := interaction.NewPrompt(os.Stdin, os.Stdout, os.Stderr)
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, prompt, envs, aferofs.NewLocalFsFindProjectRoot)
	os.Exit(cmd.Execute())
}
