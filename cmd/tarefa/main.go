package main

import (
	"os"

	"tarefa/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
