package main

import (
	"os"

	"excel-interviewer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
