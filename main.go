package main

import (
	"os"

	"velero-backup/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
