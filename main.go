package main

import (
	"os"

	"github.com/codereport-dev/codereport/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
