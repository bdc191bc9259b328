package main

import (
	"os"

	"ion/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
