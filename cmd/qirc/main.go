package main

import (
	"os"

	"qirc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
