package main

import (
	"github.com/draeger-lab/TFpredict-sub001/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
