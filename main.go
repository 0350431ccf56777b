package main

import (
	"github.com/relloyd/deltapipe/cmd"
)

func main() {
	cmd.Execute()
}
