package main

import (
	"github.com/muratoffalex/ytsage/internal/cli"
)

var (
	version   = "dev"
	buildTime string
)

func main() {
	v := version
	if buildTime != "" {
		v += " (built at: " + buildTime + ")"
	}
	cli.Execute(v)
}
