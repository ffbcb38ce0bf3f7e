package main

import (
	"github.com/envlens/envlens/cmd"
)

var (
	Version   string
	BuildTime string
)

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
