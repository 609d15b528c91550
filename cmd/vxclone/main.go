package main

import (
	"github.com/robotalks/vxclone/pkg/cli/sh"
	"github.com/robotalks/vxclone/pkg/config"

	_ "github.com/robotalks/vxclone/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	config.SetupFlags()
}

func main() {
	sh.Main()
}
