// Package all registers all shell commands.
package all

import (
	// commands
	_ "github.com/robotalks/vxclone/pkg/cli/cmds/file"
	_ "github.com/robotalks/vxclone/pkg/cli/cmds/ports"
	_ "github.com/robotalks/vxclone/pkg/cli/cmds/radio"
)
