// Package commands contains the CLI commands for the pathkit tools.
package commands

import (
	"github.com/hay-kot/pathkit/internal/core"
)

type Controller struct {
	Flags  *core.Flags
	Config core.ConfigFile
}

func NewController(flags *core.Flags, cfg core.ConfigFile) *Controller {
	return &Controller{
		Flags:  flags,
		Config: cfg,
	}
}
