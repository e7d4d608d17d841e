package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/noteport/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory to place the generated config file in"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	cfgPath := root.Config
	if i.Output != "" {
		cfgPath = filepath.Join(i.Output, "noteport.yaml")
	}
	fmt.Printf("Writing configuration to %s\n", cfgPath)
	if err := config.WriteDefault(cfgPath, i.Force); err != nil {
		return err
	}
	fmt.Println("initialized successfully")
	return nil
}
