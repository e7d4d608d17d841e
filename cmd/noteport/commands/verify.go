package commands

import (
	"fmt"

	"git.home.luguber.info/inful/noteport/internal/linkcheck"
)

// VerifyCmd implements the 'verify' command: check a finished export for
// dangling internal references.
type VerifyCmd struct {
	Dir string `arg:"" help:"Export directory to verify"`
}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	if _, err := LoadConfig(root); err != nil {
		return err
	}

	problems, err := linkcheck.VerifyDir(v.Dir)
	if err != nil {
		return fmt.Errorf("verify %s: %w", v.Dir, err)
	}
	if len(problems) == 0 {
		fmt.Println("No dangling references found")
		return nil
	}
	for _, p := range problems {
		fmt.Println(p.String())
	}
	return fmt.Errorf("found %d dangling reference(s)", len(problems))
}
