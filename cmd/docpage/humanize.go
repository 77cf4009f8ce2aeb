package main

import (
	"fmt"

	"github.com/fwojciec/docpage"
)

// Run executes the humanize command.
func (c *HumanizeCmd) Run(deps *Dependencies) error {
	cfg, err := humanizerConfig(c.Locale, c.AllowFuture, false)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	now, err := clock(deps, c.Now)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	t, err := docpage.Parse(c.Timestamp)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, docpage.InWords(t, now(), cfg))
	return nil
}

// errorText returns the message of application errors and the full text
// of anything else.
func errorText(err error) string {
	if docpage.ErrorCode(err) == docpage.EINTERNAL {
		return err.Error()
	}
	return docpage.ErrorMessage(err)
}
