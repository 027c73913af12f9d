package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOembedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "oembed <post-url>",
		Short: "Resolve a public post URL without logging in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClients()
			if err != nil {
				return err
			}

			out, err := c.Oembed.Resolve(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("oembed lookup failed: %w", err)
			}
			return printJSON(cmd, out)
		},
	}
}
