package main

import (
	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <media-id|post-url>",
		Short: "Show a media record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loggedIn(cmd)
			if err != nil {
				return err
			}

			var rec *domain.MediaRecord
			if isURL(args[0]) {
				rec, err = c.Media.GetByURL(cmd.Context(), args[0])
			} else {
				rec, err = c.Media.Get(cmd.Context(), args[0])
			}
			if err != nil {
				return failed("get", err)
			}
			return printJSON(cmd, rec)
		},
	}
}
