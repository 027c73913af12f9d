package main

import (
	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <media-id|post-url>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loggedIn(cmd)
			if err != nil {
				return err
			}

			var res *domain.DeleteResult
			if isURL(args[0]) {
				res, err = c.Media.DeleteByURL(cmd.Context(), args[0])
			} else {
				res, err = c.Media.Delete(cmd.Context(), args[0])
			}
			if err != nil {
				return failed("delete", err)
			}
			return printJSON(cmd, res)
		},
	}
}
