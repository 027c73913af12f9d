package main

import (
	"fmt"
	"os"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	var (
		photoPath string
		caption   string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a photo and publish it with a caption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			photo, err := os.ReadFile(photoPath)
			if err != nil {
				return fmt.Errorf("failed to read photo: %w", err)
			}

			c, err := loggedIn(cmd)
			if err != nil {
				return err
			}

			res, err := c.Media.Publish(cmd.Context(), domain.PublishCommand{Caption: caption, Photo: photo})
			if err != nil {
				return failed("publish", err)
			}
			return printJSON(cmd, res)
		},
	}

	cmd.Flags().StringVar(&photoPath, "photo", "", "path to the JPEG to publish")
	cmd.Flags().StringVar(&caption, "caption", "", "post caption")
	_ = cmd.MarkFlagRequired("photo")
	return cmd
}
