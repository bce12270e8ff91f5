package cli

import (
	"os"
	"path/filepath"

	"notesflow-cli/internal/api"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile commands",
	}
	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileEditCmd(app))
	cmd.AddCommand(newProfileAvatarCmd(app))
	cmd.AddCommand(newProfileCoverCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the authenticated user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			prof, err := c.Profile.Get(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": prof})
		},
	}
	return cmd
}

func newProfileEditCmd(app *App) *cobra.Command {
	var displayName, bio, linkedin, github, twitter, website string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit profile fields (only the given fields change)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var upd api.ProfileUpdate
			if cmd.Flags().Changed("display-name") {
				upd.DisplayName = &displayName
			}
			if cmd.Flags().Changed("bio") {
				upd.Bio = &bio
			}
			if cmd.Flags().Changed("linkedin") {
				upd.LinkedinURL = &linkedin
			}
			if cmd.Flags().Changed("github") {
				upd.GithubURL = &github
			}
			if cmd.Flags().Changed("twitter") {
				upd.TwitterURL = &twitter
			}
			if cmd.Flags().Changed("website") {
				upd.WebsiteURL = &website
			}

			prof, err := c.Profile.Update(cmd.Context(), upd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": prof})
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&bio, "bio", "", "Bio (max 500 characters)")
	cmd.Flags().StringVar(&linkedin, "linkedin", "", "LinkedIn URL")
	cmd.Flags().StringVar(&github, "github", "", "GitHub URL")
	cmd.Flags().StringVar(&twitter, "twitter", "", "Twitter URL")
	cmd.Flags().StringVar(&website, "website", "", "Website URL")
	return cmd
}

func uploadFile(cmd *cobra.Command, app *App, path string, upload func(*api.Client, string, *os.File) (*api.Upload, error)) error {
	c, err := newClient(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer f.Close()

	up, err := upload(c, filepath.Base(path), f)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": up})
}

func newProfileAvatarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar <image-file>",
		Short: "Upload a profile avatar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uploadFile(cmd, app, args[0], func(c *api.Client, name string, f *os.File) (*api.Upload, error) {
				return c.Profile.UploadAvatar(cmd.Context(), name, f)
			})
		},
	}
	return cmd
}

func newProfileCoverCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cover <image-file>",
		Short: "Upload a profile cover photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uploadFile(cmd, app, args[0], func(c *api.Client, name string, f *os.File) (*api.Upload, error) {
				return c.Profile.UploadCover(cmd.Context(), name, f)
			})
		},
	}
	return cmd
}
