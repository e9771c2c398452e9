package cli

import (
	"fmt"

	"github.com/blog-engagement-api/internal/repository"
	"github.com/blog-engagement-api/internal/service"
	"github.com/spf13/cobra"
)

// withServices opens the configured store for the duration of fn
func (a *app) withServices(cmd *cobra.Command, fn func(*service.Services) error) error {
	log, err := a.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	store, err := repository.Open(a.cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(service.NewServices(store, log))
}

func newLikesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "likes <article-id>",
		Short: "Print an article's like count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd, func(services *service.Services) error {
				result, err := services.Like.GetCount(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", result.Count)
				return nil
			})
		},
	}
}

func newCommentsCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "comments <article-id>",
		Short: "Dump an article's comments, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd, func(services *service.Services) error {
				_, err := services.Export.ExportComments(cmd.Context(), cmd.OutOrStdout(), args[0], format)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", service.FormatNDJSON, "output format: json, ndjson or csv")
	return cmd
}
