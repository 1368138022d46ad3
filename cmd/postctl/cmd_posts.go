package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dfryer1193/postboard/blog/application"
	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/spf13/cobra"
)

func newListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored posts in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeFn, err := openService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			posts := service.Posts()
			out := cmd.OutOrStdout()
			if len(posts) == 0 {
				fmt.Fprintln(out, "No posts.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPUBLISH DATE\tCATEGORY\tTITLE")
			for _, p := range posts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.PublishDate, p.Category.Label(), p.Title)
			}
			return tw.Flush()
		},
	}
}

func newAddCmd(opts *cliOptions) *cobra.Command {
	var draft domain.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate and store a new post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeFn, err := openService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			post, err := service.Create(cmd.Context(), draft)
			var vErr *application.ValidationError
			if errors.As(err, &vErr) {
				return fmt.Errorf("invalid post: %w", vErr)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created post %s\n", post.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "Post title")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Post description (markdown)")
	cmd.Flags().StringVar(&draft.ImageURL, "image-url", "", "Cover image URL (http or https)")
	cmd.Flags().StringVar(&draft.PublishDate, "publish-date", time.Now().Format(domain.PublishDateLayout), "Publish date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.Category, "category", string(domain.CategoryArticle), "Category: "+categoryList())

	return cmd
}

func newDeleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a post by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeFn, err := openService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			id := args[0]
			if _, ok := service.Get(id); !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No post with id %s\n", id)
				return nil
			}

			if err := service.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %s\n", id)
			return nil
		},
	}
}

func newStatsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show post counts per category and the latest posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeFn, err := openService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			d := service.Dashboard()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Total posts: %d\n", d.Total)
			for _, cc := range d.Categories {
				fmt.Fprintf(out, "  %-10s %d\n", cc.Category.Label(), cc.Count)
			}
			if d.Other > 0 {
				fmt.Fprintf(out, "  %-10s %d\n", "Other", d.Other)
			}

			if len(d.Recent) > 0 {
				fmt.Fprintln(out, "Recent:")
				for _, p := range d.Recent {
					fmt.Fprintf(out, "  %s  %s\n", p.PublishDate, p.Title)
				}
			}
			return nil
		},
	}
}

func categoryList() string {
	names := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
