package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/truedev-client/board"
	"github.com/spf13/cobra"
)

var errEmptyComment = errors.New("comment text is required")

func newCommentsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"c"},
		Short:   "Read and write comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newCommentsListCmd(opts),
		newCommentsMineCmd(opts),
		newCommentsAddCmd(opts),
		newCommentsEditCmd(opts),
		newCommentsDeleteCmd(opts),
	)
	return cmd
}

func newCommentsListCmd(opts *rootOptions) *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "list ARTICLE_ID",
		Short: "List the comments on an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			result, err := opts.app.api.ListComments(cmd.Context(), id, board.ParsePage(page))
			if err != nil {
				return err
			}
			renderComments(cmd.OutOrStdout(), result.Comments, result.PageInfo)
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "1", "page number")
	return cmd
}

func newCommentsMineCmd(opts *rootOptions) *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your comments across all articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			result, err := a.api.ListMyComments(cmd.Context(), board.ParsePage(page))
			if err != nil {
				return err
			}
			renderComments(cmd.OutOrStdout(), result.Comments, result.PageInfo)
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "1", "page number")
	return cmd
}

func newCommentsAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add ARTICLE_ID TEXT...",
		Short: "Comment on an article",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text, err := commentText(args[1:])
			if err != nil {
				return err
			}
			if err := a.api.CreateComment(cmd.Context(), id, text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Comment added.")
			return nil
		},
	}
}

func newCommentsEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ARTICLE_ID COMMENT_ID TEXT...",
		Short: "Edit one of your comments",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			articleID, commentID, err := parseCommentRef(args)
			if err != nil {
				return err
			}
			text, err := commentText(args[2:])
			if err != nil {
				return err
			}
			if err := a.api.UpdateComment(cmd.Context(), articleID, commentID, text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Comment updated.")
			return nil
		},
	}
}

func newCommentsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ARTICLE_ID COMMENT_ID",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			articleID, commentID, err := parseCommentRef(args)
			if err != nil {
				return err
			}
			if err := a.api.DeleteComment(cmd.Context(), articleID, commentID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Comment deleted.")
			return nil
		},
	}
}

func parseCommentRef(args []string) (int, int, error) {
	articleID, err := parseID(args[0])
	if err != nil {
		return 0, 0, err
	}
	commentID, err := parseID(args[1])
	if err != nil {
		return 0, 0, err
	}
	return articleID, commentID, nil
}

func commentText(words []string) (string, error) {
	text := strings.TrimSpace(strings.Join(words, " "))
	if text == "" {
		return "", errEmptyComment
	}
	return text, nil
}
