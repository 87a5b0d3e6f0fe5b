package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jrsteele09/truedev-client/api"
	"github.com/jrsteele09/truedev-client/board"
	"github.com/spf13/cobra"
)

var errEmptyArticle = errors.New("title and content are required")

func newArticlesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"a"},
		Short:   "Browse and write articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newArticlesListCmd(opts),
		newArticlesShowCmd(opts),
		newArticlesCreateCmd(opts),
		newArticlesEditCmd(opts),
		newArticlesDeleteCmd(opts),
		newArticlesLikeCmd(opts),
	)
	return cmd
}

func newArticlesListCmd(opts *rootOptions) *cobra.Command {
	var page, category string
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			list := a.api.ListArticles
			if mine {
				if err := a.requireLogin(); err != nil {
					return err
				}
				list = a.api.ListMyArticles
			}

			result, err := list(cmd.Context(), board.ParsePage(page))
			if err != nil {
				return err
			}
			articles := result.Articles
			out := cmd.OutOrStdout()
			if category != "" {
				c := board.ParseCategory(category)
				articles = board.FilterByCategory(articles, c.Key)
				fmt.Fprintln(out, titleStyle.Render(c.Label)+" "+mutedStyle.Render(c.Description))
			}
			renderStats(out, board.Stats(result.Articles, result.TotalArticles))
			renderArticles(out, articles, result.PageInfo)
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "1", "page number")
	cmd.Flags().StringVar(&category, "category", "", "only show one category (tech, dev, career)")
	cmd.Flags().BoolVar(&mine, "mine", false, "only your own articles")
	return cmd
}

func newArticlesShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ARTICLE_ID",
		Short: "Show one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			article, err := opts.app.api.GetArticle(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderArticle(cmd.OutOrStdout(), article)
			return nil
		},
	}
}

func newArticlesCreateCmd(opts *rootOptions) *cobra.Command {
	var in api.ArticleInput
	var image string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish an article",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			if in.Title == "" || in.Content == "" {
				return errEmptyArticle
			}
			file, err := loadOptionalFile(image)
			if err != nil {
				return err
			}
			if err := a.api.CreateArticle(cmd.Context(), in, file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Article published.")
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "title")
	cmd.Flags().StringVar(&in.Content, "content", "", "body text")
	cmd.Flags().StringVar(&image, "image", "", "image file")
	return cmd
}

func newArticlesEditCmd(opts *rootOptions) *cobra.Command {
	var in api.ArticleInput
	var image string
	var removeImage bool

	cmd := &cobra.Command{
		Use:   "edit ARTICLE_ID",
		Short: "Edit one of your articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if in.Title == "" || in.Content == "" {
				current, err := a.api.GetArticle(cmd.Context(), id)
				if err != nil {
					return err
				}
				if in.Title == "" {
					in.Title = current.Title
				}
				if in.Content == "" {
					in.Content = current.Content
				}
			}

			change := api.ImageKeep
			switch {
			case removeImage && image != "":
				return errors.New("use either --image or --remove-image")
			case removeImage:
				change = api.ImageRemove
			case image != "":
				file, err := api.LoadFile(image)
				if err != nil {
					return err
				}
				change = api.ImageReplace(file)
			}

			if err := a.api.UpdateArticle(cmd.Context(), id, in, change); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Article updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "new title")
	cmd.Flags().StringVar(&in.Content, "content", "", "new body text")
	cmd.Flags().StringVar(&image, "image", "", "replace the image with this file")
	cmd.Flags().BoolVar(&removeImage, "remove-image", false, "remove the current image")
	return cmd
}

func newArticlesDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ARTICLE_ID",
		Short: "Delete one of your articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.DeleteArticle(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Article deleted.")
			return nil
		},
	}
}

func newArticlesLikeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "like ARTICLE_ID",
		Short: "Like an article, or unlike it if you already do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			article, err := a.api.GetArticle(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := a.api.ToggleLike(cmd.Context(), article); err != nil {
				return err
			}
			verb := "Unliked"
			if board.ResolveLiked(article) {
				verb = "Liked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q (%d likes).\n", verb, article.Title, article.LikeCount)
			return nil
		},
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
