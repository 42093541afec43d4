package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/workspace"
)

func newReviewsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Browse past reviews",
	}
	cmd.AddCommand(newReviewsListCmd(a), newReviewsCorrectCmd(a))
	return cmd
}

func newReviewsListCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews; search matches document names and findings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			page := workspace.NewReviewsPage(a.api, logger)
			if err := page.Load(ctx); err != nil {
				return err
			}
			page.SetSearch(flags.search)
			page.Page = flags.page

			view := page.View()
			rows := make([][]string, 0, len(view.Items))
			for _, r := range view.Items {
				name := page.DocumentName(r.DocumentID)
				if name == "" {
					name = "(deleted)"
				}
				counts := workspace.ComputeStats(nil, nil, []models.Review{r})
				rows = append(rows, []string{
					r.ID,
					truncate(name, 40),
					fmt.Sprint(counts.Conflicts),
					fmt.Sprint(counts.Gaps),
					fmt.Sprint(counts.Irrelevant),
					ago(r.CreatedAt),
				})
			}

			out := newPrinter(cmd.OutOrStdout())
			out.table([]string{"ID", "DOCUMENT", "CONFLICTS", "GAPS", "IRRELEVANT", "ANALYZED"}, rows)
			out.pager(view.Page, view.TotalPages, view.TotalItems)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newReviewsCorrectCmd(a *app) *cobra.Command {
	var (
		text     string
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "correct <review-id>",
		Short: "Attach reviewer corrections to a review, or clear them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			var corrections *string
			switch {
			case clearAll:
			case text != "":
				corrections = &text
			default:
				return errors.New("pass --text or --clear")
			}

			review, err := a.api.UpdateCorrections(ctx, args[0], corrections)
			if err != nil {
				return err
			}
			logger.Info("corrections updated", "review_id", review.ID, "cleared", corrections == nil)

			if review.Corrections == nil {
				newPrinter(cmd.OutOrStdout()).success("Corrections cleared.")
				return nil
			}
			newPrinter(cmd.OutOrStdout()).success("Corrections saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "correction notes")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove existing corrections")
	cmd.MarkFlagsMutuallyExclusive("text", "clear")
	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "analyze <document-id>",
		Short: "Show a document's redlines, running the analysis if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, a, args[0], models.RedlineType(filter))
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "only show conflict, gap or irrelevant findings")
	return cmd
}

func runAnalysis(cmd *cobra.Command, a *app, documentID string, filter models.RedlineType) error {
	switch filter {
	case "", "all", models.RedlineConflict, models.RedlineGap, models.RedlineIrrelevant:
	default:
		return fmt.Errorf("unknown filter %q: use all, conflict, gap or irrelevant", filter)
	}

	ctx, logger, err := a.authed(cmd.Context())
	if err != nil {
		return err
	}

	result, err := workspace.NewAnalysisView(a.api, logger).Load(ctx, documentID)
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout())
	out.heading("Contract Analysis Report")
	out.counts(result.Counts())
	out.line("")
	out.redlines(result.Filter(filter))
	if result.Review.Corrections != nil {
		out.line("")
		out.heading("Reviewer corrections")
		out.line("%s", *result.Review.Corrections)
	}
	return nil
}
