package main

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/workspace"
)

func newDocumentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "List, upload and delete contracts",
	}
	cmd.AddCommand(
		newDocumentsListCmd(a),
		newDocumentsShowCmd(a),
		newDocumentsUploadCmd(a),
		newDocumentsDeleteCmd(a),
	)
	return cmd
}

type listFlags struct {
	search string
	page   int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "filter by text (case-insensitive)")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number")
}

func newDocumentsListCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			page := workspace.NewDocumentsPage(a.api, a.extractors, logger)
			if err := page.Load(ctx); err != nil {
				return err
			}
			page.SetSearch(flags.search)
			page.Page = flags.page

			view := page.View()
			out := newPrinter(cmd.OutOrStdout())

			playbookNames := map[string]string{}
			for _, pb := range page.Playbooks() {
				playbookNames[pb.ID] = pb.Name
			}

			rows := make([][]string, 0, len(view.Items))
			for _, e := range view.Items {
				playbook := playbookNames[e.Item.PlaybookID]
				if playbook == "" {
					playbook = "(deleted)"
				}
				rows = append(rows, []string{
					e.Item.ID,
					truncate(e.Item.Name, 40),
					playbook,
					string(e.Item.Status) + stateLabel(e.State),
					ago(e.Item.CreatedAt),
				})
			}
			out.table([]string{"ID", "NAME", "PLAYBOOK", "STATUS", "UPLOADED"}, rows)
			out.pager(view.Page, view.TotalPages, view.TotalItems)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDocumentsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a document's extracted text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := a.api.GetDocument(ctx, args[0])
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout())
			out.heading(doc.Name)
			if doc.Content == "" {
				out.line("No content available")
				return nil
			}
			out.line("%s", doc.Content)
			return nil
		},
	}
}

func newDocumentsUploadCmd(a *app) *cobra.Command {
	var (
		playbookID    string
		serverExtract bool
		analyze       bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a PDF or Word contract for review",
		Long: `Upload a PDF or Word contract and link it to a playbook.

Text is extracted locally and sent to the backend. With --server-extract the
file itself is sent and the backend extracts it. Files over 10MB are rejected
before they are read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())

			file, err := ingest.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("file read", "file", file.Name, "size", humanize.Bytes(uint64(len(file.Data))))

			var nav workspace.Navigation
			if serverExtract {
				if playbookID == "" {
					return errors.New("please select a playbook with --playbook")
				}
				doc, err := a.api.UploadDocument(ctx, file.Name, file.ContentType, file.Data, playbookID)
				if err != nil {
					return err
				}
				nav = workspace.AnalysisRoute(doc.ID)
			} else {
				page := workspace.NewDocumentsPage(a.api, a.extractors, logger)
				if err := page.SelectFile(ctx, file); err != nil {
					return err
				}
				page.Form.PlaybookID = playbookID
				if nav, err = page.Submit(ctx); err != nil {
					return err
				}
			}

			out.success("Document uploaded successfully!")
			out.line("Analysis: %s", nav.Route)

			if !analyze {
				return nil
			}
			return runAnalysis(cmd, a, documentIDFromRoute(nav), "")
		},
	}

	cmd.Flags().StringVar(&playbookID, "playbook", "", "playbook id to review against (required)")
	cmd.Flags().BoolVar(&serverExtract, "server-extract", false, "let the backend extract the text")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "open the analysis right after upload")
	return cmd
}

func newDocumentsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a document and its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			page := workspace.NewDocumentsPage(a.api, a.extractors, logger)
			if err := page.Delete(ctx, args[0]); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Document deleted successfully")
			return nil
		},
	}
}

func documentIDFromRoute(nav workspace.Navigation) string {
	id, _ := strings.CutPrefix(nav.Route, "/analysis/")
	return id
}
