package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/workspace"
)

func newPlaybooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playbooks",
		Short: "Manage compliance playbooks",
	}
	cmd.AddCommand(
		newPlaybooksListCmd(a),
		newPlaybooksUploadCmd(a),
		newPlaybooksUpdateCmd(a),
		newPlaybooksDeleteCmd(a),
		newPlaybooksDownloadCmd(a),
	)
	return cmd
}

// loadPlaybooks opens the playbooks page with the server list loaded.
func (a *app) loadPlaybooks(cmd *cobra.Command) (context.Context, *workspace.PlaybooksPage, error) {
	ctx, logger, err := a.authed(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	page := workspace.NewPlaybooksPage(a.api, a.extractors, logger)
	if err := page.Load(ctx); err != nil {
		return nil, nil, err
	}
	return ctx, page, nil
}

func newPlaybooksListCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List playbooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, page, err := a.loadPlaybooks(cmd)
			if err != nil {
				return err
			}
			page.SetSearch(flags.search)
			page.Page = flags.page

			view := page.View()
			rows := make([][]string, 0, len(view.Items))
			for _, e := range view.Items {
				rows = append(rows, []string{
					e.Item.ID,
					e.Item.Name + stateLabel(e.State),
					truncate(e.Item.Content, 50),
					ago(e.Item.UpdatedAt),
				})
			}

			out := newPrinter(cmd.OutOrStdout())
			out.table([]string{"ID", "NAME", "CONTENT", "UPDATED"}, rows)
			out.pager(view.Page, view.TotalPages, view.TotalItems)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newPlaybooksUploadCmd(a *app) *cobra.Command {
	var (
		name          string
		serverExtract bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Create a playbook from a PDF or Word file",
		Long: `Create a playbook from a PDF or Word file.

The name defaults to the file name without its extension and must not match
an existing playbook, ignoring case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, page, err := a.loadPlaybooks(cmd)
			if err != nil {
				return err
			}

			file, err := ingest.ReadFile(args[0])
			if err != nil {
				return err
			}

			if serverExtract {
				pb, err := a.api.UploadPlaybook(ctx, file.Name, file.ContentType, file.Data, name)
				if err != nil {
					return err
				}
				newPrinter(cmd.OutOrStdout()).success(fmt.Sprintf("Playbook %q uploaded successfully!", pb.Name))
				return nil
			}

			page.Form.Name = name
			if err := page.SelectFile(ctx, file); err != nil {
				return err
			}
			uploaded := page.Form.Name
			if err := page.Submit(ctx); err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).success(fmt.Sprintf("Playbook %q uploaded successfully!", uploaded))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "playbook name (default: file name)")
	cmd.Flags().BoolVar(&serverExtract, "server-extract", false, "let the backend extract the text")
	return cmd
}

func newPlaybooksUpdateCmd(a *app) *cobra.Command {
	var name, path string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a playbook or replace its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, page, err := a.loadPlaybooks(cmd)
			if err != nil {
				return err
			}

			id := args[0]
			var current *workspace.Entry[models.Playbook]
			for _, e := range page.Entries() {
				if e.Item.ID == id {
					current = &e
					break
				}
			}
			if current == nil {
				return fmt.Errorf("playbook %s not found", id)
			}

			newName, content := current.Item.Name, current.Item.Content
			if name != "" {
				newName = name
			}
			if path != "" {
				file, err := ingest.ReadFile(path)
				if err != nil {
					return err
				}
				if content, err = a.extractors.Extract(ctx, file); err != nil {
					return err
				}
			}

			if err := page.Update(ctx, id, newName, content); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Playbook updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&path, "file", "", "PDF or Word file with the new content")
	cmd.MarkFlagsOneRequired("name", "file")
	return cmd
}

func newPlaybooksDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a playbook",
		Long: `Delete a playbook. Documents reviewed against it keep their reviews,
but can no longer be analysed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, page, err := a.loadPlaybooks(cmd)
			if err != nil {
				return err
			}
			if err := page.Delete(ctx, args[0]); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Playbook deleted.")
			return nil
		},
	}
}

func newPlaybooksDownloadCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Save a playbook's text to a file",
		Long: `Save a playbook's text as <name>.txt in the current directory, or into
--output. Use --output - to print it instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, page, err := a.loadPlaybooks(cmd)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			filename, err := page.Download(args[0], &buf)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}

			dest := filename
			if output != "" {
				dest = output
				if info, err := os.Stat(output); err == nil && info.IsDir() {
					dest = filepath.Join(output, filename)
				}
			}
			if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("save playbook: %w", err)
			}
			newPrinter(cmd.OutOrStdout()).success("Saved " + dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file or directory to write to, or - for stdout")
	return cmd
}
