package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nttrung2406/readlaw-cli/internal/api"
)

func printDocuments(docs []api.Document) {
	if len(docs) == 0 {
		fmt.Println("No documents uploaded yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tUPLOADED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", doc.ID, doc.Filename, doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func listCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your uploaded documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireLogin(); err != nil {
				return err
			}

			docs, err := rt.client.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			printDocuments(docs)
			return nil
		},
	}
}

func uploadCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireLogin(); err != nil {
				return err
			}

			message, err := rt.client.Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(message)
			return nil
		},
	}
}

func renameCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireLogin(); err != nil {
				return err
			}

			if err := rt.client.Rename(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Renamed.")
			return nil
		},
	}
}

func deleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <filename> <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireLogin(); err != nil {
				return err
			}

			if err := rt.client.Delete(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Deleted.")

			// Show the fresh enumeration so the caller sees the
			// document is gone.
			docs, err := rt.client.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			printDocuments(docs)
			return nil
		},
	}
}
