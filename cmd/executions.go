package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/shopintel/competitor-xray/internal/model"
)

var executionsCmd = &cobra.Command{
	Use:   "executions",
	Short: "Inspect pipeline execution history",
	Long:  "Commands for listing, viewing, and clearing recorded pipeline executions.",
}

// -- executions list --

var executionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded executions, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		execs, err := st.List(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "executions list")
		}

		if len(execs) == 0 {
			fmt.Fprintln(os.Stderr, "No executions recorded.")
			return nil
		}

		formatExecutionsList(os.Stdout, execs)
		return nil
	},
}

// -- executions show --

var executionsShowCmd = &cobra.Command{
	Use:   "show <execution-id>",
	Short: "Show the full trace of an execution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		exec, err := st.Get(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrap(err, "executions show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(exec)
	},
}

// -- executions clear --

var executionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded executions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Clear(cmd.Context()); err != nil {
			return eris.Wrap(err, "executions clear")
		}
		fmt.Fprintln(os.Stderr, "Execution history cleared.")
		return nil
	},
}

func init() {
	executionsCmd.AddCommand(executionsListCmd)
	executionsCmd.AddCommand(executionsShowCmd)
	executionsCmd.AddCommand(executionsClearCmd)
	rootCmd.AddCommand(executionsCmd)
}

// formatExecutionsList writes a tabular list of executions to out.
func formatExecutionsList(out io.Writer, execs []model.Execution) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tREFERENCE\tWINNER\tSTATUS\tSTEPS\tSTARTED\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t---------\t------\t------\t-----\t-------\t--------")

	for _, e := range execs {
		s := e.Summary()

		winner := s.WinnerTitle
		if winner == "" {
			winner = "(none)"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%dms\n",
			truncateID(s.ID),
			truncateTitle(s.ReferenceTitle),
			truncateTitle(winner),
			s.Status,
			s.Steps,
			s.Timestamp.Format("2006-01-02 15:04"),
			s.DurationMs,
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncateTitle(title string) string {
	if len(title) > 30 {
		return title[:27] + "..."
	}
	return title
}
