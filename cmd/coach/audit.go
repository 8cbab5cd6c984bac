package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/audit"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/sqlite"
)

var errAuditDisabled = errors.New("audit trail is disabled: set COACH_AUDIT_DB or audit_db_path")

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var (
		limit     int
		requestID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent provider attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			if cfg.AuditDBPath == "" {
				return errAuditDisabled
			}

			db, err := sqlite.Open(cmd.Context(), cfg.AuditDBPath)
			if err != nil {
				return fmt.Errorf("open audit database: %w", err)
			}
			defer db.Close()

			svc := audit.NewService(db, nil)
			var attempts []*audit.Attempt
			if requestID != "" {
				attempts, err = svc.ListByRequest(cmd.Context(), requestID)
			} else {
				attempts, err = svc.ListRecent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(attempts)
			}
			return printAttempts(cmd.OutOrStdout(), attempts)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", audit.DefaultListLimit, "Maximum number of attempts to show")
	cmd.Flags().StringVar(&requestID, "request", "", "Show only the attempts of one request id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printAttempts(out io.Writer, attempts []*audit.Attempt) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(out, "No attempts recorded.")
		return err
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"TIME", "REQUEST", "PROVIDER", "STAGE", "OUTCOME", "DURATION", "ERROR"})
	for _, a := range attempts {
		tw.AppendRow(table.Row{
			a.CreatedAt.Local().Format(time.DateTime),
			dash(a.RequestID),
			a.Provider,
			a.Stage,
			a.Outcome,
			(time.Duration(a.DurationMS) * time.Millisecond).String(),
			dash(a.Error),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 7, WidthMax: 60},
	})

	_, err := fmt.Fprintln(out, tw.Render())
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
