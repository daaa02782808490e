package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/SscSPs/crm_backend/internal/core/services"
	"github.com/SscSPs/crm_backend/internal/reports"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print deal statistics from the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, closeStore, err := openRepositories(cmd.Context(), appCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			ledger := services.NewServiceContainer(appCfg, repos).Deal
			stats, err := ledger.GetDealStats(cmd.Context())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), *stats)

			if pdfPath == "" {
				return nil
			}
			if err := writeStatsReport(pdfPath, *stats, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", pdfPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write the report as a PDF to this path")
	return cmd
}

// writeStatsReport writes the PDF report to path.
func writeStatsReport(path string, stats domain.DealStats, generatedAt time.Time) error {
	return writeFile(path, func(w io.Writer) error {
		return reports.WriteDealStatsPDF(w, stats, generatedAt)
	})
}

// writeFile creates path and fills it with write. When writing or closing fails
// the partial file is removed.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			err = errors.Join(err, os.Remove(path))
		}
	}()
	return write(f)
}

func printStats(w io.Writer, stats domain.DealStats) {
	color.New(color.Bold).Fprintf(w, "Deals: %d\n", stats.Total)
	for _, status := range domain.DealStatuses {
		fmt.Fprintf(w, "  %s %d\n", statusLabel(status), stats.ByStatus[status])
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Won amount:    %s\n", color.New(color.FgGreen).Sprint(stats.WonAmount.StringFixed(2)))
	fmt.Fprintf(w, "Average check: %s\n", stats.AverageCheck.StringFixed(2))
}

// statusLabel pads the status to the column width before colorizing it,
// so escape codes do not count towards the width.
func statusLabel(status domain.DealStatus) string {
	label := fmt.Sprintf("%-12s", status)
	switch status {
	case domain.DealStatusWon:
		return color.New(color.FgGreen).Sprint(label)
	case domain.DealStatusLost:
		return color.New(color.FgRed).Sprint(label)
	case domain.DealStatusNegotiation:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return label
	}
}
