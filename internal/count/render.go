package count

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jdhollis/logtally/internal/ui"
	"github.com/jdhollis/logtally/models"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Render formats a report as a colored table or as yaml.
func Render(report *models.Report, format string) (string, error) {
	switch format {
	case "", "table":
		return renderTable(report), nil
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return "", fmt.Errorf("failed to marshal report: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown format %q (want table or yaml)", format)
	}
}

func renderTable(report *models.Report) string {
	var sb strings.Builder

	fmt.Fprintln(&sb, ui.HeaderColor(fmt.Sprintf("Top %d keys for %s", len(report.Top), report.Input)))
	fmt.Fprintln(&sb, ui.DetailColor(fmt.Sprintf("extractor=%s field=%s policy=%s workers=%d",
		report.Extractor, report.Field, report.Policy, report.Workers)))

	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Rank", "Key", "Count"})
	table.SetBorder(true)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for i, kc := range report.Top {
		table.Append([]string{strconv.Itoa(i + 1), kc.Key, strconv.Itoa(kc.Count)})
	}
	table.Render()

	fmt.Fprintln(&sb, ui.InfoColor(fmt.Sprintf("processed=%d distinct=%d duration=%dms",
		report.Processed, report.Distinct, report.DurationMS)))
	if report.Malformed > 0 {
		fmt.Fprintln(&sb, ui.WarningColor(fmt.Sprintf("malformed lines skipped: %d", report.Malformed)))
	}

	return sb.String()
}
