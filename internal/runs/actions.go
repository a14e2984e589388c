// Package runs implements the CLI actions for browsing saved count runs.
package runs

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jdhollis/logtally/internal/ui"
	"github.com/jdhollis/logtally/models"
	"github.com/jdhollis/logtally/pkg/db"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// ListAction prints recent saved runs.
func ListAction(c *cli.Context) error {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println(ui.InfoColor("No saved runs yet. Run 'logtally count' first."))
		return nil
	}

	if c.String("format") == "yaml" {
		data, err := yaml.Marshal(runs)
		if err != nil {
			return fmt.Errorf("failed to marshal runs: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Created", "Input", "Extractor", "Field", "Processed", "Malformed", "Distinct", "MS"})
	table.SetBorder(true)
	for _, r := range runs {
		table.Append([]string{
			strconv.FormatInt(r.RunID, 10),
			r.CreatedAt,
			r.Input,
			r.Extractor,
			r.Field,
			strconv.Itoa(r.Processed),
			strconv.Itoa(r.Malformed),
			strconv.Itoa(r.Distinct),
			strconv.FormatInt(r.DurationMS, 10),
		})
	}
	table.Render()

	return nil
}

// ShowAction prints one run with its stored top keys.
func ShowAction(c *cli.Context) error {
	runID := int64(c.Int("run"))
	if runID == 0 {
		return fmt.Errorf("run ID is required")
	}

	database, err := db.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	keys, err := database.GetRunKeys(runID)
	if err != nil {
		return err
	}

	if c.String("format") == "yaml" {
		out := struct {
			Run  db.Run            `yaml:"run"`
			Keys []models.KeyCount `yaml:"keys"`
		}{Run: *run, Keys: keys}

		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	fmt.Println(ui.HeaderColor(fmt.Sprintf("Run %d (%s)", run.RunID, run.CreatedAt)))
	fmt.Println(ui.DetailColor(fmt.Sprintf("input=%s extractor=%s field=%s policy=%s workers=%d",
		run.Input, run.Extractor, run.Field, run.Policy, run.Workers)))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Key", "Count"})
	table.SetBorder(true)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for i, kc := range keys {
		table.Append([]string{strconv.Itoa(i + 1), kc.Key, strconv.Itoa(kc.Count)})
	}
	table.Render()

	fmt.Println(ui.InfoColor(fmt.Sprintf("processed=%d malformed=%d distinct=%d duration=%dms",
		run.Processed, run.Malformed, run.Distinct, run.DurationMS)))

	return nil
}
