package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/sim"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report --db <file>",
	Short: "Print a recorded simulation run.",
	Long: `report prints the properties of a run recorded with --record. ` +
		`With --limit it also prints the first recorded accesses, ` +
		`optionally restricted to one outcome.`,
	Run: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("db", "", "database file to read")
	reportCmd.Flags().Int("limit", 0, "number of access rows to print")
	reportCmd.Flags().String("outcome", "",
		`only print accesses with this outcome `+
			`("hit", "miss", or "miss evict")`)

	markFlagsRequired(reportCmd, "db")
}

func runReport(cmd *cobra.Command, _ []string) {
	dbFile, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")
	outcome, _ := cmd.Flags().GetString("outcome")

	reader := datarecording.NewReader(dbFile)
	defer reader.Close()

	printRunInfo(reader)

	if limit > 0 {
		printAccesses(reader, limit, outcome)
	}
}

func printRunInfo(reader datarecording.DataReader) {
	reader.MapTable(datarecording.RunInfoTable, datarecording.RunInfo{})

	results, _, err := reader.Query(context.Background(),
		datarecording.RunInfoTable, datarecording.QueryParams{})
	if err != nil {
		log.Fatalf("Error reading run info: %v", err)
	}

	for _, result := range results {
		info := result.(*datarecording.RunInfo)
		fmt.Printf("%s: %s\n", info.Property, info.Value)
	}
}

func printAccesses(
	reader datarecording.DataReader,
	limit int,
	outcome string,
) {
	reader.MapTable(sim.TraceTable, sim.TraceEntry{})

	params := datarecording.QueryParams{
		Limit:   limit,
		OrderBy: "Seq ASC",
	}
	if outcome != "" {
		params.Where = "Outcome = ?"
		params.Args = []any{outcome}
	}

	results, totalCount, err := reader.Query(context.Background(),
		sim.TraceTable, params)
	if err != nil {
		log.Fatalf("Error reading accesses: %v", err)
	}

	fmt.Printf("%d of %d accesses:\n", len(results), totalCount)

	for _, result := range results {
		entry := result.(*sim.TraceEntry)
		fmt.Printf("%6d %s %s\n", entry.Seq, entry.Label, entry.Outcome)
	}
}
