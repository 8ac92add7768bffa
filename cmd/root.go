// Package cmd provides the command-line interface for csim.
package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/sim"
	"github.com/sarchlab/csim/trace"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "csim -s <bits> -E <ways> -b <bits> -t <file>",
	Short: "csim counts the hits, misses, and evictions of a cache.",
	Long: `csim replays a valgrind lackey memory trace against a ` +
		`set-associative cache with LRU replacement and counts cache hits, ` +
		`misses, and evictions. The cache geometry is given by the number ` +
		`of set index bits (-s), lines per set (-E), and block offset bits ` +
		`(-b).`,
	Run: runSimulation,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A .env file can provide CSIM_* defaults. A missing file is fine.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntP("set-bits", "s", 0,
		"number of set index bits")
	rootCmd.Flags().IntP("ways", "E", 0,
		"number of lines per set")
	rootCmd.Flags().IntP("block-bits", "b", 0,
		"number of block offset bits")
	rootCmd.Flags().StringP("trace", "t", "",
		"trace file to replay")
	rootCmd.Flags().BoolP("verbose", "v", false,
		"print the outcome of every access")
	rootCmd.Flags().Bool("record", false,
		"record the run into a SQLite database")
	rootCmd.Flags().String("db", "",
		"database name for --record, without extension "+
			"(default \"csim_<id>\", env CSIM_DB_PATH)")
	rootCmd.Flags().String("results", ".csim_results",
		"file the final counts are written to (env CSIM_RESULTS_PATH)")

	markFlagsRequired(rootCmd, "set-bits", "ways", "block-bits", "trace")
}

func markFlagsRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		err := cmd.MarkFlagRequired(name)
		if err != nil {
			panic(err)
		}
	}
}

func runSimulation(cmd *cobra.Command, _ []string) {
	setIndexBits, _ := cmd.Flags().GetInt("set-bits")
	wayAssociativity, _ := cmd.Flags().GetInt("ways")
	blockOffsetBits, _ := cmd.Flags().GetInt("block-bits")
	tracePath, _ := cmd.Flags().GetString("trace")

	directory, err := cache.MakeBuilder().
		WithSetIndexBits(setIndexBits).
		WithBlockOffsetBits(blockOffsetBits).
		WithWayAssociativity(wayAssociativity).
		Build()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	traceFile, err := os.Open(tracePath)
	if err != nil {
		log.Fatalf("Error opening trace file: %v", err)
	}
	defer traceFile.Close()

	simulator := sim.NewSimulator(directory)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		simulator.AcceptHook(sim.NewAccessLogger(log.New(os.Stdout, "", 0)))
	}

	var recorder datarecording.DataRecorder
	var runRecorder *datarecording.RunRecorder

	if record, _ := cmd.Flags().GetBool("record"); record {
		recorder = datarecording.New(resolveDBPath(cmd))
		runRecorder = datarecording.NewRunRecorder(recorder)
		runRecorder.Start()
		recordGeometry(runRecorder, directory.Geometry(), tracePath)
		simulator.AcceptHook(sim.NewAccessRecorder(recorder))
	}

	err = simulator.Run(trace.NewScanner(traceFile))
	if err != nil {
		log.Fatalf("Error replaying trace: %v", err)
	}

	fmt.Println(simulator.Summary())
	writeResults(resolveResultsPath(cmd), simulator.Stats())

	if recorder != nil {
		recordStats(runRecorder, simulator.Stats())
		runRecorder.End()

		err = recorder.Close()
		if err != nil {
			log.Fatalf("Error closing database: %v", err)
		}
	}
}

func resolveDBPath(cmd *cobra.Command) string {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = os.Getenv("CSIM_DB_PATH")
	}

	return dbPath
}

func resolveResultsPath(cmd *cobra.Command) string {
	resultsPath, _ := cmd.Flags().GetString("results")

	if !cmd.Flags().Changed("results") {
		if env := os.Getenv("CSIM_RESULTS_PATH"); env != "" {
			resultsPath = env
		}
	}

	return resultsPath
}

func recordGeometry(
	runRecorder *datarecording.RunRecorder,
	geometry cache.Geometry,
	tracePath string,
) {
	runRecorder.Record("Set Index Bits",
		strconv.Itoa(geometry.SetIndexBits))
	runRecorder.Record("Way Associativity",
		strconv.Itoa(geometry.WayAssociativity))
	runRecorder.Record("Block Offset Bits",
		strconv.Itoa(geometry.BlockOffsetBits))
	runRecorder.Record("Trace File", tracePath)
}

func recordStats(runRecorder *datarecording.RunRecorder, stats sim.Stats) {
	runRecorder.Record("Hits", strconv.FormatUint(stats.Hits, 10))
	runRecorder.Record("Misses", strconv.FormatUint(stats.Misses, 10))
	runRecorder.Record("Evictions", strconv.FormatUint(stats.Evictions, 10))
}

// writeResults stores the final counts in a machine-readable form. The file
// is overwritten on every run.
func writeResults(path string, stats sim.Stats) {
	content := fmt.Sprintf("%d %d %d\n",
		stats.Hits, stats.Misses, stats.Evictions)

	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		log.Fatalf("Error writing results file: %v", err)
	}
}
