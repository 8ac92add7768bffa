package datarecording

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/process"
)

// RunInfo is a property of one simulator run, stored as a key-value pair.
type RunInfo struct {
	Property string
	Value    string
}

// RunInfoTable is the name of the table that stores run properties.
const RunInfoTable = "run_info"

// A RunRecorder stores the properties of one simulator run.
type RunRecorder struct {
	tableName string
	recorder  DataRecorder
	entries   []RunInfo
}

// NewRunRecorder creates a RunRecorder that writes into recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	r := &RunRecorder{
		tableName: RunInfoTable,
		recorder:  recorder,
		entries:   []RunInfo{},
	}

	r.recorder.CreateTable(r.tableName, RunInfo{})

	return r
}

// Start logs the start time, the command line, and the working directory.
func (r *RunRecorder) Start() {
	currentTime := time.Now()
	startTime := currentTime.Format("2006-01-02 15:04:05.000000000")
	r.Record("Start Time", startTime)

	cmd := strings.Join(os.Args, " ")
	r.Record("Command", cmd)

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	r.Record("Working Directory", cwd)
}

// Record adds one property of the run.
func (r *RunRecorder) Record(property, value string) {
	r.entries = append(r.entries, RunInfo{property, value})
}

// End writes all properties into the database along with the exit time and
// the resource usage of the process.
func (r *RunRecorder) End() {
	r.recordProcessUsage()

	endTime := time.Now()
	endValue := endTime.Format("2006-01-02 15:04:05.000000000")
	r.Record("End Time", endValue)

	for _, entry := range r.entries {
		r.recorder.InsertData(r.tableName, entry)
	}

	r.entries = nil

	r.recorder.Flush()
}

func (r *RunRecorder) recordProcessUsage() {
	pid := os.Getpid()

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err == nil {
		r.Record("CPU Percent", fmt.Sprintf("%.2f", cpuPercent))
	}

	memInfo, err := proc.MemoryInfo()
	if err == nil {
		r.Record("Memory Size", fmt.Sprintf("%d", memInfo.RSS))
	}
}
