package sim

import (
	"github.com/sarchlab/csim/datarecording"
)

// TraceTable is the name of the table that stores processed accesses.
const TraceTable = "trace"

// A TraceEntry is one processed access as stored in the trace table.
type TraceEntry struct {
	Seq     uint64
	Label   string
	Address uint64
	SetID   int
	Tag     uint64
	Outcome string
}

// An AccessRecorder is a hook that records every processed access into a
// database.
type AccessRecorder struct {
	recorder datarecording.DataRecorder
}

// NewAccessRecorder creates an AccessRecorder and prepares the trace table.
func NewAccessRecorder(recorder datarecording.DataRecorder) *AccessRecorder {
	r := &AccessRecorder{recorder: recorder}
	r.recorder.CreateTable(TraceTable, TraceEntry{})

	return r
}

// Func records one row per access and flushes when the run completes.
func (r *AccessRecorder) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosAccessDone:
		result, ok := ctx.Item.(AccessResult)
		if !ok {
			return
		}

		r.recorder.InsertData(TraceTable, TraceEntry{
			Seq:     result.Seq,
			Label:   result.Access.Label,
			Address: result.Access.Address,
			SetID:   result.SetID,
			Tag:     result.Tag,
			Outcome: result.Outcome.String(),
		})
	case HookPosRunDone:
		r.recorder.Flush()
	}
}
