package diagnostics

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// PerfRecord is one row of the per-kernel timing report, marshaled with
// gocsv.
type PerfRecord struct {
	Iteration         int    `csv:"iteration"`
	StepMicros        int64  `csv:"step_us"`
	CurrentResetMicros int64 `csv:"current_reset_us"`
	PushDepositMicros int64  `csv:"push_deposit_us"`
	CurrentFilterMicros int64 `csv:"current_filter_us"`
	EMFAdvanceMicros  int64  `csv:"emf_advance_us"`
	GuardXMicros      int64  `csv:"guard_x_us"`
	GuardYMicros      int64  `csv:"guard_y_us"`
	BoundaryMicros    int64  `csv:"boundary_us"`
	SortMicros        int64  `csv:"sort_us"`
}

// RecordFrom builds a PerfRecord for iteration from the collector's
// current rolling-window averages.
func RecordFrom(p *PerfCollector, iteration int) PerfRecord {
	us := func(phase string) int64 { return p.AveragePhase(phase).Microseconds() }
	return PerfRecord{
		Iteration:           iteration,
		StepMicros:          p.AverageStep().Microseconds(),
		CurrentResetMicros:  us(PhaseCurrentReset),
		PushDepositMicros:   us(PhasePushDeposit),
		CurrentFilterMicros: us(PhaseCurrentFilter),
		EMFAdvanceMicros:    us(PhaseEMFAdvance),
		GuardXMicros:        us(PhaseGuardX),
		GuardYMicros:        us(PhaseGuardY),
		BoundaryMicros:      us(PhaseBoundary),
		SortMicros:          us(PhaseSort),
	}
}

// WritePerfReport marshals records as CSV to w, header included.
func WritePerfReport(w io.Writer, records []PerfRecord) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing perf report: %w", err)
	}
	return nil
}
