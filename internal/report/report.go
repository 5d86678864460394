// Package report renders simulation progress for humans: one status line
// per tick and a closing summary.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iliyamo/dining-sim/internal/model"
	"github.com/iliyamo/dining-sim/internal/sim"
)

// StatusLine formats the state after one tick.
func StatusLine(s model.TickSnapshot, tables int) string {
	return fmt.Sprintf("t=%7.1f | +%-2d arrived | -%-2d left | %2d seated | tables %d/%d | diners %3d | queue %d parties (%d people)",
		s.Time, s.Arrived, s.Departed, s.Seated, s.OccupiedTables, tables,
		s.SeatedPatrons, s.WaitingParties, s.WaitingPatrons)
}

// Snapshot condenses a tick report into its status line fields.
func Snapshot(r sim.TickReport) model.TickSnapshot {
	return model.TickSnapshot{
		Time:           r.Time,
		Arrived:        r.ArrivedPatrons,
		Departed:       r.Departed(),
		Seated:         r.Seated(),
		OccupiedTables: r.OccupiedTables,
		SeatedPatrons:  r.SeatedPatrons,
		WaitingParties: r.WaitingParties,
		WaitingPatrons: r.WaitingPatrons,
	}
}

// Printer writes status lines as ticks complete.
type Printer struct {
	w      io.Writer
	tables int
}

func NewPrinter(w io.Writer, tables int) *Printer {
	return &Printer{w: w, tables: tables}
}

// Tick prints the status line for r. Its signature matches the observer
// accepted by sim.Restaurant.Run.
func (p *Printer) Tick(r sim.TickReport) {
	fmt.Fprintln(p.w, StatusLine(Snapshot(r), p.tables))
}

// Summary prints the totals of a finished run.
func Summary(w io.Writer, run *model.SimulationRun) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value any
	}{
		{"run", run.ID},
		{"seed", run.Seed},
		{"simulated time", fmt.Sprintf("%.1f (%d ticks of %.1f)", run.EndTime, run.Ticks, run.TimeStep)},
		{"floor", fmt.Sprintf("%d tables, %d seats", run.TableCount, run.SeatCount)},
		{"arrived", fmt.Sprintf("%d parties, %d people", run.ArrivedParties, run.ArrivedPatrons)},
		{"seated", fmt.Sprintf("%d parties, %d people", run.SeatedParties, run.SeatedPatrons)},
		{"served", run.ServedPatrons},
		{"still waiting", fmt.Sprintf("%d parties, %d people", run.WaitingParties, run.WaitingPatrons)},
		{"mean wait", fmt.Sprintf("%.2f", run.MeanWait)},
		{"max wait", fmt.Sprintf("%.2f", run.MaxWait)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%v\n", r.label, r.value); err != nil {
			return err
		}
	}
	return tw.Flush()
}
