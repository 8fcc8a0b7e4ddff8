package results

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cacaolab/biotherm/geometry"
	"github.com/cacaolab/biotherm/thermal"
)

// WriteSummary writes the human readable run report.
func (w *Writer) WriteSummary(dom *geometry.Domain, material string,
	history []thermal.Step, warnings []thermal.StabilityWarning) (string, error) {

	if len(history) == 0 {
		return "", fmt.Errorf("empty history")
	}
	p := w.path("summary.txt")
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", p, err)
	}
	buf := bufio.NewWriter(f)

	first := history[0].Stats
	last := history[len(history)-1].Stats
	peak := first
	for _, step := range history {
		if step.Stats.CacaoMax > peak.CacaoMax {
			peak = step.Stats
		}
	}

	fmt.Fprintf(buf, "Vessel:          %s (%d cells)\n", dom.Kind, dom.NumCells())
	fmt.Fprintf(buf, "Wall material:   %s\n", material)
	fmt.Fprintf(buf, "Cacao volume:    %.4f m3\n", dom.RegionVolume(geometry.RegionCacao))
	fmt.Fprintf(buf, "Simulated time:  %.2f h (%d levels)\n", last.Time/3600, len(history))
	fmt.Fprintf(buf, "\n")
	fmt.Fprintf(buf, "Initial mean:    %6.2f C\n", first.Mean)
	fmt.Fprintf(buf, "Final mean:      %6.2f C  (min %.2f, max %.2f)\n", last.Mean, last.Min, last.Max)
	fmt.Fprintf(buf, "Peak cacao:      %6.2f C  at t=%.2f h\n", peak.CacaoMax, peak.Time/3600)
	fmt.Fprintf(buf, "Final activity:  %6.3f\n", last.Activity)
	fmt.Fprintf(buf, "Moisture loss:   %6.3f kg\n", last.MoistureLoss)
	if len(warnings) > 0 {
		fmt.Fprintf(buf, "\nWarnings:\n")
		for _, warn := range warnings {
			fmt.Fprintf(buf, "  - %s\n", warn)
		}
	}

	if err := buf.Flush(); err != nil {
		f.Close()
		return "", err
	}
	return p, f.Close()
}
