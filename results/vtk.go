package results

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cacaolab/biotherm/geometry"
	"github.com/cacaolab/biotherm/thermal"
)

// inactiveFill marks cells outside the vessel in the exported grid; the
// region scalar distinguishes them from real data.
const inactiveFill = -1e30

// WriteVTK writes one time level as a legacy ASCII VTK structured points
// file, with temperature and region tag as cell data. The index becomes part
// of the file name so a run produces an ordered series ParaView can animate.
func (w *Writer) WriteVTK(dom *geometry.Domain, step thermal.Step, index int) (string, error) {
	p := w.path(fmt.Sprintf("field_%05d.vtk", index))
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", p, err)
	}
	nx, ny, nz, hx, hy, hz := dom.RawDims()
	buf := bufio.NewWriter(f)
	fmt.Fprintf(buf, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(buf, "%s t=%gs\n", dom.Kind, step.Time)
	fmt.Fprintf(buf, "ASCII\n")
	fmt.Fprintf(buf, "DATASET STRUCTURED_POINTS\n")
	fmt.Fprintf(buf, "DIMENSIONS %d %d %d\n", nx+1, ny+1, nz+1)
	fmt.Fprintf(buf, "ORIGIN 0 0 0\n")
	fmt.Fprintf(buf, "SPACING %g %g %g\n", hx, hy, hz)
	fmt.Fprintf(buf, "CELL_DATA %d\n", nx*ny*nz)

	fmt.Fprintf(buf, "SCALARS temperature double 1\n")
	fmt.Fprintf(buf, "LOOKUP_TABLE default\n")
	for _, v := range dom.FillRaw(step.Field, inactiveFill) {
		fmt.Fprintf(buf, "%.6g\n", v)
	}

	region := make([]float64, dom.NumCells())
	for c := range region {
		region[c] = float64(dom.Region(c))
	}
	fmt.Fprintf(buf, "SCALARS region int 1\n")
	fmt.Fprintf(buf, "LOOKUP_TABLE default\n")
	for _, v := range dom.FillRaw(region, 0) {
		fmt.Fprintf(buf, "%d\n", int(v))
	}

	if err := buf.Flush(); err != nil {
		f.Close()
		return "", err
	}
	return p, f.Close()
}
