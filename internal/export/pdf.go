// Package export renders a placement record as a printable PDF sheet.
package export

import (
	"fmt"
	"hash/fnv"
	"io"
	"strconv"

	"StampBoard/internal/geom"
	"StampBoard/internal/logging"
	"StampBoard/internal/record"
	"StampBoard/internal/replay"

	"github.com/jung-kurt/gofpdf"
)

// Options control the sheet. Lengths are millimetres.
type Options struct {
	Title  string
	Margin float64
	// Radius of the mark drawn for each placement.
	Radius float64
	// Numbers labels each mark with its drawing order.
	Numbers bool
}

// DefaultOptions fits the record on A4 with 15mm margins.
func DefaultOptions() Options {
	return Options{Title: "Stamp board", Margin: 15, Radius: 2.5, Numbers: true}
}

// WritePDF lays rec out on an A4 portrait page the same way a replay fits a
// viewport and draws one circle per placement, coloured by stamp id.
func WritePDF(w io.Writer, rec record.Record, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("StampBoard", true)
	pdf.AddPage()

	pw, ph := pdf.GetPageSize()
	header := 10.0
	m := opts.Margin
	layout, err := replay.Fit(rec.PixelSize(), geom.Sz(pw, ph), geom.Insets{Top: m + header, Left: m, Bottom: m, Right: m})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(m, m+5, fmt.Sprintf("%s - %d placements", opts.Title, len(rec.Points)))

	f := layout.Frame
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.2)
	pdf.Rect(f.Origin.X, f.Origin.Y, f.Size.Width, f.Size.Height, "D")

	pdf.SetFont("Helvetica", "", 6)
	for i, p := range rec.Points {
		c := layout.Map(p.X, p.Y)
		r, g, b := stampColor(p.ID)
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(r/2, g/2, b/2)
		pdf.Circle(c.X, c.Y, opts.Radius, "FD")
		if opts.Numbers {
			pdf.SetTextColor(40, 40, 40)
			pdf.Text(c.X+opts.Radius, c.Y-opts.Radius, strconv.Itoa(i+1))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logging.Logger().Info("record exported", "placements", len(rec.Points), "scale", layout.Scale)
	return nil
}

// stampColor picks a stable mid-tone colour for a stamp id.
func stampColor(id string) (r, g, b int) {
	h := fnv.New32a()
	h.Write([]byte(id))
	v := h.Sum32()
	return 64 + int(v&0x7f), 64 + int(v>>8&0x7f), 64 + int(v>>16&0x7f)
}
