package supply

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes one row per installation line followed by a totals row.
func WriteCSV(out io.Writer, r *Report) error {
	w := csv.NewWriter(out)

	header := []string{
		"type",
		"name",
		"quantity",
		"nameplate_kw",
		"generated_kw",
		"cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, l := range r.Lines {
		row := []string{
			l.TypeID,
			l.Name,
			fmtFloat(l.Quantity),
			fmtFloat(l.NameplateKW),
			fmtFloat(l.GeneratedKW),
			l.Cost.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	total := []string{
		"total",
		string(r.Status()),
		"",
		fmtFloat(r.TotalNameplateKW),
		fmtFloat(r.TotalGeneratedKW),
		r.TotalCost.StringFixed(2),
	}
	if err := w.Write(total); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
