package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Columns is the CSV header written by WriteCSV.
var Columns = []string{
	"parity",
	"message_len",
	"trials",
	"within_radius",
	"within_recovered",
	"beyond_radius",
	"beyond_detected",
	"beyond_recovered",
	"miscorrected",
	"failures",
}

// WriteCSV writes a header and one row per level.
func WriteCSV(w io.Writer, levels []Level) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("sim: write header: %w", err)
	}
	for _, l := range levels {
		row := []string{
			strconv.Itoa(l.Parity),
			strconv.Itoa(l.MessageLen),
			strconv.Itoa(l.Trials),
			strconv.Itoa(l.WithinRadius),
			strconv.Itoa(l.WithinRecovered),
			strconv.Itoa(l.BeyondRadius),
			strconv.Itoa(l.BeyondDetected),
			strconv.Itoa(l.BeyondRecovered),
			strconv.Itoa(l.Miscorrected),
			strconv.Itoa(l.Failures()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("sim: write parity %d: %w", l.Parity, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
