package util

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteCSV renders a header row followed by the data rows. encoding/csv
// quotes fields containing commas or quotes and doubles embedded quotes.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV cell formatters. Nil pointers come from outer joins and render as
// empty fields.

func CSVAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func CSVAmountPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return CSVAmount(*v)
}

func CSVString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func CSVInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func CSVDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}
