package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cashplan-dev/cashplan/internal/forecast"
	"github.com/cashplan-dev/cashplan/internal/model"
)

// Header is the CSV header for an exported projection timeline.
const Header = "date,type,name,id,account_id,amount,total_balance"

const (
	numFields  = 7
	colDate    = 0
	colType    = 1
	colName    = 2
	colID      = 3
	colAcct    = 4
	colAmount  = 5
	colBalance = 6
)

// WriteTimeline writes a projection's events as CSV, one row per event in
// timeline order.
func WriteTimeline(w io.Writer, p forecast.Projection) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, ev := range p.Timeline {
		if err := cw.Write(marshalEvent(ev)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalEvent(ev forecast.Event) []string {
	row := make([]string, numFields)
	row[colDate] = ev.Date.Format(model.DateFormat)
	row[colType] = string(ev.Type)
	row[colName] = ev.Name
	row[colID] = ev.ID
	row[colAcct] = ev.AccountID
	row[colAmount] = ev.Amount.StringFixed(2)
	row[colBalance] = ev.Balance.StringFixed(2)
	return row
}
