package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/oddscout/internal/models"
)

// tableLimit bounds console output; the CSV export carries the full batch
const tableLimit = 20

// RenderTable prints the top recommendations as a console table
func RenderTable(w io.Writer, recs []*models.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No value bets found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "League", "Match", "Time", "Book", "Outcome", "Odds", "Edge %", "EV", "Stake")

	for i, rec := range recs {
		if i >= tableLimit {
			break
		}
		table.Append(
			formatInt(i+1),
			rec.League,
			fmt.Sprintf("%s vs %s", rec.HomeTeam, rec.AwayTeam),
			rec.StartTimeLocal.Format("01/02 15:04"),
			rec.Bookmaker,
			string(rec.Outcome),
			fixed(rec.PriceDecimal, 2),
			fixed(rec.EdgePct, 2),
			fixed(rec.EV, 4),
			fixed(rec.KellyStake, 2),
		)
	}

	table.Render()
}
