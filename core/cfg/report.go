package cfg

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteProfile renders the function's branch profile as a table, one row
// per (block, successor) edge.
func (f *Function) WriteProfile(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Block", "Successor", "Target", "Count", "Total", "Probability"})
	table.SetAutoFormatHeaders(false)
	for _, b := range f.blocks {
		snap := b.profile.Snapshot()
		if len(b.successors) == 0 {
			table.Append([]string{strconv.Itoa(b.id), "-", "-", "-", strconv.FormatUint(snap.Total, 10), "-"})
			continue
		}
		for i, s := range b.successors {
			table.Append([]string{
				strconv.Itoa(b.id),
				strconv.Itoa(i),
				strconv.Itoa(s),
				strconv.FormatUint(snap.Counts[i], 10),
				strconv.FormatUint(snap.Total, 10),
				fmt.Sprintf("%.4f", snap.Probability(i)),
			})
		}
	}
	table.Render()
}
