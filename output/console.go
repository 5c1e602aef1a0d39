package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"portscanner/scanner"
)

const timeUnit = time.Millisecond

// PrintTable renders a finalized scan result as an aligned text table.
func PrintTable(res *scanner.Result, w io.Writer) {
	fmt.Fprintf(w, "Target: %s (%s)\n", res.Target, res.Addr)
	fmt.Fprintf(w, "Status: %s, %d/%d ports in %s\n\n",
		res.Status, len(res.Outcomes), len(res.Ports), res.Duration().Round(timeUnit))

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tSTATE\tSERVICE\tINFO")
	for _, o := range res.Outcomes {
		info := o.Detail
		if info == "" {
			info = fmt.Sprintf("rtt=%s", o.Elapsed.Round(timeUnit))
		}
		fmt.Fprintf(tw, "%d/tcp\t%s\t%s\t%s\n", o.Port, o.Status, o.Service, info)
	}
	_ = tw.Flush()
}

// PrintOpen renders only the open ports, one per line.
func PrintOpen(res *scanner.Result, w io.Writer) {
	for _, o := range res.Open() {
		fmt.Fprintf(w, "%d/tcp open %s\n", o.Port, o.Service)
	}
}
