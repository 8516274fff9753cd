package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// newTable returns a tabwriter with a header and underline already written
func newTable(out io.Writer, columns ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))
	underline := make([]string, len(columns))
	for i, c := range columns {
		underline[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))
	return w
}

// formatMoney renders C-bills with thousands separators
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatFloat(v, 'f', 0, 64)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String() + " C"
	}
	return b.String() + " C"
}

// parsePersonID reads a person id flag
func parsePersonID(flag, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--%s must be a person id: %w", flag, err)
	}
	return id, nil
}

// printReport summarises a reconciliation pass
func printReport(out io.Writer, report *unit.ReconcileReport) {
	if report == nil || report.IsEmpty() {
		fmt.Fprintln(out, "  Parts registry already matches the definition")
		return
	}
	fmt.Fprintf(out, "  Created:   %d\n", report.Count(unit.ActionCreate))
	fmt.Fprintf(out, "  Removed:   %d\n", report.Count(unit.ActionRemove))
	fmt.Fprintf(out, "  Refreshed: %d\n", report.Count(unit.ActionRefresh))
	fmt.Fprintf(out, "  Promoted:  %d\n", report.Count(unit.ActionPromote))
	if verbose {
		for _, op := range report.Ops {
			fmt.Fprintf(out, "    %-8s %-40s %s\n", op.Action, op.Name, op.Key)
		}
	}
	for _, conflict := range report.Inconsistent {
		fmt.Fprintf(out, "  ! duplicate %s discarded (kept %s)\n", conflict.Key, conflict.RetainedPartID)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var stdout io.Writer = os.Stdout
