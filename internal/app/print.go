package app

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dukerupert/superlista/internal/grocery"
	"github.com/dukerupert/superlista/internal/model"
	"github.com/dukerupert/superlista/internal/shoplist"
)

var (
	colorMuted   = lipgloss.Color("#6c757d")
	colorDivider = lipgloss.Color("#5f9fb0")
)

// WriteList prints rendered rows as an aligned table followed by the
// user's stats. Styling degrades to plain text when w is not a terminal.
func WriteList(w io.Writer, rows []shoplist.Row, st model.UserStats, now time.Time) error {
	r := lipgloss.NewRenderer(w)
	checkedStyle := r.NewStyle().Foreground(colorMuted).Strikethrough(true)
	dividerStyle := r.NewStyle().Foreground(colorDivider).Bold(true)
	statsStyle := r.NewStyle().Bold(true)

	if len(rows) == 0 {
		fmt.Fprintln(w, r.NewStyle().Foreground(colorMuted).Render("La lista está vacía"))
	}

	// Align plain text first; escape sequences would skew tabwriter widths.
	var table bytes.Buffer
	tw := tabwriter.NewWriter(&table, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		if row.Kind == shoplist.RowDivider {
			fmt.Fprintf(tw, "── %s ──\n", row.Text)
			continue
		}
		it := row.Item
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\t%s\n",
			box, strings.Join(strings.Fields(it.Name), " "),
			grocery.PluralizeUnit(it.Quantity, it.Unit),
			it.Place,
			it.Status,
			it.AddedBy,
			grocery.FormatRelative(now, it.AddedAt),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(table.String(), "\n"), "\n")
	for i, row := range rows {
		line := strings.TrimRight(lines[i], " ")
		switch {
		case row.Kind == shoplist.RowDivider:
			line = dividerStyle.Render(line)
		case row.Item.Checked:
			line = checkedStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("Agregados: %d  Comprados: %d  Completado: %d%%",
		st.TotalItems, st.CompletedItems, st.CompletionRate)
	_, err := fmt.Fprintf(w, "\n%s\n", statsStyle.Render(summary))
	return err
}
