package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable draws rows under headers with rounded borders. Short rows are
// padded and header text keeps its case.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(toRow(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(toRow(row, len(headers)))
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func toRow(fields []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := range r {
		r[i] = ""
		if i < len(fields) {
			r[i] = fields[i]
		}
	}
	return r
}

// renderRows prints a bordered table on terminals and tab-separated rows
// otherwise, so piped output stays easy to parse.
func renderRows(w io.Writer, headers []string, rows [][]string, aligns []columnAlignment) string {
	if !isTerminal(w) {
		return renderTSV(rows)
	}
	return renderTable(headers, rows, aligns) + "\n"
}

func renderTSV(rows [][]string) string {
	var out []byte
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				out = append(out, '\t')
			}
			out = append(out, field...)
		}
		out = append(out, '\n')
	}
	return string(out)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
