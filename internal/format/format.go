// Package format renders deepscan's terminal output: ranking tables, run
// history, and the value formatters (percentages, byte sizes, durations)
// the report layer shares. Tables come in two render modes, fixed-width
// ASCII for the terminal and Markdown for piping into docs.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode selects the table render target.
type Mode int

const (
	ASCII    Mode = iota // box-drawing terminal tables
	Markdown             // pipe-delimited Markdown tables
)

// ColumnAlign is the horizontal alignment of a column's cells.
type ColumnAlign int

const (
	AlignDefault ColumnAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

var textAligns = map[ColumnAlign]text.Align{
	AlignLeft:   text.AlignLeft,
	AlignCenter: text.AlignCenter,
	AlignRight:  text.AlignRight,
}

// ColumnConfig adjusts one column by its 1-based index. A zero MaxWidth
// leaves the width unconstrained; probability columns set AlignRight so the
// decimal points line up.
type ColumnConfig struct {
	Number   int
	Align    ColumnAlign
	MaxWidth int
}

// TableBuilder accumulates a table and renders it once via String. The
// render Mode is fixed at creation; everything else can be added in any
// order before String is called.
type TableBuilder interface {
	Header(cols ...string)
	// Row appends a data row; values render via their default formatting.
	Row(vals ...any)
	// Footer appends a summary row, e.g. the probability total.
	Footer(vals ...any)
	Columns(cfgs ...ColumnConfig)
	String() string
}

// NewTable returns an empty TableBuilder rendering in mode m.
func NewTable(m Mode) TableBuilder {
	return &builder{mode: m}
}

// builder defers go-pretty construction to String so that column configs
// and rows may arrive in any order.
type builder struct {
	mode   Mode
	header []string
	rows   [][]any
	footer []any
	cfgs   []ColumnConfig
}

func (b *builder) Header(cols ...string) { b.header = cols }

func (b *builder) Row(vals ...any) { b.rows = append(b.rows, vals) }

func (b *builder) Footer(vals ...any) { b.footer = vals }

func (b *builder) Columns(cfgs ...ColumnConfig) { b.cfgs = append(b.cfgs, cfgs...) }

func (b *builder) String() string {
	w := table.NewWriter()
	if b.mode == ASCII {
		w.SetStyle(table.StyleLight)
	}
	if len(b.cfgs) > 0 {
		configs := make([]table.ColumnConfig, len(b.cfgs))
		for i, c := range b.cfgs {
			configs[i] = table.ColumnConfig{
				Number:      c.Number,
				Align:       textAligns[c.Align],
				AlignFooter: textAligns[c.Align],
				WidthMax:    c.MaxWidth,
			}
		}
		w.SetColumnConfigs(configs)
	}
	if len(b.header) > 0 {
		hdr := make(table.Row, len(b.header))
		for i, c := range b.header {
			hdr[i] = c
		}
		w.AppendHeader(hdr)
	}
	for _, r := range b.rows {
		w.AppendRow(table.Row(r))
	}
	if len(b.footer) > 0 {
		w.AppendFooter(table.Row(b.footer))
	}
	if b.mode == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
