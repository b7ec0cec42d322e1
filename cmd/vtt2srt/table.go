package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/luismascotto/vtt2srt/internal/convert"
)

func renderSummary(report convert.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Status", "Cues", "Span", "Output"})

	for _, res := range report.Results {
		cues, span, output := "-", "-", "-"
		switch res.Status {
		case convert.StatusConverted:
			cues = strconv.Itoa(res.Stats.Cues)
			span = res.Stats.Span()
			output = res.Output
		case convert.StatusDeclined:
			cues = strconv.Itoa(res.Stats.Cues)
			span = res.Stats.Span()
		}
		tw.AppendRow(table.Row{res.Input, string(res.Status), cues, span, output})
	}

	tw.AppendFooter(table.Row{
		"Total " + strconv.Itoa(len(report.Results)),
		strconv.Itoa(report.Count(convert.StatusConverted)) + " converted",
		"", "",
		strconv.Itoa(report.Count(convert.StatusSkipped)) + " skipped",
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
