package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luismascotto/vtt2srt/internal/convert"
	"github.com/luismascotto/vtt2srt/internal/model"
)

// tuiReviewer asks for confirmation in a Bubble Tea viewport before each write.
type tuiReviewer struct {
	width       int
	height      int
	previewCues int
}

func (r *tuiReviewer) Review(p convert.Preview) (convert.Decision, error) {
	vpModel, err := model.NewModel(filepath.Base(p.Input), previewMarkdown(p, r.previewCues), r.width, r.height)
	if err != nil {
		return convert.DecisionSkip, fmt.Errorf("new model: %w", err)
	}

	retModel, err := tea.NewProgram(vpModel, tea.WithMouseAllMotion()).Run()
	if err != nil {
		return convert.DecisionSkip, fmt.Errorf("run tea program: %w", err)
	}
	ui, ok := retModel.(model.UIModel)
	if !ok {
		return convert.DecisionSkip, errors.New("retModel is not of type UIModel")
	}

	switch {
	case ui.Quit:
		return convert.DecisionQuit, nil
	case ui.Apply:
		return convert.DecisionApply, nil
	default:
		return convert.DecisionSkip, nil
	}
}

func previewMarkdown(p convert.Preview, cues int) string {
	var sb strings.Builder
	sb.WriteString("# vtt2srt\n\n")
	sb.WriteString("| | |\n| --- | --- |\n")
	fmt.Fprintf(&sb, "| Input | `%s` |\n", p.Input)
	fmt.Fprintf(&sb, "| Output | `%s` |\n", p.Output)
	fmt.Fprintf(&sb, "| Mode | %s |\n", p.Mode)
	fmt.Fprintf(&sb, "| Cues | %d |\n", p.Stats.Cues)
	fmt.Fprintf(&sb, "| Span | %s |\n\n", p.Stats.Span())

	head, more := firstBlocks(p.Text, cues)
	fmt.Fprintf(&sb, "## First %d cues\n```\n%s\n```\n", cues, head)
	if more {
		sb.WriteString("\n_…more cues not shown_\n")
	}
	return sb.String()
}

// firstBlocks returns the first n blank-line separated blocks of text and
// whether any were left out.
func firstBlocks(text string, n int) (string, bool) {
	blocks := make([]string, 0, n)
	for _, blk := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if strings.TrimSpace(blk) == "" {
			continue
		}
		if len(blocks) == n {
			return strings.Join(blocks, "\n\n"), true
		}
		blocks = append(blocks, strings.Trim(blk, "\n"))
	}
	return strings.Join(blocks, "\n\n"), false
}
