package transform

import (
	"github.com/luismascotto/vtt2srt/internal/model"
)

// Convert turns the full text of a VTT file into SRT text.
func Convert(text string, mode model.Mode) string {
	return ApplyAll(model.NewDocument(text), mode).Render()
}

// ApplyAll runs the pipeline stages in their fixed order. Numbering must come
// last: it only recognizes fully normalized timing lines.
func ApplyAll(doc model.Document, mode model.Mode) model.Document {
	doc = NormalizeTimestamps(doc)
	doc = StripHeaders(doc)
	doc = StripMarkup(doc, mode)
	if mode == model.ModeClean {
		doc = RemoveBlankLines(doc)
		doc = RemoveStaleIdentifiers(doc)
	}
	return AddSequenceNumbers(doc)
}
