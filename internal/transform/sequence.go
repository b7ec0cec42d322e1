package transform

import (
	"strconv"

	"github.com/luismascotto/vtt2srt/internal/model"
)

// AddSequenceNumbers inserts 1, 2, 3, ... above each SRT timing line.
func AddSequenceNumbers(doc model.Document) model.Document {
	out := make([]string, 0, len(doc.Lines)+len(doc.Lines)/3)
	counter := 1
	for _, line := range doc.Lines {
		if isCueTimestamp(line) {
			out = append(out, strconv.Itoa(counter))
			counter++
		}
		out = append(out, line)
	}
	return model.Document{Lines: out}
}
