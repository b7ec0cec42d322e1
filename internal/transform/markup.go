package transform

import (
	"regexp"
	"strings"

	"github.com/luismascotto/vtt2srt/internal/model"
)

var (
	reHeaderLine   = regexp.MustCompile(`^WEBVTT(?:[ \t].*)?$`)
	reMetadataLine = regexp.MustCompile(`^(?:Kind|Language):[ \-\p{L}\p{N}_]+$`)

	reClassSpan    = regexp.MustCompile(`<c[.\p{L}\p{N}_]*>|</c>`)
	reKaraokeStamp = regexp.MustCompile(`<(?:\d\d:)?\d\d:\d\d\.\d{3}>`)
	reVoiceSpan    = regexp.MustCompile(`<(?:v|lang)(?:[ \t.][^>]*)?>|</(?:v|lang)>`)

	// ::cue(c.colorE5E5E5) { color: rgb(229,229,229);
	reStyleRuleStart = regexp.MustCompile(`^::[-\w]+(?:\([^)]*\))?[ \t]*\{`)
	reBlockHeader    = regexp.MustCompile(`^(?:STYLE|REGION|NOTE)(?:[ \t].*)?$`)
)

// StripHeaders drops the WEBVTT signature and Kind:/Language: metadata lines.
func StripHeaders(doc model.Document) model.Document {
	out := make([]string, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		if reHeaderLine.MatchString(line) || reMetadataLine.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return model.Document{Lines: out}
}

// StripMarkup removes inline class and karaoke tags, ::cue style rules and
// Style:/## marker pairs. Clean mode also drops STYLE, REGION and NOTE blocks
// and voice/lang spans.
func StripMarkup(doc model.Document, mode model.Mode) model.Document {
	clean := mode == model.ModeClean
	out := make([]string, 0, len(doc.Lines))

	inStyleRule := false
	inBlock := false
	for i := 0; i < len(doc.Lines); i++ {
		line := doc.Lines[i]

		// A timing line always ends a style rule or block.
		if (inStyleRule || inBlock) && isCueTimestamp(line) {
			inStyleRule, inBlock = false, false
		}
		if inStyleRule {
			if strings.Contains(line, "}") {
				inStyleRule = false
			}
			continue
		}
		if inBlock {
			if strings.TrimSpace(line) == "" {
				inBlock = false
				out = append(out, line)
			}
			continue
		}

		if loc := reStyleRuleStart.FindStringIndex(line); loc != nil {
			inStyleRule = !strings.Contains(line[loc[1]:], "}") && ruleClosesBeforeCue(doc.Lines[i+1:])
			continue
		}
		if line == "Style:" && i+1 < len(doc.Lines) && doc.Lines[i+1] == "##" {
			i++
			continue
		}
		if clean && atBlockStart(out) && reBlockHeader.MatchString(line) {
			inBlock = true
			continue
		}

		line = reClassSpan.ReplaceAllString(line, "")
		line = reKaraokeStamp.ReplaceAllString(line, "")
		if clean {
			line = reVoiceSpan.ReplaceAllString(line, "")
		}
		out = append(out, line)
	}
	return model.Document{Lines: out}
}

// ruleClosesBeforeCue reports whether a "}" shows up before the next timing
// line. An unterminated rule only loses its opening line.
func ruleClosesBeforeCue(lines []string) bool {
	for _, line := range lines {
		if isCueTimestamp(line) {
			return false
		}
		if strings.Contains(line, "}") {
			return true
		}
	}
	return false
}

func atBlockStart(emitted []string) bool {
	return len(emitted) == 0 || strings.TrimSpace(emitted[len(emitted)-1]) == ""
}
