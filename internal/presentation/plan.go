// Package presentation turns generated markdown into a mount plan: the
// interactive widgets (audio players, copy buttons) a client attaches to the
// placeholder spans embedded in the text.
package presentation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/langassist/internal/domain"
)

// WidgetKind is the kind of interactive control mounted at a placeholder.
type WidgetKind string

const (
	WidgetAudio WidgetKind = "audio"
	WidgetCopy  WidgetKind = "copy"
)

// Point names an insertion point marker.
type Point string

const (
	PointUKAudio       Point = "uk-audio"
	PointUSAudio       Point = "us-audio"
	PointExample       Point = "example"
	PointPronunciation Point = "pronunciation"
)

// Widget is one control to mount. Index is the occurrence of Point in the
// markdown, counted from 0; Key ("point#index") identifies the mount.
type Widget struct {
	Key   string       `json:"key"`
	Kind  WidgetKind   `json:"kind"`
	Point Point        `json:"point"`
	Index int          `json:"index"`
	Voice domain.Voice `json:"voice,omitempty"`
	Text  string       `json:"text,omitempty"`
}

// AudioAvailability tells Plan which pronunciations can be played.
type AudioAvailability struct {
	UK bool
	US bool
}

// AvailabilityOf reports the audio present in a word lookup result.
func AvailabilityOf(r *domain.WordMeaningResult) AudioAvailability {
	return AudioAvailability{
		UK: r.AudioFor(domain.VoiceUK) != nil,
		US: r.AudioFor(domain.VoiceUS) != nil,
	}
}

func (a AudioAvailability) has(v domain.Voice) bool {
	switch v {
	case domain.VoiceUK:
		return a.UK
	case domain.VoiceUS:
		return a.US
	}
	return false
}

var (
	placeholderRe = regexp.MustCompile(`<span\s+data-(copy-)?placeholder="([a-z-]+)"\s*>\s*</span>`)
	phoneticRe    = regexp.MustCompile(`<span\s+class="phonetic-text"\s*>(.*?)</span>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	underscoreRe  = regexp.MustCompile(`(^|[\s(])_{1,3}([^_\s](?:[^_]*?[^_\s])?)_{1,3}([\s).,!?;:]|$)`)
	listMarkerRe  = regexp.MustCompile(`^\s*(?:[*+-]|\d+[.)])\s+`)
)

// Plan scans markdown for placeholder markers and returns the widgets to
// mount, in document order.
//
// An audio widget is planned for the first marker of a voice only when that
// voice's audio is available. Copy widgets are planned only inside list
// items: an example copies the item's plain text, a pronunciation copies the
// item's phonetic transcription; either is skipped when its text is empty.
func Plan(markdown string, audio AudioAvailability) []Widget {
	var (
		widgets []Widget
		seen    = make(map[Point]int)
	)

	for _, b := range splitBlocks(markdown) {
		for _, m := range placeholderRe.FindAllStringSubmatch(b.text, -1) {
			isCopy, point := m[1] != "", Point(m[2])
			index := seen[point]
			seen[point]++

			w := Widget{Key: key(point, index), Point: point, Index: index}
			switch {
			case !isCopy && (point == PointUKAudio || point == PointUSAudio):
				v := voiceOf(point)
				if index > 0 || !audio.has(v) {
					continue
				}
				w.Kind, w.Voice = WidgetAudio, v
			case isCopy && point == PointExample && b.listItem:
				w.Kind, w.Text = WidgetCopy, exampleText(b.text)
			case isCopy && point == PointPronunciation && b.listItem:
				w.Kind, w.Text = WidgetCopy, phoneticText(b.text)
			default:
				continue
			}
			if w.Kind == WidgetCopy && w.Text == "" {
				continue
			}
			widgets = append(widgets, w)
		}
	}
	return widgets
}

func key(p Point, index int) string {
	return fmt.Sprintf("%s#%d", p, index)
}

func voiceOf(p Point) domain.Voice {
	if p == PointUKAudio {
		return domain.VoiceUK
	}
	return domain.VoiceUS
}

type block struct {
	text     string
	listItem bool
}

// splitBlocks groups lines into list items (a marker line plus its
// continuation lines) and standalone lines.
func splitBlocks(markdown string) []block {
	var (
		blocks []block
		cur    *block
	)
	flush := func() {
		if cur != nil {
			blocks = append(blocks, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			flush()
			if trimmed != "" {
				blocks = append(blocks, block{text: line})
			}
		case listMarkerRe.MatchString(line):
			flush()
			cur = &block{text: line, listItem: true}
		case cur != nil:
			cur.text += "\n" + line
		default:
			blocks = append(blocks, block{text: line})
		}
	}
	flush()
	return blocks
}

// exampleText is the visible text of a list item: placeholder, markup and
// list marker removed, whitespace collapsed.
func exampleText(item string) string {
	s := placeholderRe.ReplaceAllString(item, "")
	s = listMarkerRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = underscoreRe.ReplaceAllString(s, "$1$2$3")
	s = strings.NewReplacer("*", "", "`", "").Replace(s)
	return domain.CollapseSpace(s)
}

func phoneticText(item string) string {
	m := phoneticRe.FindStringSubmatch(item)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(tagRe.ReplaceAllString(m[1], ""))
}
