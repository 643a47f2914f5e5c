package equation

import (
	"log/slog"
	"slices"
	"strings"
)

// Segment is one node of the parsed expression: a parenthesized group on a
// single nesting level whose nested groups appear as markers.
type Segment struct {
	// Text is the group's masked template, including its own parentheses.
	Text string
	// Children holds the arena ids of the segments substituted, in order,
	// into the markers of Text.
	Children []int
	// Level is the nesting level of the group.
	Level int
}

// Layers is the structural parse of an expression.
//
// Blobs is the layer map: for each level, the concatenation of every
// template cell on that level with a [Separator] between consecutive groups.
// Segments is the same information as an arena indexed by segment id. Ids
// are assigned level by level, so every child id is greater than the id of
// its parent, and walking the arena from the last id to the first visits
// every segment after all of its children.
type Layers struct {
	Blobs    map[int]string
	Segments []Segment
	levels   [][]int
}

// BuildLayers groups the cells of dm by level and links every marker to the
// segment that resolves it.
func BuildLayers(dm DepthMap) (*Layers, error) {
	if len(dm.IDs) != len(dm.Template) {
		return nil, ErrOperation.With(
			slog.String("reason", "depth map is not parallel"),
			slog.Int("ids", len(dm.IDs)),
			slog.Int("template", len(dm.Template)),
		)
	}

	depth := dm.MaxDepth()
	blobs := make([]strings.Builder, depth+1)

	for i, id := range dm.IDs {
		b := &blobs[id]

		// A closed group followed by anything on the same level begins an
		// independent segment.
		if s := b.String(); s != "" && s[len(s)-1] == ')' {
			b.WriteByte(Separator)
		}

		b.WriteRune(dm.Template[i])
	}

	l := &Layers{
		Blobs:  make(map[int]string, depth),
		levels: make([][]int, depth+1),
	}

	for level := 1; level <= depth; level++ {
		blob := blobs[level].String()
		l.Blobs[level] = blob

		if blob == "" {
			continue
		}

		for text := range strings.SplitSeq(blob, string(Separator)) {
			l.levels[level] = append(l.levels[level], len(l.Segments))
			l.Segments = append(l.Segments, Segment{Text: text, Level: level})
		}
	}

	// Every marker on level k consumes the next segment of level k+1.
	for level := 1; level <= depth; level++ {
		next := 0

		var below []int
		if level < depth {
			below = l.levels[level+1]
		}

		for _, id := range l.levels[level] {
			seg := &l.Segments[id]

			n := strings.Count(seg.Text, string(Marker))
			if next+n > len(below) {
				return nil, ErrOperation.With(
					slog.String("reason", "marker without segment"),
					slog.Int("level", level),
					slog.String("segment", seg.Text),
				)
			}

			seg.Children = slices.Clone(below[next : next+n])
			next += n
		}

		if next != len(below) {
			return nil, ErrOperation.With(
				slog.String("reason", "segment without marker"),
				slog.Int("level", level+1),
			)
		}
	}

	return l, nil
}

// Depth returns the deepest level.
func (l *Layers) Depth() int { return len(l.levels) - 1 }

// Root returns the id of the outermost segment.
func (l *Layers) Root() int { return 0 }

// Level returns the ids of the segments on the given level, left to right.
func (l *Layers) Level(level int) []int {
	if level < 1 || level >= len(l.levels) {
		return nil
	}

	return slices.Clone(l.levels[level])
}

// SegmentTexts returns the masked texts of the segments on the given level.
func (l *Layers) SegmentTexts(level int) []string {
	ids := l.Level(level)
	texts := make([]string, len(ids))

	for i, id := range ids {
		texts[i] = l.Segments[id].Text
	}

	return texts
}
