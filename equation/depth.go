package equation

import "strings"

const (
	// Marker stands in for a nested group in the masked template. Each
	// marker is replaced by the resolved value of one segment from the level
	// directly beneath it.
	Marker = '#'

	// Separator delimits independent segments within one layer blob.
	Separator = '|'
)

// DepthMap is the result of a single scan over a parenthesized expression.
// IDs and Template are parallel: Template[i] is stamped with nesting level
// IDs[i].
//
// Each opening parenthesis occupies two cells: a [Marker] on the enclosing
// level, followed by the parenthesis itself on the new level. All other
// characters occupy one cell.
type DepthMap struct {
	IDs      []int
	Template []rune
}

// MapDepth computes the depth map of text in one left-to-right pass.
//
// Depth is decremented when the previous character was a closing
// parenthesis, so the change takes effect one character after the ')' and
// every group's closing parenthesis stays on the group's own level.
func MapDepth(text string) DepthMap {
	n := len(text) + strings.Count(text, "(")
	dm := DepthMap{
		IDs:      make([]int, 0, n),
		Template: make([]rune, 0, n),
	}

	var (
		depth int
		prev  rune
	)

	for _, c := range text {
		if prev == ')' {
			depth--
		}

		if c == '(' {
			dm.IDs = append(dm.IDs, depth+1)
			dm.Template = append(dm.Template, Marker)
			depth++
		}

		dm.IDs = append(dm.IDs, depth+1)
		dm.Template = append(dm.Template, c)

		prev = c
	}

	return dm
}

// Len returns the number of cells.
func (dm DepthMap) Len() int { return len(dm.IDs) }

// MaxDepth returns the deepest level in dm.
func (dm DepthMap) MaxDepth() int {
	m := 0
	for _, id := range dm.IDs {
		m = max(m, id)
	}

	return m
}

// String renders the masked template.
func (dm DepthMap) String() string { return string(dm.Template) }
