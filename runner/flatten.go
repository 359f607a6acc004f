package runner

import "github.com/ardnew/kataru/story"

// flatPassage is the flattened line array for one passage, plus the
// Branches bookkeeping needed to dispatch and to reconstruct a break stack
// when resuming mid-passage (§4.6).
type flatPassage struct {
	lines []story.RawLine

	// armStart[i] holds the start index of each arm of the Branches line
	// at flat index i.
	armStart map[int][]int

	// branchEnd[i] is the flat index immediately following the entire
	// Branches region starting at i -- the target each synthetic Break
	// between arms resolves to, and the target taken directly when no
	// arm's guard is satisfied.
	branchEnd map[int]int
}

// flatten lays out a passage's lines into a single array: Branches lines
// are expanded in place (arm 0 immediately following the head, each
// subsequent arm preceded by a synthetic Break), and every other line kind
// is copied verbatim. A synthetic Return is appended at the end.
//
// For a Branches line of k arms with flattened arm lengths l1..lk, this
// produces a region of 1 + sum(li) + (k-1) lines: the head, every arm's
// body, and one Break between each pair of arms.
func flatten(passage story.Passage) *flatPassage {
	fp := &flatPassage{
		armStart:  make(map[int][]int),
		branchEnd: make(map[int]int),
	}

	flattenInto(passage, fp)
	fp.lines = append(fp.lines, story.RawLine{Kind: story.KindReturn})

	return fp
}

func flattenInto(lines story.Passage, fp *flatPassage) {
	for _, ln := range lines {
		if ln.Kind != story.KindBranches {
			fp.lines = append(fp.lines, ln)

			continue
		}

		idx := len(fp.lines)
		fp.lines = append(fp.lines, ln)

		starts := make([]int, len(ln.Branches.Arms))

		for i, arm := range ln.Branches.Arms {
			if i > 0 {
				fp.lines = append(fp.lines, story.RawLine{Kind: story.KindBreak})
			}

			starts[i] = len(fp.lines)
			flattenInto(arm.Lines, fp)
		}

		fp.armStart[idx] = starts
		fp.branchEnd[idx] = len(fp.lines)
	}
}

// loadBreaks reconstructs the break-target stack active at line index upto
// by replaying the flat array from the start, per §4.6: every Branches line
// entered along the way pushes its branchEnd, and any break target already
// passed is popped before continuing.
func loadBreaks(fp *flatPassage, upto int) []int {
	var breaks []int

	for i := 0; i < upto; i++ {
		for len(breaks) > 0 && breaks[len(breaks)-1] <= i {
			breaks = breaks[:len(breaks)-1]
		}

		if fp.lines[i].Kind == story.KindBranches {
			if end, ok := fp.branchEnd[i]; ok {
				breaks = append(breaks, end)
			}
		}
	}

	for len(breaks) > 0 && breaks[len(breaks)-1] <= upto {
		breaks = breaks[:len(breaks)-1]
	}

	return breaks
}
