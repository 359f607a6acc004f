package runner

import (
	"testing"

	"github.com/ardnew/kataru/story"
)

func TestFlatten_LengthFormula(t *testing.T) {
	branches := story.RawLine{
		Kind: story.KindBranches,
		Branches: story.Branches{
			Arms: []story.BranchArm{
				{Expr: "a", Lines: story.Passage{{Kind: story.KindText}, {Kind: story.KindText}}},
				{Expr: "b", Lines: story.Passage{{Kind: story.KindText}}},
				{Expr: "else", Lines: story.Passage{{Kind: story.KindText}, {Kind: story.KindText}, {Kind: story.KindText}}},
			},
		},
	}

	fp := flatten(story.Passage{branches})

	// 1 head + (2+1+3) arm lines + 2 breaks + 1 synthetic return = 10
	want := 1 + (2 + 1 + 3) + 2 + 1
	if len(fp.lines) != want {
		t.Fatalf("len(fp.lines) = %d, want %d", len(fp.lines), want)
	}

	if fp.armStart[0][0] != 1 {
		t.Errorf("armStart[0] = %d, want 1", fp.armStart[0][0])
	}

	// arm1 starts after arm0 (2 lines) + 1 break
	if fp.armStart[0][1] != 4 {
		t.Errorf("armStart[1] = %d, want 4", fp.armStart[0][1])
	}

	// arm2 starts after arm1 (1 line) + 1 break
	if fp.armStart[0][2] != 6 {
		t.Errorf("armStart[2] = %d, want 6", fp.armStart[0][2])
	}

	if fp.branchEnd[0] != 9 {
		t.Errorf("branchEnd[0] = %d, want 9", fp.branchEnd[0])
	}
}

func TestFlatten_NestedBranches(t *testing.T) {
	inner := story.RawLine{
		Kind: story.KindBranches,
		Branches: story.Branches{
			Arms: []story.BranchArm{
				{Expr: "x", Lines: story.Passage{{Kind: story.KindText}}},
				{Expr: "else", Lines: story.Passage{{Kind: story.KindText}}},
			},
		},
	}

	outer := story.RawLine{
		Kind: story.KindBranches,
		Branches: story.Branches{
			Arms: []story.BranchArm{
				{Expr: "y", Lines: story.Passage{inner}},
				{Expr: "else", Lines: story.Passage{{Kind: story.KindText}}},
			},
		},
	}

	fp := flatten(story.Passage{outer})

	// outer head(1) + arm0(inner flattened: 1+1+1+1=4) + break(1) + arm1(1) + return(1) = 8
	if len(fp.lines) != 8 {
		t.Fatalf("len(fp.lines) = %d, want 8", len(fp.lines))
	}

	if _, ok := fp.branchEnd[1]; !ok {
		t.Error("nested branches head not recorded at index 1")
	}
}

func TestLoadBreaks_ReconstructsMidBranch(t *testing.T) {
	branches := story.RawLine{
		Kind: story.KindBranches,
		Branches: story.Branches{
			Arms: []story.BranchArm{
				{Expr: "a", Lines: story.Passage{{Kind: story.KindText}}},
				{Expr: "else", Lines: story.Passage{{Kind: story.KindText}}},
			},
		},
	}

	fp := flatten(story.Passage{branches, {Kind: story.KindText}})

	breaks := loadBreaks(fp, fp.armStart[0][0])
	if len(breaks) != 1 || breaks[0] != fp.branchEnd[0] {
		t.Errorf("loadBreaks() = %v, want [%d]", breaks, fp.branchEnd[0])
	}

	afterBranch := fp.branchEnd[0]

	breaks = loadBreaks(fp, afterBranch)
	if len(breaks) != 0 {
		t.Errorf("loadBreaks() past the branch = %v, want empty", breaks)
	}
}
