package runner_test

import (
	"testing"

	"github.com/ardnew/kataru/bookmark"
	"github.com/ardnew/kataru/runner"
	"github.com/ardnew/kataru/story"
)

func newStory(passages map[string]story.Passage) *story.Story {
	st := story.New()
	st.Sections[story.RootNamespace] = &story.Section{Passages: passages}

	return st
}

func TestRunner_LinearText(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindText, Text: "hello"},
			{Kind: story.KindText, Text: "world"},
		},
	})

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, story.NewState())
	r := runner.New(st, bm)

	for _, want := range []string{"hello", "world"} {
		line, err := r.Next("")
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}

		if line.Text != want {
			t.Errorf("Next() = %q, want %q", line.Text, want)
		}
	}

	end, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if end.Kind != runner.LineEnd {
		t.Errorf("Next() kind = %v, want LineEnd", end.Kind)
	}
}

func TestRunner_Branches(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{
				Kind: story.KindBranches,
				Branches: story.Branches{
					Arms: []story.BranchArm{
						{
							Expr:  "$hp > 0",
							Lines: story.Passage{{Kind: story.KindText, Text: "alive"}},
						},
						{
							Expr:  "else",
							Lines: story.Passage{{Kind: story.KindText, Text: "dead"}},
						},
					},
				},
			},
			{Kind: story.KindText, Text: "after"},
		},
	})

	state := story.NewState()
	state.Set(story.RootNamespace, "hp", story.Number(10))

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, state)
	r := runner.New(st, bm)

	line, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "alive" {
		t.Fatalf("Next() = %q, want alive", line.Text)
	}

	line, err = r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "after" {
		t.Errorf("Next() = %q, want after (branch should rejoin past the else arm)", line.Text)
	}
}

func TestRunner_BranchesElseArm(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{
				Kind: story.KindBranches,
				Branches: story.Branches{
					Arms: []story.BranchArm{
						{
							Expr:  "$hp > 0",
							Lines: story.Passage{{Kind: story.KindText, Text: "alive"}},
						},
						{
							Expr:  "else",
							Lines: story.Passage{{Kind: story.KindText, Text: "dead"}},
						},
					},
				},
			},
			{Kind: story.KindText, Text: "after"},
		},
	})

	state := story.NewState()
	state.Set(story.RootNamespace, "hp", story.Number(0))

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, state)
	r := runner.New(st, bm)

	line, _ := r.Next("")
	if line.Text != "dead" {
		t.Fatalf("Next() = %q, want dead", line.Text)
	}

	line, _ = r.Next("")
	if line.Text != "after" {
		t.Errorf("Next() = %q, want after", line.Text)
	}
}

func TestRunner_CallAndReturn(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindText, Text: "before"},
			{Kind: story.KindCall, Call: story.QualifiedName{Name: "sub"}},
			{Kind: story.KindText, Text: "after"},
		},
		"sub": {
			{Kind: story.KindText, Text: "in sub"},
		},
	})

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, story.NewState())
	r := runner.New(st, bm)

	for _, want := range []string{"before", "in sub", "after"} {
		line, err := r.Next("")
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}

		if line.Text != want {
			t.Errorf("Next() = %q, want %q", line.Text, want)
		}
	}
}

func TestRunner_TailCallDoesNotGrowStack(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindCall, Call: story.QualifiedName{Name: "sub"}},
		},
		"sub": {
			{Kind: story.KindText, Text: "in sub"},
		},
	})

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, story.NewState())
	r := runner.New(st, bm)

	line, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "in sub" {
		t.Fatalf("Next() = %q, want 'in sub'", line.Text)
	}

	if len(bm.Stack) != 0 {
		t.Errorf("tail call pushed a frame: stack = %+v", bm.Stack)
	}

	end, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if end.Kind != runner.LineEnd {
		t.Errorf("Next() kind = %v, want LineEnd", end.Kind)
	}
}

func TestRunner_SetAddSub(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindSet, Set: []story.StateMod{
				{Target: story.QualifiedName{Name: "hp"}, Op: story.OpSet, Expr: "10"},
			}},
			{Kind: story.KindSet, Set: []story.StateMod{
				{Target: story.QualifiedName{Name: "hp"}, Op: story.OpSub, Expr: "3"},
			}},
			{Kind: story.KindText, Text: "{$hp}"},
		},
	})

	state := story.NewState()
	state.Set(story.RootNamespace, "hp", story.Number(0))

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, state)
	r := runner.New(st, bm)

	line, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "7" {
		t.Errorf("Next() = %q, want 7", line.Text)
	}
}

func TestRunner_Choices(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindChoices, Choices: story.Choices{
				Groups: []story.ChoiceGroup{{Items: []story.ChoiceItem{
					{Text: "go north", Target: "north"},
					{Text: "go south", Target: "south"},
				}}},
			}},
		},
		"north": {{Kind: story.KindText, Text: "you went north"}},
		"south": {{Kind: story.KindText, Text: "you went south"}},
	})

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, story.NewState())
	r := runner.New(st, bm)

	menu, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if menu.Kind != runner.LineChoices || len(menu.Options) != 2 {
		t.Fatalf("Next() = %+v, want a 2-option menu", menu)
	}

	line, err := r.Next("1")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "you went south" {
		t.Errorf("Next() = %q, want 'you went south'", line.Text)
	}
}

func TestRunner_Command(t *testing.T) {
	st := story.New()
	st.Sections[story.RootNamespace] = &story.Section{
		Config: story.Config{
			Commands: map[string]story.CommandSchema{"shake": {Params: []string{"ms", "strength"}}},
		},
		Passages: map[string]story.Passage{
			story.EntryPassage: {
				{Kind: story.KindCommand, Command: story.Command{Name: "shake", Args: []string{"200", "3"}}},
			},
		},
	}

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, story.NewState())
	r := runner.New(st, bm)

	line, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Kind != runner.LineCommand || line.CommandName != "shake" {
		t.Fatalf("Next() = %+v, want a shake command", line)
	}

	if line.Params["ms"] != story.Number(200) || line.Params["strength"] != story.Number(3) {
		t.Errorf("Next() params = %+v, want zipped ms/strength", line.Params)
	}
}

func TestRunner_Choices_InvalidSelectionIsAnEventNotAnError(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindChoices, Choices: story.Choices{
				Groups:  []story.ChoiceGroup{{Items: []story.ChoiceItem{{Text: "go north", Target: "north"}}}},
				Timeout: 10,
			}},
		},
		"north": {{Kind: story.KindText, Text: "you went north"}},
	})

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, story.NewState())
	r := runner.New(st, bm)

	menu, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if menu.Timeout != 10 {
		t.Errorf("Next() timeout = %v, want 10", menu.Timeout)
	}

	bad, err := r.Next("not a number")
	if err != nil {
		t.Fatalf("Next() error = %v, want an InvalidChoice event instead", err)
	}

	if bad.Kind != runner.LineInvalidChoice {
		t.Fatalf("Next() kind = %v, want LineInvalidChoice", bad.Kind)
	}

	line, err := r.Next("0")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "you went north" {
		t.Errorf("Next() = %q, want the menu to still be resolvable after an invalid attempt", line.Text)
	}
}

func TestRunner_SnapshotSaveLoad(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindSet, Set: []story.StateMod{
				{Target: story.QualifiedName{Name: "hp"}, Op: story.OpSet, Expr: "10"},
			}},
			{Kind: story.KindText, Text: "checkpoint"},
			{Kind: story.KindSet, Set: []story.StateMod{
				{Target: story.QualifiedName{Name: "hp"}, Op: story.OpSub, Expr: "10"},
			}},
			{Kind: story.KindText, Text: "{$hp}"},
		},
	})

	state := story.NewState()
	state.Set(story.RootNamespace, "hp", story.Number(0))

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, state)
	r := runner.New(st, bm)

	line, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "checkpoint" {
		t.Fatalf("Next() = %q, want checkpoint", line.Text)
	}

	r.SaveSnapshot("mid")

	// Diverge from the snapshot: corrupt hp and skip past the subtraction,
	// simulating further play that happened after the save.
	bm.State.Set(story.RootNamespace, "hp", story.Number(999))
	bm.Position.Line = 3

	line, err = r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "999" {
		t.Fatalf("Next() = %q, want 999 (the post-save divergence)", line.Text)
	}

	if err := r.LoadSnapshot("mid"); err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	line, err = r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "0" {
		t.Errorf("Next() after LoadSnapshot = %q, want 0 (hp restored to 10, subtraction replayed)", line.Text)
	}

	if err := r.LoadSnapshot("nonexistent"); err == nil {
		t.Error("LoadSnapshot() of a missing snapshot should return an error")
	}
}

func TestRunner_SnapshotRematerializesPendingChoices(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindChoices, Choices: story.Choices{
				Groups: []story.ChoiceGroup{{Items: []story.ChoiceItem{
					{Text: "go north", Target: "north"},
					{Text: "go south", Target: "south"},
				}}},
			}},
		},
		"north": {{Kind: story.KindText, Text: "you went north"}},
		"south": {{Kind: story.KindText, Text: "you went south"}},
	})

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, story.NewState())
	r := runner.New(st, bm)

	if _, err := r.Next(""); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	r.SaveSnapshot("at-menu")

	if _, err := r.Next("0"); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if err := r.LoadSnapshot("at-menu"); err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	menu, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if menu.Kind != runner.LineChoices || len(menu.Options) != 2 {
		t.Fatalf("Next() after LoadSnapshot = %+v, want the 2-option menu to reappear", menu)
	}

	line, err := r.Next("1")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "you went south" {
		t.Errorf("Next() = %q, want 'you went south'", line.Text)
	}
}

func TestRunner_Input(t *testing.T) {
	st := newStory(map[string]story.Passage{
		story.EntryPassage: {
			{Kind: story.KindInput, Input: story.Input{
				Prompt: "What is your name?",
				Target: story.QualifiedName{Name: "name"},
			}},
			{Kind: story.KindText, Text: "Hello, {$name}!"},
		},
	})

	bm := bookmark.New(story.RootNamespace, story.EntryPassage, story.NewState())
	r := runner.New(st, bm)

	prompt, err := r.Next("")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if prompt.Kind != runner.LineInput {
		t.Fatalf("Next() kind = %v, want LineInput", prompt.Kind)
	}

	line, err := r.Next("Hero")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if line.Text != "Hello, Hero!" {
		t.Errorf("Next() = %q, want 'Hello, Hero!'", line.Text)
	}
}
