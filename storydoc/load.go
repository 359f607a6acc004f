package storydoc

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/kataru/apperr"
	"github.com/ardnew/kataru/choice"
	"github.com/ardnew/kataru/story"
)

// Load reads an authoring document from r and builds the [story.Story] it
// describes.
func Load(r io.Reader) (*story.Story, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.ErrMalformedLine.Wrap(err)
	}

	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, apperr.ErrMalformedLine.Wrap(err)
	}

	top, ok := asMapSlice(raw)
	if !ok {
		return nil, apperr.ErrMalformedLine.With(slog.String("reason", "document root is not a mapping"))
	}

	st := story.New()
	seenNamespace := make(map[string]bool, len(top))

	for _, item := range top {
		namespace, ok := item.Key.(string)
		if !ok {
			return nil, apperr.ErrMalformedLine.With(slog.String("reason", "namespace key is not a string"))
		}

		if seenNamespace[namespace] {
			return nil, apperr.ErrDuplicateNamespace.With(slog.String("namespace", namespace))
		}

		seenNamespace[namespace] = true

		sec, err := decodeSection(item.Value)
		if err != nil {
			return nil, err
		}

		st.Sections[namespace] = sec
	}

	return st, nil
}

func decodeSection(raw any) (*story.Section, error) {
	ms, ok := asMapSlice(raw)
	if !ok {
		return nil, apperr.ErrMalformedLine.With(slog.String("reason", "section is not a mapping"))
	}

	sec := &story.Section{Passages: make(map[string]story.Passage)}

	if v, ok := lookup(ms, "config"); ok {
		cfg, err := decodeConfig(v)
		if err != nil {
			return nil, err
		}

		sec.Config = cfg
	}

	if v, ok := lookup(ms, "passages"); ok {
		passagesRaw, ok := asMapSlice(v)
		if !ok {
			return nil, apperr.ErrMalformedLine.With(slog.String("reason", "passages is not a mapping"))
		}

		seen := make(map[string]bool, len(passagesRaw))

		for _, item := range passagesRaw {
			name, ok := item.Key.(string)
			if !ok {
				return nil, apperr.ErrMalformedLine.With(slog.String("reason", "passage key is not a string"))
			}

			if seen[name] {
				return nil, apperr.ErrDuplicatePassage.With(slog.String("passage", name))
			}

			seen[name] = true

			lines, ok := asSlice(item.Value)
			if !ok {
				return nil, apperr.ErrMalformedLine.With(slog.String("passage", name), slog.String("reason", "body is not a sequence"))
			}

			passage, err := decodeLines(lines, sec.Config)
			if err != nil {
				return nil, err
			}

			sec.Passages[name] = passage
		}
	}

	return sec, nil
}

func decodeConfig(raw any) (story.Config, error) {
	ms, ok := asMapSlice(raw)
	if !ok {
		return story.Config{}, apperr.ErrMalformedLine.With(slog.String("reason", "config is not a mapping"))
	}

	cfg := story.Config{
		State:      make(map[string]story.Value),
		Characters: make(map[string]string),
		Commands:   make(map[string]story.CommandSchema),
	}

	if v, ok := lookup(ms, "state"); ok {
		stateMS, ok := asMapSlice(v)
		if !ok {
			return story.Config{}, apperr.ErrMalformedLine.With(slog.String("reason", "config.state is not a mapping"))
		}

		for _, item := range stateMS {
			name, _ := item.Key.(string)
			cfg.State[name] = valueFromYAML(item.Value)
		}
	}

	if v, ok := lookup(ms, "characters"); ok {
		charMS, ok := asMapSlice(v)
		if !ok {
			return story.Config{}, apperr.ErrMalformedLine.With(slog.String("reason", "config.characters is not a mapping"))
		}

		for _, item := range charMS {
			name, _ := item.Key.(string)
			display, _ := item.Value.(string)
			cfg.Characters[name] = display
		}
	}

	if v, ok := lookup(ms, "commands"); ok {
		cmdMS, ok := asMapSlice(v)
		if !ok {
			return story.Config{}, apperr.ErrMalformedLine.With(slog.String("reason", "config.commands is not a mapping"))
		}

		for _, item := range cmdMS {
			name, _ := item.Key.(string)

			var params []string

			if seq, ok := asSlice(item.Value); ok {
				for _, p := range seq {
					if s, ok := p.(string); ok {
						params = append(params, s)
					}
				}
			}

			cfg.Commands[name] = story.CommandSchema{Params: params}
		}
	}

	if v, ok := lookup(ms, "on_enter"); ok {
		mods, err := decodeMods(v)
		if err != nil {
			return story.Config{}, err
		}

		cfg.OnEnter = mods
	}

	if v, ok := lookup(ms, "on_exit"); ok {
		mods, err := decodeMods(v)
		if err != nil {
			return story.Config{}, err
		}

		cfg.OnExit = mods
	}

	return cfg, nil
}

func decodeLines(raws []any, cfg story.Config) (story.Passage, error) {
	passage := make(story.Passage, 0, len(raws))

	for _, raw := range raws {
		ln, err := decodeLine(raw, cfg)
		if err != nil {
			return nil, err
		}

		passage = append(passage, ln)
	}

	return passage, nil
}

func decodeLine(raw any, cfg story.Config) (story.RawLine, error) {
	if s, ok := raw.(string); ok {
		return story.RawLine{Kind: story.KindText, Text: s}, nil
	}

	ms, ok := asMapSlice(raw)
	if !ok || len(ms) == 0 {
		return story.RawLine{}, apperr.ErrMalformedLine.With(slog.String("reason", "line is neither text nor a mapping"))
	}

	if firstKey, _ := ms[0].Key.(string); firstKey == "else" || firstKey == "if" || strings.HasPrefix(firstKey, "if ") {
		return decodeBranches(ms, cfg)
	}

	if len(ms) != 1 {
		return story.RawLine{}, apperr.ErrMalformedLine.With(slog.String("reason", "line has more than one keyword"))
	}

	key, _ := ms[0].Key.(string)
	value := ms[0].Value

	switch key {
	case "choices":
		choices, err := decodeChoices(value)
		if err != nil {
			return story.RawLine{}, err
		}

		return story.RawLine{Kind: story.KindChoices, Choices: choices}, nil

	case "set":
		mods, err := decodeMods(value)
		if err != nil {
			return story.RawLine{}, err
		}

		return story.RawLine{Kind: story.KindSet, Set: mods}, nil

	case "call", "goto":
		target, ok := value.(string)
		if !ok {
			return story.RawLine{}, apperr.ErrMalformedLine.With(slog.String("reason", key+" target is not a string"))
		}

		return story.RawLine{Kind: story.KindCall, Call: story.ParseQualifiedName(target)}, nil

	case "return":
		return story.RawLine{Kind: story.KindReturn}, nil

	case "input":
		input, err := decodeInput(value)
		if err != nil {
			return story.RawLine{}, err
		}

		return story.RawLine{Kind: story.KindInput, Input: input}, nil
	}

	if _, ok := cfg.Characters[key]; ok {
		text, _ := value.(string)

		return story.RawLine{
			Kind: story.KindDialogue,
			Dialogue: story.Dialogue{
				Speaker: story.ParseQualifiedName(key),
				Text:    text,
			},
		}, nil
	}

	if _, ok := cfg.Commands[key]; ok {
		return story.RawLine{Kind: story.KindCommand, Command: story.Command{Name: key, Args: decodeArgs(value)}}, nil
	}

	return story.RawLine{}, apperr.ErrUnknownCommand.With(slog.String("keyword", key))
}

func decodeBranches(ms yaml.MapSlice, cfg story.Config) (story.RawLine, error) {
	arms := make([]story.BranchArm, 0, len(ms))

	for _, item := range ms {
		key, _ := item.Key.(string)

		var expr string

		switch {
		case key == "else":
			expr = "else"
		case strings.HasPrefix(key, "if "):
			expr = strings.TrimSpace(strings.TrimPrefix(key, "if "))
		case strings.HasPrefix(key, "elif "):
			expr = strings.TrimSpace(strings.TrimPrefix(key, "elif "))
		default:
			return story.RawLine{}, apperr.ErrMalformedLine.With(slog.String("reason", "branch key is not if/elif/else"), slog.String("key", key))
		}

		body, ok := asSlice(item.Value)
		if !ok {
			return story.RawLine{}, apperr.ErrMalformedLine.With(slog.String("reason", "branch arm body is not a sequence"))
		}

		lines, err := decodeLines(body, cfg)
		if err != nil {
			return story.RawLine{}, err
		}

		arms = append(arms, story.BranchArm{Expr: expr, Lines: lines})
	}

	return story.RawLine{Kind: story.KindBranches, Branches: story.Branches{Arms: arms}}, nil
}

func decodeChoices(raw any) (story.Choices, error) {
	ms, ok := asMapSlice(raw)
	if !ok {
		return story.Choices{}, apperr.ErrMalformedLine.With(slog.String("reason", "choices is not a mapping"))
	}

	var (
		timeout  float64
		top      story.ChoiceGroup
		groups   []story.ChoiceGroup
		ordered  []story.ChoiceItem
		coords   [][2]int // (groupSlot, itemIndex); groupSlot -1 means top
	)

	for _, item := range ms {
		key, _ := item.Key.(string)

		if key == "timeout" {
			timeout = toFloat(item.Value)

			continue
		}

		if nested, ok := asMapSlice(item.Value); ok {
			group := story.ChoiceGroup{Cond: key}

			for _, ni := range nested {
				text, _ := ni.Key.(string)
				target, _ := ni.Value.(string)
				group.Items = append(group.Items, story.ChoiceItem{Text: text, Target: target})
				coords = append(coords, [2]int{len(groups), len(group.Items) - 1})
				ordered = append(ordered, group.Items[len(group.Items)-1])
			}

			groups = append(groups, group)

			continue
		}

		target, _ := item.Value.(string)
		top.Items = append(top.Items, story.ChoiceItem{Text: key, Target: target})
		coords = append(coords, [2]int{-1, len(top.Items) - 1})
		ordered = append(ordered, top.Items[len(top.Items)-1])
	}

	resolved := choice.InheritTargets(ordered)

	for i, c := range coords {
		if c[0] == -1 {
			top.Items[c[1]] = resolved[i]
		} else {
			groups[c[0]].Items[c[1]] = resolved[i]
		}
	}

	var out []story.ChoiceGroup
	if len(top.Items) > 0 {
		out = append(out, top)
	}

	out = append(out, groups...)

	return story.Choices{Groups: out, Timeout: timeout}, nil
}

func decodeMods(raw any) ([]story.StateMod, error) {
	ms, ok := asMapSlice(raw)
	if !ok {
		return nil, apperr.ErrMalformedLine.With(slog.String("reason", "state mutation is not a mapping"))
	}

	mods := make([]story.StateMod, 0, len(ms))

	for _, item := range ms {
		key, _ := item.Key.(string)

		op := story.OpSet

		switch {
		case strings.HasSuffix(key, "+"):
			op = story.OpAdd
			key = strings.TrimSuffix(key, "+")
		case strings.HasSuffix(key, "-"):
			op = story.OpSub
			key = strings.TrimSuffix(key, "-")
		}

		mods = append(mods, story.StateMod{
			Target: story.ParseQualifiedName(key),
			Op:     op,
			Expr:   toExprString(item.Value),
		})
	}

	return mods, nil
}

func decodeArgs(raw any) []string {
	if raw == nil {
		return nil
	}

	if seq, ok := asSlice(raw); ok {
		args := make([]string, 0, len(seq))
		for _, v := range seq {
			args = append(args, toExprString(v))
		}

		return args
	}

	return []string{toExprString(raw)}
}

func decodeInput(raw any) (story.Input, error) {
	ms, ok := asMapSlice(raw)
	if !ok || len(ms) != 1 {
		return story.Input{}, apperr.ErrMalformedLine.With(slog.String("reason", "input must name exactly one target variable"))
	}

	target, _ := ms[0].Key.(string)
	prompt, _ := ms[0].Value.(string)

	return story.Input{Prompt: prompt, Target: story.ParseQualifiedName(target)}, nil
}

func valueFromYAML(raw any) story.Value {
	switch v := raw.(type) {
	case nil:
		return story.None
	case bool:
		return story.Boolean(v)
	case string:
		return story.String(v)
	case float64:
		return story.Number(v)
	case int:
		return story.Number(float64(v))
	case uint64:
		return story.Number(float64(v))
	default:
		return story.None
	}
}

func toFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case uint64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)

		return f
	default:
		return 0
	}
}

func toExprString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return "none"
	default:
		return ""
	}
}

func asMapSlice(v any) (yaml.MapSlice, bool) {
	ms, ok := v.(yaml.MapSlice)

	return ms, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)

	return s, ok
}

func lookup(ms yaml.MapSlice, key string) (any, bool) {
	for _, item := range ms {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value, true
		}
	}

	return nil, false
}
