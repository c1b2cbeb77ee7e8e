package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/internal/ui"
	"github.com/modu-ai/stackgen/pkg/models"
)

// runForm runs a single-question form. Tests replace it to answer with the
// field's initial value.
var runForm = func(f *huh.Form) error { return f.Run() }

// Run asks every question whose ID is not in answered and stores the answers
// in cfg. The current values of cfg are offered as defaults.
// Each question runs as its own huh.Form so options can be filtered against
// the answers given before it, and to avoid the huh v0.8.x YOffset scroll bug
// that occurs when multiple groups share a single viewport.
//
// @MX:NOTE: [AUTO] Answers from flags are never re-asked; hidden questions reset their field via clearAnswer.
func Run(questions []Question, cfg *models.ProjectConfig, answered map[string]bool) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]
		if answered[q.ID] {
			continue
		}
		if q.Condition != nil && !q.Condition(cfg) {
			clearAnswer(q.ID, cfg)
			continue
		}

		field, values, err := buildField(q, cfg)
		if err != nil {
			return err
		}
		form := huh.NewForm(huh.NewGroup(field)).
			WithTheme(theme).
			WithAccessible(false)

		if err := runForm(form); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return ErrCancelled
			}
			return fmt.Errorf("wizard error: %w", err)
		}
		saveAnswer(q.ID, values(), cfg)
	}

	return nil
}

// buildField creates the huh field for q and a getter for its answer.
func buildField(q *Question, cfg *models.ProjectConfig) (huh.Field, func() []string, error) {
	current := currentAnswer(q.ID, cfg)

	switch q.Type {
	case QuestionTypeInput:
		value := firstOr(current, "")
		inp := huh.NewInput().
			Title(q.Title).
			Description(q.Description).
			Value(&value)
		if value != "" {
			inp = inp.Placeholder(value)
		}
		required := q.Required
		inp = inp.Validate(func(val string) error {
			v := strings.TrimSpace(val)
			if required && v == "" {
				return errors.New("this field is required")
			}
			if q.ID == IDProjectName {
				return config.ValidateProjectName(config.SlugifyProjectName(v))
			}
			return nil
		})
		return inp, func() []string { return []string{strings.TrimSpace(value)} }, nil

	case QuestionTypeConfirm:
		value := firstOr(current, "false") == "true"
		c := huh.NewConfirm().
			Title(q.Title).
			Description(q.Description).
			Affirmative("Yes").
			Negative("No").
			Value(&value)
		return c, func() []string { return []string{strconv.FormatBool(value)} }, nil

	case QuestionTypeMultiSelect:
		opts := allowedOptions(q, cfg)
		selected := slices.DeleteFunc(slices.Clone(current), func(v string) bool {
			return !slices.ContainsFunc(opts, func(o Option) bool { return o.Value == v })
		})
		ms := huh.NewMultiSelect[string]().
			Title(q.Title).
			Description(q.Description).
			Options(huhOptions(opts)...).
			Value(&selected)
		if q.ID == IDAddons {
			ms = ms.Validate(exclusiveAddons)
		}
		return ms, func() []string { return selected }, nil

	default:
		opts := allowedOptions(q, cfg)
		if len(opts) == 0 {
			return nil, nil, fmt.Errorf("%s: %w", q.ID, ErrNoOptions)
		}
		selected := opts[0].Value
		if want := firstOr(current, ""); slices.ContainsFunc(opts, func(o Option) bool { return o.Value == want }) {
			selected = want
		}
		// Options are static: huh v0.8.x OptionsFunc forces a fixed height and
		// resets the viewport offset on every update.
		sel := huh.NewSelect[string]().
			Title(q.Title).
			Description(q.Description).
			Options(huhOptions(opts)...).
			Value(&selected)
		return sel, func() []string { return []string{selected} }, nil
	}
}

func allowedOptions(q *Question, cfg *models.ProjectConfig) []Option {
	if q.Allowed == nil {
		return q.Options
	}
	var out []Option
	for _, o := range q.Options {
		if q.Allowed(cfg, o.Value) {
			out = append(out, o)
		}
	}
	return out
}

func huhOptions(opts []Option) []huh.Option[string] {
	out := make([]huh.Option[string], len(opts))
	for i, opt := range opts {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		out[i] = huh.NewOption(key, opt.Value)
	}
	return out
}

func exclusiveAddons(values []string) error {
	for _, v := range values {
		for _, other := range config.ExclusiveWith(models.Addon(v)) {
			if slices.Contains(values, string(other)) {
				return fmt.Errorf("%s and %s cannot be combined", v, other)
			}
		}
	}
	return nil
}

func firstOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}

// currentAnswer reads the value of question id from cfg.
func currentAnswer(id string, cfg *models.ProjectConfig) []string {
	switch id {
	case IDProjectName:
		return []string{cfg.ProjectName}
	case IDFrontend:
		return toStrings(cfg.Frontend)
	case IDBackend:
		return []string{string(cfg.Backend)}
	case IDRuntime:
		return []string{string(cfg.Runtime)}
	case IDDatabase:
		return []string{string(cfg.Database)}
	case IDORM:
		return []string{string(cfg.ORM)}
	case IDTurso:
		return []string{strconv.FormatBool(cfg.Turso == nil || *cfg.Turso)}
	case IDAuth:
		return []string{string(cfg.Auth)}
	case IDAddons:
		return toStrings(cfg.Addons)
	case IDExamples:
		return toStrings(cfg.Examples)
	case IDGit:
		return []string{strconv.FormatBool(cfg.Git)}
	case IDPackageManager:
		return []string{string(cfg.PackageManager)}
	}
	return nil
}

// saveAnswer stores an answer in cfg.
func saveAnswer(id string, values []string, cfg *models.ProjectConfig) {
	value := firstOr(values, "")
	switch id {
	case IDProjectName:
		cfg.ProjectName = config.SlugifyProjectName(value)
	case IDFrontend:
		cfg.Frontend = toEnums[models.Frontend](values)
	case IDBackend:
		cfg.Backend = models.Backend(value)
	case IDRuntime:
		cfg.Runtime = models.Runtime(value)
	case IDDatabase:
		cfg.Database = models.Database(value)
	case IDORM:
		cfg.ORM = models.ORM(value)
	case IDTurso:
		cfg.Turso = models.BoolPtr(value == "true")
	case IDAuth:
		cfg.Auth = models.Auth(value)
	case IDAddons:
		cfg.Addons = toEnums[models.Addon](values)
	case IDExamples:
		cfg.Examples = toEnums[models.Example](values)
	case IDGit:
		cfg.Git = value == "true"
	case IDPackageManager:
		cfg.PackageManager = models.PackageManager(value)
	}
}

// clearAnswer resets the field of a question hidden by its condition.
func clearAnswer(id string, cfg *models.ProjectConfig) {
	switch id {
	case IDORM:
		cfg.ORM = models.ORMNone
	case IDTurso:
		cfg.Turso = nil
	}
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func toEnums[T ~string](in []string) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = T(v)
	}
	return out
}

// newWizardTheme creates a huh.Theme in the stackgen palette.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: ui.ColorPrimary}
	secondary := lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: ui.ColorSecondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ui.ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ui.ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ui.ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ui.ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ui.ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(green).SetString("◆ ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(text)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(muted).SetString("◇ ")
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
