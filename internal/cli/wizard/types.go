// Package wizard prompts for the project choices that were not given on the
// command line. Each question runs as its own huh form and only offers
// options compatible with the answers collected so far.
package wizard

import (
	"errors"

	"github.com/modu-ai/stackgen/pkg/models"
)

// Question IDs. They match the create command's flag names so the caller
// can mark flag-provided answers as already settled.
const (
	IDProjectName    = "name"
	IDFrontend       = "frontend"
	IDBackend        = "backend"
	IDRuntime        = "runtime"
	IDDatabase       = "database"
	IDORM            = "orm"
	IDTurso          = "turso"
	IDAuth           = "auth"
	IDAddons         = "addons"
	IDExamples       = "examples"
	IDGit            = "git"
	IDPackageManager = "pm"
)

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeMultiSelect allows any number of choices, including none.
	QuestionTypeMultiSelect
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
	// QuestionTypeConfirm is a yes/no question.
	QuestionTypeConfirm
)

// Question defines a single wizard question.
type Question struct {
	ID          string
	Type        QuestionType
	Title       string
	Description string
	Options     []Option
	// Allowed filters Options against the answers so far. Nil allows all.
	Allowed func(cfg *models.ProjectConfig, value string) bool
	// Condition hides the question when it returns false.
	Condition func(cfg *models.ProjectConfig) bool
	Required  bool
}

// Option represents a selectable option.
type Option struct {
	Label string
	Value string
	Desc  string
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrNoOptions is returned when every option of a question is filtered out.
	ErrNoOptions = errors.New("no compatible options")
)
