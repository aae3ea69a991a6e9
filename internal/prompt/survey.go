package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// askOne is swapped out in tests so no terminal is needed.
var askOne = survey.AskOne

// Survey prompts for a save path on the terminal with survey/v2.
type Survey struct{}

// NewSurvey returns a survey-backed SavePrompter.
func NewSurvey() *Survey {
	return &Survey{}
}

// PromptSavePath asks for a path. Ctrl-C and an empty answer both mean cancel.
func (s *Survey) PromptSavePath(ctx context.Context, req SaveRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	title := req.Title
	if title == "" {
		title = "Save File"
	}
	// No Default: survey returns it for an empty answer, and empty means cancel.
	suggested := req.SuggestedPath()
	message := fmt.Sprintf("%s [%s]:", title, req.Filter)
	if suggested != "" {
		message = fmt.Sprintf("%s [%s] (Tab for %s):", title, req.Filter, suggested)
	}
	input := &survey.Input{
		Message: message,
		Help:    "Leave empty or press Ctrl-C to cancel.",
		Suggest: func(toComplete string) []string {
			return withSuggested(suggested, toComplete, suggestFiles(toComplete, req.Directory, req.Filter))
		},
	}

	var out string
	if err := askOne(input, &out, survey.WithValidator(validateSavePath)); err != nil {
		if err = translateSurveyErr(err); errors.Is(err, ErrCancelled) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}

// validateSavePath rejects answers that point at an existing directory.
func validateSavePath(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a path, got %T", ans)
	}
	return CheckSavePath(s)
}

// withSuggested puts suggested first when it still matches what has been typed.
func withSuggested(suggested, toComplete string, files []string) []string {
	if suggested == "" || !strings.HasPrefix(suggested, toComplete) {
		return files
	}
	out := []string{suggested}
	for _, f := range files {
		if f != suggested {
			out = append(out, f)
		}
	}
	return out
}

// suggestFiles completes toComplete against directories and files matching filter.
func suggestFiles(toComplete, defaultDir string, filter Filter) []string {
	dir, prefix := filepath.Split(toComplete)
	searchDir := dir
	if searchDir == "" {
		searchDir = defaultDir
	}
	if searchDir == "" {
		searchDir = "."
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case e.IsDir():
			out = append(out, dir+name+string(filepath.Separator))
		case filter.Match(name):
			out = append(out, dir+name)
		}
	}
	sort.Strings(out)
	return out
}
