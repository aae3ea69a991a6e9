package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrCancelled is returned by prompt drivers when the user aborts. SavePrompter
// implementations translate it into an empty path.
var ErrCancelled = errors.New("prompt cancelled")

// Filter restricts the files a save prompt offers, e.g. JSON (*.json).
type Filter struct {
	Name     string
	Patterns []string
}

// String renders the filter the way file dialogs label it.
func (f Filter) String() string {
	return f.Name + " (" + strings.Join(f.Patterns, " ") + ")"
}

// Match reports whether name matches one of the patterns.
func (f Filter) Match(name string) bool {
	for _, p := range f.Patterns {
		if ok, _ := filepath.Match(p, filepath.Base(name)); ok {
			return true
		}
	}
	return false
}

// JSONFilter is the filter used for settings exports.
var JSONFilter = Filter{Name: "JSON", Patterns: []string{"*.json"}}

// SaveRequest describes a save-file prompt.
type SaveRequest struct {
	Title       string
	Directory   string
	DefaultName string
	Filter      Filter
}

// SuggestedPath joins Directory and DefaultName.
func (r SaveRequest) SuggestedPath() string {
	if r.DefaultName == "" {
		return ""
	}
	if r.Directory == "" {
		return r.DefaultName
	}
	return filepath.Join(r.Directory, r.DefaultName)
}

// SavePrompter asks the user where to save a file. An empty path with a nil
// error means the user cancelled.
type SavePrompter interface {
	PromptSavePath(ctx context.Context, req SaveRequest) (string, error)
}

// SavePrompterFunc adapts a function to SavePrompter.
type SavePrompterFunc func(ctx context.Context, req SaveRequest) (string, error)

// PromptSavePath calls f.
func (f SavePrompterFunc) PromptSavePath(ctx context.Context, req SaveRequest) (string, error) {
	return f(ctx, req)
}

// Static always answers with path. Used when the destination is given on the
// command line.
func Static(path string) SavePrompter {
	return SavePrompterFunc(func(ctx context.Context, _ SaveRequest) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return path, nil
	})
}

// CheckSavePath rejects paths that name an existing directory. An empty path
// is accepted since it means cancel.
func CheckSavePath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
