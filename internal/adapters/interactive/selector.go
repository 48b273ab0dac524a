package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	nonInteractive bool
}

// NewSelectorAdapter creates a new selector adapter. It is built before any
// runtime config exists, so the caller decides whether prompting is allowed.
func NewSelectorAdapter(nonInteractive bool) *SelectorAdapter {
	return &SelectorAdapter{nonInteractive: nonInteractive}
}

// SelectNetwork lets the user pick one of the declared network profiles
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, names []string, prompt string) (string, error) {
	if s.nonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(names) == 0 {
		return "", fmt.Errorf("no networks provided for selection")
	}

	if len(names) == 1 {
		return names[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to filter, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     prompt,
		Items:     names,
		Templates: templates,
		Size:      10,
		Searcher:  createFuzzySearchFunc(names),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return names[index], nil
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
