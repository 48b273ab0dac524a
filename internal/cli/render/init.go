package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// InitRenderer renders project initialization results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init steps and next steps
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	for _, step := range result.Steps {
		switch {
		case step.Error != nil:
			fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%s: %v", step.Name, step.Error)))
		case result.AlreadyInitialized && step.Name == "Create build document":
			fmt.Fprintln(r.out, FormatWarning(step.Message))
		default:
			fmt.Fprintln(r.out, FormatSuccess(step.Message))
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Next steps:"))
	fmt.Fprintf(r.out, "  1. Review %s and adjust the development network\n", getRelativePath(result.ConfigPath))
	fmt.Fprintln(r.out, "  2. Add Solidity sources to the contracts directory")
	fmt.Fprintln(r.out, "  3. Run: solbuild check && solbuild build")
	return nil
}
