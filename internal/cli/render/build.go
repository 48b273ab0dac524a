package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/trebuchet-org/solbuild/internal/domain/models"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// BuildRenderer renders the outcome of a build
type BuildRenderer struct {
	out     io.Writer
	json    bool
	verbose bool
}

// NewBuildRenderer creates a new build renderer
func NewBuildRenderer(out io.Writer, json, verbose bool) *BuildRenderer {
	return &BuildRenderer{
		out:     out,
		json:    json,
		verbose: verbose,
	}
}

type buildJSON struct {
	*models.Build
	InstalledVersion string   `json:"installedVersion,omitempty"`
	Command          []string `json:"command,omitempty"`
	Artifacts        []string `json:"artifacts,omitempty"`
	Recorded         bool     `json:"recorded"`
}

// Render renders a build result
func (r *BuildRenderer) Render(result *usecase.BuildResult) error {
	if r.json {
		return renderJSON(r.out, buildJSON{
			Build:            result.Build,
			InstalledVersion: result.InstalledVersion,
			Command:          result.Command,
			Artifacts:        result.Artifacts,
			Recorded:         result.Recorded,
		})
	}

	b := result.Build
	if b.Status == models.BuildStatusDryRun {
		fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("🔍 Dry run"))
		fmt.Fprintf(r.out, "Network:  %s (network_id %s)\n", b.Network, b.NetworkID)
		fmt.Fprintf(r.out, "Sources:  %d (%s)\n", len(b.Sources), shortHash(b.SourcesHash))
		fmt.Fprintln(r.out, "Command:")
		fmt.Fprintf(r.out, "  %s\n", strings.Join(result.Command, " "))
		return nil
	}

	if b.Status == models.BuildStatusFailed {
		fmt.Fprintln(r.out, FormatError("Build failed"))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Compiled %d sources in %s", len(b.Sources), formatDuration(b.Duration()))))
	}

	fmt.Fprintf(r.out, "Network:   %s (network_id %s)\n", b.Network, b.NetworkID)
	fmt.Fprintf(r.out, "Compiler:  solc %s\n", result.InstalledVersion)
	fmt.Fprintf(r.out, "Output:    %s\n", pathStyle.Sprint(b.OutputDir))
	if result.Node != nil {
		fmt.Fprintf(r.out, "Node:      network %s at block %d\n", result.Node.NetworkID, result.Node.BlockNumber)
	}
	if result.Recorded {
		fmt.Fprintf(r.out, "Recorded:  %s\n", timestampStyle.Sprint(b.ID))
	}

	if r.verbose && len(b.Sources) > 0 {
		fmt.Fprintln(r.out)
		t := newTable(nil)
		for _, src := range b.Sources {
			t.AppendRow([]any{src.Path, hashStyle.Sprint(shortHash(src.Hash)), src.Size})
		}
		fmt.Fprintln(r.out, t.Render())
	}
	if r.verbose && len(result.Artifacts) > 0 {
		fmt.Fprintf(r.out, "Artifacts: %s\n", strings.Join(result.Artifacts, ", "))
	}

	return nil
}
