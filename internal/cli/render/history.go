package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// HistoryRenderer renders recorded builds
type HistoryRenderer struct {
	out  io.Writer
	json bool
}

// NewHistoryRenderer creates a new history renderer
func NewHistoryRenderer(out io.Writer, json bool) *HistoryRenderer {
	return &HistoryRenderer{
		out:  out,
		json: json,
	}
}

// Render renders a list of builds
func (r *HistoryRenderer) Render(result *usecase.ListBuildsResult) error {
	if r.json {
		builds := result.Builds
		if builds == nil {
			builds = []*models.Build{}
		}
		return renderJSON(r.out, builds)
	}

	if len(result.Builds) == 0 {
		fmt.Fprintln(r.out, "No builds recorded yet")
		return nil
	}

	t := newTable(table.Row{"STARTED", "STATUS", "NETWORK", "SOLC", "SOURCES", "DURATION", "ID"})
	for _, b := range result.Builds {
		t.AppendRow(table.Row{
			timestampStyle.Sprint(b.StartedAt.Local().Format("2006-01-02 15:04:05")),
			statusStyle(b.Status),
			b.Network,
			b.CompilerVersion,
			hashStyle.Sprint(shortHash(b.SourcesHash)),
			formatDuration(b.Duration()),
			timestampStyle.Sprint(b.ID),
		})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func statusStyle(s models.BuildStatus) string {
	label := title(string(s))
	switch s {
	case models.BuildStatusSucceeded:
		return okStyle.Sprint(label)
	case models.BuildStatusFailed:
		return failStyle.Sprint(label)
	default:
		return warnStyle.Sprint(label)
	}
}

// RenderBuild renders one build with its sources
func (r *HistoryRenderer) RenderBuild(result *usecase.ShowBuildResult) error {
	b := result.Build
	if r.json {
		return renderJSON(r.out, b)
	}

	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("🔨 Build %s", b.ID))
	fmt.Fprintf(r.out, "Status:     %s\n", statusStyle(b.Status))
	if b.Error != "" {
		fmt.Fprintf(r.out, "Error:      %s\n", failStyle.Sprint(b.Error))
	}
	fmt.Fprintf(r.out, "Network:    %s (network_id %s)\n", b.Network, b.NetworkID)
	fmt.Fprintf(r.out, "Solc:       %s\n", b.CompilerVersion)
	if b.OptimizerEnabled {
		fmt.Fprintf(r.out, "Optimizer:  enabled, %d runs\n", b.OptimizerRuns)
	} else {
		fmt.Fprintln(r.out, "Optimizer:  disabled")
	}
	fmt.Fprintf(r.out, "Contracts:  %s\n", pathStyle.Sprint(b.ContractsDir))
	fmt.Fprintf(r.out, "Artifacts:  %s\n", pathStyle.Sprint(b.OutputDir))
	fmt.Fprintf(r.out, "Started:    %s\n", timestampStyle.Sprint(b.StartedAt.Local().Format("2006-01-02 15:04:05")))
	fmt.Fprintf(r.out, "Duration:   %s\n", formatDuration(b.Duration()))
	fmt.Fprintf(r.out, "Sources:    %s\n", hashStyle.Sprint(b.SourcesHash))

	if len(b.Sources) == 0 {
		return nil
	}

	fmt.Fprintln(r.out)
	t := newTable(table.Row{"PATH", "SIZE", "HASH"})
	for _, s := range b.Sources {
		t.AppendRow(table.Row{s.Path, s.Size, hashStyle.Sprint(shortHash(s.Hash))})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
