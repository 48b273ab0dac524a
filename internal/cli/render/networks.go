package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out  io.Writer
	json bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, json bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:  out,
		json: json,
	}
}

type networkJSON struct {
	Name        string `json:"name"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	NetworkID   string `json:"networkId"`
	Active      bool   `json:"active"`
	Reachable   *bool  `json:"reachable,omitempty"`
	NodeNetwork string `json:"nodeNetworkId,omitempty"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
	Error       string `json:"error,omitempty"`
}

// RenderNetworksList renders the declared network profiles
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if r.json {
		out := make([]networkJSON, 0, len(result.Networks))
		for _, n := range result.Networks {
			entry := networkJSON{
				Name:      n.Profile.Name,
				Host:      n.Profile.Host,
				Port:      n.Profile.Port,
				NetworkID: n.Profile.NetworkIDString(),
				Active:    n.Active,
			}
			if result.Probed {
				ok := n.Error == nil
				entry.Reachable = &ok
				if n.Node != nil && n.Node.NetworkID != nil {
					entry.NodeNetwork = n.Node.NetworkID.String()
					entry.BlockNumber = n.Node.BlockNumber
				}
				if n.Error != nil {
					entry.Error = n.Error.Error()
				}
			}
			out = append(out, entry)
		}
		return renderJSON(r.out, out)
	}

	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("🌐 Networks:"))
	fmt.Fprintln(r.out)

	header := table.Row{"", "NAME", "ENDPOINT", "NETWORK ID"}
	if result.Probed {
		header = append(header, "STATUS")
	}
	t := newTable(header)

	for _, n := range result.Networks {
		marker, name := " ", n.Profile.Name
		if n.Active {
			marker, name = activeStyle.Sprint("▸"), activeStyle.Sprint(name)
		}
		row := table.Row{marker, name, n.Profile.RPCURL(), n.Profile.NetworkIDString()}
		if result.Probed {
			row = append(row, probeStatus(n))
		}
		t.AppendRow(row)
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func probeStatus(n usecase.NetworkStatus) string {
	if n.Error != nil {
		return failStyle.Sprintf("❌ %v", n.Error)
	}
	if n.Node == nil {
		return ""
	}
	return okStyle.Sprint("✅ block " + strconv.FormatUint(n.Node.BlockNumber, 10))
}
