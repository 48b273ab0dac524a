package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// CheckRenderer renders the result of checking the active network
type CheckRenderer struct {
	out  io.Writer
	json bool
}

// NewCheckRenderer creates a new check renderer
func NewCheckRenderer(out io.Writer, json bool) *CheckRenderer {
	return &CheckRenderer{
		out:  out,
		json: json,
	}
}

type checkJSON struct {
	Network            string `json:"network"`
	URL                string `json:"url"`
	NetworkID          string `json:"networkId"`
	NodeNetworkID      string `json:"nodeNetworkId,omitempty"`
	ChainID            string `json:"chainId,omitempty"`
	BlockNumber        uint64 `json:"blockNumber,omitempty"`
	NetworkMatches     bool   `json:"networkMatches"`
	CompilerConfigured string `json:"compilerConfigured,omitempty"`
	CompilerInstalled  string `json:"compilerInstalled,omitempty"`
	CompilerMatches    bool   `json:"compilerMatches"`
	Error              string `json:"error,omitempty"`
}

// Render renders a check result. checkErr is the error returned alongside it, if any.
func (r *CheckRenderer) Render(result *usecase.CheckNetworkResult, checkErr error) error {
	if r.json {
		out := checkJSON{
			Network:            result.Network.Name,
			URL:                result.Network.RPCURL(),
			NetworkID:          result.Network.NetworkIDString(),
			NetworkMatches:     result.NetworkMatches,
			CompilerConfigured: result.CompilerConfigured,
			CompilerInstalled:  result.CompilerInstalled,
			CompilerMatches:    result.CompilerMatches,
		}
		if result.Node != nil {
			out.NodeNetworkID = result.Node.NetworkID.String()
			out.BlockNumber = result.Node.BlockNumber
			if result.Node.ChainID != nil {
				out.ChainID = result.Node.ChainID.String()
			}
		}
		if checkErr != nil {
			out.Error = checkErr.Error()
		}
		return renderJSON(r.out, out)
	}

	fmt.Fprintf(r.out, "%s %s\n", sectionHeaderStyle.Sprint("🔗 Network"), activeStyle.Sprint(result.Network.Name))
	fmt.Fprintf(r.out, "Endpoint:    %s\n", result.Network.RPCURL())
	fmt.Fprintf(r.out, "Expected ID: %s\n", result.Network.NetworkIDString())

	switch {
	case result.Node == nil:
		fmt.Fprintln(r.out, FormatError(fmt.Sprint(checkErr)))
	case result.NetworkMatches:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Node reports network %s at block %d", result.Node.NetworkID, result.Node.BlockNumber)))
	default:
		fmt.Fprintln(r.out, failStyle.Sprintf("❌ Node reports network %s", result.Node.NetworkID))
	}
	if result.Node != nil && result.Node.ChainID != nil {
		fmt.Fprintf(r.out, "Chain ID:    %s\n", result.Node.ChainID)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("🛠  Compiler"))
	configured := result.CompilerConfigured
	if configured == "" {
		configured = "(any)"
	}
	fmt.Fprintf(r.out, "Configured:  %s\n", configured)
	switch {
	case result.CompilerError != nil:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("solc unavailable: %v", result.CompilerError)))
	case result.CompilerMatches:
		fmt.Fprintln(r.out, FormatSuccess("Installed "+result.CompilerInstalled))
	default:
		fmt.Fprintln(r.out, FormatWarning("Installed "+result.CompilerInstalled+" does not match"))
	}

	return nil
}
