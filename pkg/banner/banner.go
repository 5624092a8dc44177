package banner

import (
	"fmt"

	"modboard/pkg/config"
)

const banner = `
███╗   ███╗ ██████╗ ██████╗ ██████╗  ██████╗  █████╗ ██████╗ ██████╗
████╗ ████║██╔═══██╗██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗
██╔████╔██║██║   ██║██║  ██║██████╔╝██║   ██║███████║██████╔╝██║  ██║
██║╚██╔╝██║██║   ██║██║  ██║██╔══██╗██║   ██║██╔══██║██╔══██╗██║  ██║
██║ ╚═╝ ██║╚██████╔╝██████╔╝██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
╚═╝     ╚═╝ ╚═════╝ ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
`

// Print prints the startup banner with the effective runtime info.
func Print(eff config.EffectiveConfigResult, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:     %s\n", eff.Addr)
	fmt.Printf("Credstore:  %s\n", eff.StorePath)
	if version != "" {
		fmt.Printf("Version:    %s\n", version)
	}
	if eff.Source != "" {
		fmt.Printf("Source:     %s\n", eff.Source)
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("POST   /v1/scopes                   - Create a resolution scope")
	fmt.Println("POST   /v1/scopes/{id}/resolve      - Resolve media references")
	fmt.Println("POST   /v1/scopes/{id}/refresh      - Re-resolve the scope's references")
	fmt.Println("DELETE /v1/scopes/{id}              - Dispose the scope")
	fmt.Println("GET    /v1/assets/{scope}/{handle}  - Serve a resolved asset")
	fmt.Println("POST   /v1/normalize/messages       - Normalize a raw submission payload")
	fmt.Println("POST   /v1/normalize/analysis       - Normalize an AI annotation")
	fmt.Println("\n== Production? =================================================")
	fmt.Println("Set a proper credential store path (--store)")
	fmt.Println("Configure API keys before exposing the service")
}
