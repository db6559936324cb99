package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Registry holds all registered endpoints.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry creates a new endpoint registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an endpoint to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes registers all endpoint HTTP routes with the given mux.
func (r *Registry) RegisterRoutes(mux *http.ServeMux) {
	for _, ep := range r.endpoints {
		method, path, handler := ep.Route()
		mux.HandleFunc(method+" "+path, handler)
	}
}

// BuildCommands returns an "api" command with one subcommand per endpoint.
func (r *Registry) BuildCommands(getServerURL func() string) *cobra.Command {
	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Commands that call the running server",
		Long: `API commands call a running yomi server via HTTP.

These commands require a running server (yomi serve).
Use --server to specify a custom server URL.

Examples:
  yomi api health                 # Check server health
  yomi api annotate 日本語を読む   # Annotate text remotely
  yomi api upload page.png        # OCR and annotate an image`,
	}

	for _, ep := range r.endpoints {
		apiCmd.AddCommand(ep.Command(getServerURL))
	}

	return apiCmd
}

// Endpoints returns all registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
