package server

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"yomi/api"
)

// HealthResponse is the response for GET /api/health.
type HealthResponse struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Strategy  string   `json:"strategy"`
	OCR       string   `json:"ocr"`
	Translate bool     `json:"translate"`
	SplitRuby bool     `json:"split_ruby"`
	Degraded  []string `json:"degraded,omitempty"`
}

// HealthEndpoint handles GET /api/health.
type HealthEndpoint struct {
	Deps *Deps
}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/health", e.handler
}

func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Message:   "Furigana API is running",
		Strategy:  string(e.Deps.Assembler.Strategy()),
		OCR:       "none",
		Translate: e.Deps.translationEnabled(),
		SplitRuby: splitAvailable(e.Deps.Kanji),
		Degraded:  e.Deps.Degraded,
	}
	if e.Deps.OCR != nil {
		resp.OCR = e.Deps.OCR.Name()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/api/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:    %s\n", resp.Status)
			fmt.Printf("Strategy:  %s\n", resp.Strategy)
			fmt.Printf("OCR:       %s\n", resp.OCR)
			fmt.Printf("Translate: %v\n", resp.Translate)
			for _, d := range resp.Degraded {
				fmt.Printf("Degraded:  %s\n", d)
			}
			return nil
		},
	}
}
