package main

import (
	"fmt"
	"os"

	"github.com/akasharts888/audio-transcriptor/pkg/sdk"
	"github.com/akasharts888/audio-transcriptor/pkg/utils"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8000"

var serverURL string

func main() {
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	rootCmd := &cobra.Command{
		Use:   "transcriptor",
		Short: "Store meeting recordings and ask questions about what was said",
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", cfg.GetWithDefault("BACKEND_BASE_URL", defaultServerURL), "base URL of the transcript service")

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(chatCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() *sdk.Client {
	return sdk.NewClient(serverURL)
}
