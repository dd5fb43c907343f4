package main

import (
	"fmt"
	"strings"

	"github.com/akasharts888/audio-transcriptor/pkg/sdk"
	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <question>",
		Short: "Ask a question against every stored transcript",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Query(cmd.Context(), strings.Join(args, " "))
			if sdk.IsNoTranscripts(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No transcripts stored yet. Ingest a recording first.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
			return nil
		},
	}
}
