package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/akasharts888/audio-transcriptor/pkg/sdk"
	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask questions interactively. Type 'exit' to quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Connected to %s. Type 'exit' to quit.\n", serverURL)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "\n> ")

				if !scanner.Scan() {
					break
				}

				input := strings.TrimSpace(scanner.Text())

				if input == "exit" {
					break
				}

				if input == "" {
					continue
				}

				resp, err := client.Query(cmd.Context(), input)
				switch {
				case sdk.IsNoTranscripts(err):
					fmt.Fprintln(out, "No transcripts stored yet.")
				case err != nil:
					fmt.Fprintf(out, "Error: %v\n", err)
				default:
					fmt.Fprintf(out, "Assistant: %s\n", resp.Response)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}
}
