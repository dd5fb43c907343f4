package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akasharts888/audio-transcriptor/pkg/transcript"
	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	var audioPath, transcriptPath, text string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Upload a recording together with its transcript",
		Long: `Upload an audio recording and its transcript to the service.

The transcript is either a JSON file in the recorder's format
({"fullText": "...", "segments": [...]}) or plain text passed with --text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transcriptPath != "" && text != "" {
				return fmt.Errorf("--transcript and --text are mutually exclusive")
			}

			payload := transcript.Payload{FullText: text, Segments: []json.RawMessage{}}
			if transcriptPath != "" {
				raw, err := os.ReadFile(transcriptPath)
				if err != nil {
					return fmt.Errorf("failed to read transcript: %w", err)
				}
				if payload, err = transcript.ParsePayload(raw); err != nil {
					return err
				}
			}

			audio, err := os.Open(audioPath)
			if err != nil {
				return fmt.Errorf("failed to open audio: %w", err)
			}
			defer audio.Close()

			resp, err := newClient().ProcessAudio(cmd.Context(), filepath.Base(audioPath), audio, payload)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %s)\n", resp.Response, resp.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&audioPath, "audio", "", "path to the audio recording")
	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "path to a transcript JSON file")
	cmd.Flags().StringVar(&text, "text", "", "plain-text transcript")
	cmd.MarkFlagRequired("audio")

	return cmd
}
