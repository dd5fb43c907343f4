package query

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/akasharts888/audio-transcriptor/pkg/completion"
	"github.com/akasharts888/audio-transcriptor/pkg/transcript"
)

// Sentinel is the exact reply the model is told to give when the transcripts
// do not contain the answer
const Sentinel = "No relevant data found."

// sessionSeparator joins rendered sessions in the prompt context
const sessionSeparator = "\n\n"

// ErrNoTranscripts is returned when there is nothing to ground an answer in
var ErrNoTranscripts = errors.New("no transcripts found")

const promptTemplate = `
You are a helpful assistant.

Only use the information from the following transcript to answer.

Transcript:
"""
%s
"""

If the answer is not found in the transcript, respond:
"%s"

Question: %s
Answer:
`

// Pipeline answers questions from the full concatenation of stored transcripts
type Pipeline struct {
	source    transcript.SessionSource
	completer completion.Completer
}

// New creates a pipeline reading sessions from source and answering through completer
func New(source transcript.SessionSource, completer completion.Completer) *Pipeline {
	return &Pipeline{
		source:    source,
		completer: completer,
	}
}

// Answer builds the context from every session and asks the completer once.
// The completer's text is returned unmodified. With no sessions stored the
// completer is not called and ErrNoTranscripts is returned.
func (p *Pipeline) Answer(ctx context.Context, question string) (string, error) {
	corpus, count := BuildContext(p.source.Sessions())
	if count == 0 {
		return "", ErrNoTranscripts
	}

	answer, err := p.completer.Complete(ctx, BuildPrompt(corpus, question))
	if err != nil {
		if errors.Is(err, completion.ErrCompletion) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", completion.ErrCompletion, err)
	}

	return answer, nil
}

// BuildContext renders each session as "(<timestamp>) <transcript>" and joins
// them with a blank line, in sequence order. It returns the number of sessions rendered.
func BuildContext(sessions iter.Seq[transcript.Session]) (string, int) {
	var b strings.Builder
	count := 0

	for session := range sessions {
		if count > 0 {
			b.WriteString(sessionSeparator)
		}
		b.WriteString("(")
		b.WriteString(session.Timestamp())
		b.WriteString(") ")
		b.WriteString(session.Transcript)
		count++
	}

	return b.String(), count
}

// BuildPrompt embeds the transcript context and question verbatim into the fixed prompt template
func BuildPrompt(corpus, question string) string {
	return fmt.Sprintf(promptTemplate, corpus, Sentinel, question)
}
