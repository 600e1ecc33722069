package summarizer

import (
	"fmt"
	"strings"

	"github.com/notetakerai/notetaker/internal/summarizer/providers"
)

// summarySystemPrompt asks for the four-section structure every summary
// path produces, so single-pass and combined output look the same to
// the caller.
const summarySystemPrompt = `You are an expert at summarizing audio notes and transcriptions. Create a comprehensive but concise summary that captures the key points, main topics, and important details. Structure your summary with:

**Main Topics/Themes:**
**Key Points:**
**Action Items/Next Steps:** (if any)
**Notable Details:**

Keep the summary clear and well-organized.`

const summaryUserPrompt = `Please analyze and summarize the following audio transcription:

%s`

const chunkSummarySystemPrompt = `You are an expert at summarizing audio notes and transcriptions. You will be given one section of a longer transcription. Summarize the section comprehensively but concisely, capturing its main topics, key points, decisions, and any action items mentioned. Do not speculate about the parts you have not seen.`

const chunkSummaryUserPrompt = `This is part %d of %d of an audio transcription. Summarize this section:

%s`

const combineSystemPrompt = `You are an expert at summarizing audio notes and transcriptions. You will be given ordered sectional summaries of one transcription. Combine them into a single cohesive summary: remove redundancy across sections, group related topics together, and structure the result with:

**Main Topics/Themes:**
**Key Points:**
**Action Items/Next Steps:** (if any)
**Notable Details:**`

const combineUserPrompt = `Below are %d sectional summaries of one audio transcription, in order. Combine them into a single summary:

%s`

const actionItemsSystemPrompt = `You extract actionable items from audio transcriptions. Return only the action items as a bullet-point list, one item per line, each line starting with "- ". If there are no action items, return nothing.`

const actionItemsUserPrompt = `Extract all actionable tasks, to-dos, reminders, or follow-ups from the following transcription. This could include things to research, people to contact, tasks to complete, or ideas to pursue.

Transcription:
%s`

const chunkActionItemsUserPrompt = `Extract all actionable tasks, to-dos, reminders, or follow-ups from part %d of %d of an audio transcription. This could include things to research, people to contact, tasks to complete, or ideas to pursue.

Transcription section:
%s`

func summaryMessages(text string) []providers.Message {
	return []providers.Message{
		{Role: providers.RoleSystem, Content: summarySystemPrompt},
		{Role: providers.RoleUser, Content: fmt.Sprintf(summaryUserPrompt, text)},
	}
}

func chunkSummaryMessages(chunk Chunk) []providers.Message {
	return []providers.Message{
		{Role: providers.RoleSystem, Content: chunkSummarySystemPrompt},
		{Role: providers.RoleUser, Content: fmt.Sprintf(chunkSummaryUserPrompt, chunk.Ordinal, chunk.Total, chunk.Text)},
	}
}

func combineMessages(summaries []ChunkSummary) []providers.Message {
	var parts strings.Builder
	for _, summary := range summaries {
		fmt.Fprintf(&parts, "Part %d:\n%s\n\n", summary.Ordinal, summary.Text)
	}
	return []providers.Message{
		{Role: providers.RoleSystem, Content: combineSystemPrompt},
		{Role: providers.RoleUser, Content: fmt.Sprintf(combineUserPrompt, len(summaries), strings.TrimRight(parts.String(), "\n"))},
	}
}

func actionItemMessages(text string) []providers.Message {
	return []providers.Message{
		{Role: providers.RoleSystem, Content: actionItemsSystemPrompt},
		{Role: providers.RoleUser, Content: fmt.Sprintf(actionItemsUserPrompt, text)},
	}
}

func chunkActionItemMessages(chunk Chunk) []providers.Message {
	return []providers.Message{
		{Role: providers.RoleSystem, Content: actionItemsSystemPrompt},
		{Role: providers.RoleUser, Content: fmt.Sprintf(chunkActionItemsUserPrompt, chunk.Ordinal, chunk.Total, chunk.Text)},
	}
}
