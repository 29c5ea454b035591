package prompt

import (
	"fmt"
	"strings"

	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/knowledge"
	"ai-advisor-be/pkg/assistant/strategy"
	"ai-advisor-be/pkg/store"
)

const (
	memoryExchanges    = 2
	memoryPreviewChars = 160

	shortRecordCap   = 3
	defaultRecordCap = 8
)

const persona = "You are a business intelligence advisor. You answer questions about " +
	"companies, markets, and decision-makers using the intelligence records " +
	"provided below, and you say plainly when the records do not cover the question."

// Builder assembles the generation prompt from ordered sections: persona,
// recent memory, knowledge records, summary aggregates, a style
// instruction, and the verbatim user message. Greetings skip the knowledge
// and summary sections so "hi" never gets a data dump in reply.
type Builder struct {
	message string
	intent  intent.Intent
	strat   strategy.Strategy
	bundle  *knowledge.Bundle
	state   *store.ConversationState
}

func NewBuilder(message string, in intent.Intent, strat strategy.Strategy, bundle *knowledge.Bundle, state *store.ConversationState) *Builder {
	return &Builder{message: message, intent: in, strat: strat, bundle: bundle, state: state}
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeMemory(&prompt)
	b.writeResume(&prompt)

	if b.intent.PrimaryIntent != intent.IntentGreeting {
		b.writeKnowledge(&prompt)
		b.writeSummary(&prompt)
	}

	b.writeStyle(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *Builder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("<persona>\n")
	prompt.WriteString(persona)
	prompt.WriteString("\n</persona>\n\n")
}

func (b *Builder) writeMemory(prompt *strings.Builder) {
	if b.state == nil || len(b.state.Memory) == 0 {
		return
	}

	start := len(b.state.Memory) - memoryExchanges
	if start < 0 {
		start = 0
	}

	prompt.WriteString("<recent_conversation>\n")
	for _, ex := range b.state.Memory[start:] {
		prompt.WriteString("User: " + preview(ex.UserText) + "\n")
		prompt.WriteString("Advisor: " + preview(ex.AssistantText) + "\n")
	}
	prompt.WriteString("</recent_conversation>\n\n")
}

func (b *Builder) writeResume(prompt *strings.Builder) {
	if b.bundle == nil {
		return
	}
	if len(b.bundle.PreviousUtterances) == 0 && len(b.bundle.KnownEntities) == 0 {
		return
	}

	prompt.WriteString("<previously_discussed>\n")
	for _, utterance := range b.bundle.PreviousUtterances {
		prompt.WriteString("- " + preview(utterance) + "\n")
	}
	if len(b.bundle.KnownEntities) > 0 {
		prompt.WriteString("Companies mentioned so far: " + strings.Join(b.bundle.KnownEntities, ", ") + "\n")
	}
	prompt.WriteString("</previously_discussed>\n\n")
}

func (b *Builder) writeKnowledge(prompt *strings.Builder) {
	if b.bundle == nil {
		return
	}

	recordCap := defaultRecordCap
	if b.strat.ResponseLength == strategy.LengthShort {
		recordCap = shortRecordCap
	}

	if len(b.bundle.Records) > 0 {
		prompt.WriteString("<intelligence_records>\n")
		for i, r := range b.bundle.Records {
			if i >= recordCap {
				break
			}
			prompt.WriteString(recordBullet(r))
		}
		prompt.WriteString("</intelligence_records>\n\n")
	}

	for _, item := range b.bundle.Web {
		prompt.WriteString("<web_content url=\"" + item.URL + "\">\n")
		prompt.WriteString(item.Content)
		prompt.WriteString("\n</web_content>\n\n")
	}
}

func recordBullet(r knowledge.ScoredRecord) string {
	c := r.Record
	if c == nil {
		return ""
	}

	var line strings.Builder
	line.WriteString(fmt.Sprintf("- %s (%s", c.Name, c.Category))
	if c.SubCategory != "" {
		line.WriteString(" / " + c.SubCategory)
	}
	line.WriteString(fmt.Sprintf(", priority %d)", c.PriorityScore))
	if c.Signal != "" {
		line.WriteString(": " + c.Signal)
	}
	for _, contact := range c.Contacts {
		line.WriteString(fmt.Sprintf("\n  contact: %s, %s", contact.Name, contact.Role))
	}
	line.WriteString("\n")
	return line.String()
}

func (b *Builder) writeSummary(prompt *strings.Builder) {
	if b.bundle == nil || b.bundle.Summary == nil {
		return
	}
	s := b.bundle.Summary

	prompt.WriteString("<knowledge_summary>\n")
	prompt.WriteString(fmt.Sprintf("Total records: %d. High priority: %d.\n", s.TotalRecords, s.HighPriorityCount))
	if len(s.Categories) > 0 {
		prompt.WriteString("Categories: " + strings.Join(s.Categories, ", ") + "\n")
	}
	prompt.WriteString("</knowledge_summary>\n\n")
}

func (b *Builder) writeStyle(prompt *strings.Builder) {
	prompt.WriteString("<instructions>\n")
	prompt.WriteString(styleInstruction(b.strat.PromptStyle))
	prompt.WriteString(" ")
	prompt.WriteString(lengthInstruction(b.strat.ResponseLength))
	if b.strat.IncludeSources {
		prompt.WriteString(" Name the specific records your answer draws on.")
	}
	prompt.WriteString("\n</instructions>\n\n")
}

func (b *Builder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("<user_message>\n")
	prompt.WriteString(b.message)
	prompt.WriteString("\n</user_message>\n")
}

func styleInstruction(style string) string {
	switch style {
	case strategy.StyleFriendly:
		return "Respond warmly, like a colleague saying hello."
	case strategy.StyleConcise:
		return "Be direct and economical; no preamble."
	case strategy.StyleStructured:
		return "Organize the answer with clear per-company points."
	case strategy.StyleFactual:
		return "Stick to the data; no speculation."
	case strategy.StyleSupportive:
		return "Offer practical guidance with a constructive tone."
	case strategy.StyleReassuring:
		return "Acknowledge the pressure of the situation and focus on actionable steps."
	default:
		return "Respond naturally and conversationally."
	}
}

func lengthInstruction(length string) string {
	switch length {
	case strategy.LengthShort:
		return "Keep it to two or three sentences."
	case strategy.LengthLong:
		return "Give a thorough, well-structured answer."
	default:
		return "Keep the answer to a focused paragraph or two."
	}
}

func preview(text string) string {
	if len(text) <= memoryPreviewChars {
		return text
	}
	return strings.TrimSpace(text[:memoryPreviewChars]) + "..."
}
