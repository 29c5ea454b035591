package response

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/knowledge"
	"ai-advisor-be/pkg/llm"
)

type stubProvider struct {
	out string
	err error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.out, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.out, s.err
}

func nopLog() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestGenerateReturnsModelOutput(t *testing.T) {
	g := NewGenerator(&stubProvider{out: "the answer"}, nopLog())
	got := g.Generate(context.Background(), "prompt", intent.Intent{PrimaryIntent: intent.IntentCompanyInquiry})
	assert.Equal(t, "the answer", got)
}

func TestGenerateFallsBackPerIntentOnError(t *testing.T) {
	g := NewGenerator(&stubProvider{err: errors.New("timeout")}, nopLog())

	for _, tag := range []string{
		intent.IntentGreeting, intent.IntentCrisisSupport, intent.IntentUnknown,
	} {
		got := g.Generate(context.Background(), "prompt", intent.Intent{PrimaryIntent: tag})
		assert.Equal(t, FallbackFor(tag), got)
		assert.NotContains(t, got, "timeout", "raw error must never leak")
	}
}

func TestGenerateFallsBackOnBlankOutput(t *testing.T) {
	g := NewGenerator(&stubProvider{out: "   \n"}, nopLog())
	got := g.Generate(context.Background(), "prompt", intent.Intent{PrimaryIntent: intent.IntentAdviceRequest})
	assert.Equal(t, FallbackFor(intent.IntentAdviceRequest), got)
}

func TestFallbackForUnknownTag(t *testing.T) {
	assert.Equal(t, FallbackFor(intent.IntentUnknown), FallbackFor("never_heard_of_it"))
}

func TestFollowupsAlwaysThreeUnique(t *testing.T) {
	for _, tag := range []string{
		intent.IntentGreeting, intent.IntentCompanyInquiry, intent.IntentDataFetch,
		intent.IntentUnknown, "bogus",
	} {
		got := Followups(intent.Intent{PrimaryIntent: tag}, nil)
		require.Len(t, got, FollowupCount, "intent %s", tag)

		seen := map[string]bool{}
		for _, s := range got {
			assert.False(t, seen[s], "duplicate followup for %s", tag)
			seen[s] = true
		}
	}
}

func TestFollowupsDerivedFromBundle(t *testing.T) {
	bundle := &knowledge.Bundle{
		Records: []knowledge.ScoredRecord{
			{Record: &entity.Company{Name: "Acme Corp"}},
		},
	}
	got := Followups(intent.Intent{PrimaryIntent: intent.IntentDataFetch}, bundle)
	require.Len(t, got, FollowupCount)
	assert.Contains(t, got, "Should I dig deeper into Acme Corp?")
}

func TestFollowupsCategoryComparison(t *testing.T) {
	bundle := &knowledge.Bundle{
		Summary: &entity.KnowledgeSummary{Categories: []string{"Logistics", "Retail"}},
	}
	got := Followups(intent.Intent{PrimaryIntent: intent.IntentGreeting}, bundle)
	require.Len(t, got, FollowupCount)
	assert.Contains(t, got, "Want a comparison across the 2 categories I track?")
}
