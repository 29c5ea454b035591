package knowledge

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/strategy"
	"ai-advisor-be/pkg/store"
)

// fakeCompanyRepo interprets the query specifications in memory so
// retrieval behavior can be tested without a database.
type fakeCompanyRepo struct {
	companies []*entity.Company
	findErr   error
	sumErr    error
	calls     int
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	f.companies = append(f.companies, company)
	return nil
}

func (f *fakeCompanyRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error) {
	f.calls++
	if f.findErr != nil {
		return nil, f.findErr
	}

	result := append([]*entity.Company{}, f.companies...)
	limit := -1
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.NameMatchesAny:
			var matched []*entity.Company
			for _, c := range result {
				for _, name := range s.Names {
					if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
						matched = append(matched, c)
						break
					}
				}
			}
			result = matched
		case specification.MinPriority:
			var matched []*entity.Company
			for _, c := range result {
				if c.PriorityScore >= s.Score {
					matched = append(matched, c)
				}
			}
			result = matched
		case specification.OrderBy:
			if s.Field == "priority_score" && s.Desc {
				sort.SliceStable(result, func(i, j int) bool {
					return result[i].PriorityScore > result[j].PriorityScore
				})
			}
		case specification.Limit:
			limit = s.N
		}
	}
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeCompanyRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.companies)), nil
}

func (f *fakeCompanyRepo) Summarize(ctx context.Context, highPriorityThreshold int) (*entity.KnowledgeSummary, error) {
	if f.sumErr != nil {
		return nil, f.sumErr
	}
	summary := &entity.KnowledgeSummary{TotalRecords: int64(len(f.companies))}
	for _, c := range f.companies {
		if c.PriorityScore >= highPriorityThreshold {
			summary.HighPriorityCount++
		}
	}
	return summary, nil
}

type fakeFetcher struct {
	content string
	err     error
	lastURL string
}

func (f *fakeFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	f.lastURL = url
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func freshState() *store.ConversationState {
	return store.NewConversationState(uuid.New(), uuid.New())
}

func newTestRetriever(repo *fakeCompanyRepo, fetcher PageFetcher) *Retriever {
	return NewRetriever(repo, fetcher, log.New(io.Discard, "", 0))
}

func seedRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: []*entity.Company{
		company("Acme Corp", "Logistics", "Freight", "stable growth", 55),
		company("Northwind Logistics Group", "Logistics", "Shipping", "facing bankruptcy risk", 85),
		company("Beta Retail", "Retail", "Grocery", "declining revenue", 75),
		company("Gamma Industries", "Manufacturing", "Steel", "steady", 30),
	}}
}

func TestFetchCompanySpecificFiltersToMentionedEntities(t *testing.T) {
	repo := seedRepo()
	r := newTestRetriever(repo, nil)

	in := intent.Intent{
		PrimaryIntent:     intent.IntentCompanyInquiry,
		Urgency:           intent.UrgencyNormal,
		MentionedEntities: []string{"Acme Corp"},
	}
	strat := strategy.Strategy{DataNeeded: strategy.DataCompanySpecific}

	bundle := r.Fetch(context.Background(), "Tell me about Acme Corp", in, strat, freshState())
	require.Len(t, bundle.Records, 1)
	assert.Equal(t, "Acme Corp", bundle.Records[0].Record.Name)
	assert.False(t, bundle.Degraded)
}

func TestFetchCompanySpecificFallsBackToGenericTop(t *testing.T) {
	repo := seedRepo()
	r := newTestRetriever(repo, nil)

	in := intent.Intent{PrimaryIntent: intent.IntentCompanyInquiry, Urgency: intent.UrgencyNormal}
	strat := strategy.Strategy{DataNeeded: strategy.DataCompanySpecific}

	bundle := r.Fetch(context.Background(), "what do we know about logistics", in, strat, freshState())
	require.NotEmpty(t, bundle.Records)
	assert.LessOrEqual(t, len(bundle.Records), genericTopN)
	// Both logistics records outrank the rest on the category keyword.
	assert.Equal(t, "Northwind Logistics Group", bundle.Records[0].Record.Name)
	assert.Equal(t, "Acme Corp", bundle.Records[1].Record.Name)
}

func TestFetchCrisisCompaniesFiltersAndSummarizes(t *testing.T) {
	repo := seedRepo()
	r := newTestRetriever(repo, nil)

	in := intent.Intent{PrimaryIntent: intent.IntentCrisisSupport, Urgency: intent.UrgencyUrgent}
	strat := strategy.Strategy{DataNeeded: strategy.DataCrisisCompanies}

	bundle := r.Fetch(context.Background(), "urgent: which companies are failing", in, strat, freshState())
	require.Len(t, bundle.Records, 2, "only records at or above the priority floor")
	assert.Equal(t, "Northwind Logistics Group", bundle.Records[0].Record.Name)
	require.NotNil(t, bundle.Summary)
	assert.Equal(t, int64(4), bundle.Summary.TotalRecords)
}

func TestFetchPreviousContextReadsStateOnly(t *testing.T) {
	repo := seedRepo()
	r := newTestRetriever(repo, nil)

	state := freshState()
	state.AppendExchange(store.Exchange{UserText: "first question"})
	state.AppendExchange(store.Exchange{UserText: "second question"})
	state.AddMentionedEntities([]string{"Acme Corp"})

	strat := strategy.Strategy{DataNeeded: strategy.DataPreviousContext}
	bundle := r.Fetch(context.Background(), "hello again", intent.Intent{PrimaryIntent: intent.IntentGreeting}, strat, state)

	assert.Equal(t, []string{"first question", "second question"}, bundle.PreviousUtterances)
	assert.Equal(t, []string{"Acme Corp"}, bundle.KnownEntities)
	assert.Zero(t, repo.calls, "previous_context never touches the repository")
}

func TestFetchDegradesOnRepositoryError(t *testing.T) {
	repo := &fakeCompanyRepo{findErr: errors.New("connection refused")}
	r := newTestRetriever(repo, nil)

	strat := strategy.Strategy{DataNeeded: strategy.DataContextual}
	bundle := r.Fetch(context.Background(), "anything new?", intent.Intent{PrimaryIntent: intent.IntentUnknown}, strat, freshState())

	assert.Empty(t, bundle.Records)
	assert.True(t, bundle.Degraded)
}

func TestFetchWebAttachesSentinelOnFailure(t *testing.T) {
	repo := seedRepo()
	fetcher := &fakeFetcher{err: errors.New("timeout")}
	r := newTestRetriever(repo, fetcher)

	strat := strategy.Strategy{DataNeeded: strategy.DataContextual}
	bundle := r.Fetch(context.Background(), "scrape https://example.com/news for me", intent.Intent{PrimaryIntent: intent.IntentDataFetch}, strat, freshState())

	require.Len(t, bundle.Web, 1)
	assert.Equal(t, "https://example.com/news", bundle.Web[0].URL)
	assert.Equal(t, FetchFailedSentinel, bundle.Web[0].Content)
}

func TestFetchWebUsesDefaultTargetWithoutURL(t *testing.T) {
	repo := seedRepo()
	fetcher := &fakeFetcher{content: "logistics markets moved today"}
	r := newTestRetriever(repo, fetcher)

	strat := strategy.Strategy{DataNeeded: strategy.DataContextual}
	bundle := r.Fetch(context.Background(), "search the internet for logistics news", intent.Intent{PrimaryIntent: intent.IntentDataFetch}, strat, freshState())

	require.Len(t, bundle.Web, 1)
	assert.Equal(t, DefaultTargetURL, fetcher.lastURL)
	assert.Greater(t, bundle.Web[0].Score, 0)
}

func TestFetchWithoutScrapeKeywordsSkipsWeb(t *testing.T) {
	repo := seedRepo()
	fetcher := &fakeFetcher{content: "irrelevant"}
	r := newTestRetriever(repo, fetcher)

	strat := strategy.Strategy{DataNeeded: strategy.DataContextual}
	bundle := r.Fetch(context.Background(), "tell me about retail", intent.Intent{PrimaryIntent: intent.IntentUnknown}, strat, freshState())

	assert.Empty(t, bundle.Web)
	assert.Empty(t, fetcher.lastURL)
}
