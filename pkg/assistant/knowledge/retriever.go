package knowledge

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/contract"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/strategy"
	"ai-advisor-be/pkg/store"
)

// Fetch sizes per data requirement.
const (
	genericTopN    = 8
	contextualTopN = 6
	crisisTopN     = 15
	marketTopN     = 12

	highPriorityThreshold = 70
	previousUtterances    = 3
)

// DefaultTargetURL is fetched when a web scrape is requested without an
// explicit URL in the message.
const DefaultTargetURL = "https://www.reuters.com/business/"

// Retriever assembles the knowledge bundle for one turn. It never returns
// an error: every data-access failure is logged and surfaced as a degraded
// (possibly empty) bundle.
type Retriever struct {
	companies contract.CompanyRepository
	fetcher   PageFetcher
	logger    *log.Logger
	targetURL string
}

func NewRetriever(companies contract.CompanyRepository, fetcher PageFetcher, logger *log.Logger) *Retriever {
	return &Retriever{
		companies: companies,
		fetcher:   fetcher,
		logger:    logger,
		targetURL: DefaultTargetURL,
	}
}

// Fetch resolves the strategy's data requirement against the knowledge
// base, plus an independent web fetch when the message asks for live
// content. Structured and web sub-queries run concurrently; both must
// settle (or be treated as failed) before the bundle is returned.
func (r *Retriever) Fetch(
	ctx context.Context,
	message string,
	in intent.Intent,
	strat strategy.Strategy,
	state *store.ConversationState,
) *Bundle {

	bundle := &Bundle{Records: []ScoredRecord{}}

	var web []WebItem
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.fetchStructured(gctx, bundle, message, in, strat, state)
		return nil
	})

	if wantsWebContent(message) && r.fetcher != nil {
		g.Go(func() error {
			web = r.fetchWeb(gctx, message)
			return nil
		})
	}

	// Sub-queries report failures through the bundle, never via error.
	_ = g.Wait()
	bundle.Web = web
	return bundle
}

func (r *Retriever) fetchStructured(
	ctx context.Context,
	bundle *Bundle,
	message string,
	in intent.Intent,
	strat strategy.Strategy,
	state *store.ConversationState,
) {
	urgent := in.Urgency == intent.UrgencyUrgent

	switch strat.DataNeeded {
	case strategy.DataSummaryStats:
		bundle.Summary = r.summarize(ctx, bundle)

	case strategy.DataCompanySpecific:
		if len(in.MentionedEntities) > 0 {
			bundle.Records = r.fetchByNames(ctx, bundle, in.MentionedEntities, message, urgent)
		} else {
			bundle.Records = r.fetchGenericTop(ctx, bundle, message, urgent, genericTopN)
		}

	case strategy.DataCrisisCompanies:
		bundle.Records = r.fetchByPriority(ctx, bundle, crisisTopN, specification.MinPriority{Score: highPriorityThreshold})
		bundle.Summary = r.summarize(ctx, bundle)

	case strategy.DataMarketTrends:
		bundle.Records = r.fetchByPriority(ctx, bundle, marketTopN)
		bundle.Summary = r.summarize(ctx, bundle)

	case strategy.DataDecisionMakers:
		entities := in.MentionedEntities
		if len(entities) == 0 {
			entities = state.Context.MentionedEntities
		}
		if len(entities) > 0 {
			bundle.Records = r.fetchByNames(ctx, bundle, entities, message, urgent)
		}

	case strategy.DataPreviousContext:
		bundle.PreviousUtterances = state.LastUserTexts(previousUtterances)
		bundle.KnownEntities = state.Context.MentionedEntities

	default: // contextual
		if len(state.Context.MentionedEntities) > 0 {
			bundle.Records = r.fetchByNames(ctx, bundle, state.Context.MentionedEntities, message, urgent)
		} else {
			bundle.Records = r.fetchGenericTop(ctx, bundle, message, urgent, contextualTopN)
		}
	}
}

func (r *Retriever) fetchByNames(ctx context.Context, bundle *Bundle, names []string, message string, urgent bool) []ScoredRecord {
	companies, err := r.companies.FindAll(ctx,
		specification.NameMatchesAny{Names: names},
		specification.WithContacts{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		r.logger.Printf("[WARN] Entity fetch failed: %v", err)
		bundle.Degraded = true
		return []ScoredRecord{}
	}
	return rankRecords(companies, message, urgent)
}

func (r *Retriever) fetchGenericTop(ctx context.Context, bundle *Bundle, message string, urgent bool, n int) []ScoredRecord {
	companies, err := r.companies.FindAll(ctx,
		specification.WithContacts{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		r.logger.Printf("[WARN] Generic fetch failed: %v", err)
		bundle.Degraded = true
		return []ScoredRecord{}
	}
	ranked := rankRecords(companies, message, urgent)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func (r *Retriever) fetchByPriority(ctx context.Context, bundle *Bundle, n int, extra ...specification.Specification) []ScoredRecord {
	specs := append([]specification.Specification{
		specification.WithContacts{},
		specification.OrderBy{Field: "priority_score", Desc: true},
		specification.Limit{N: n},
	}, extra...)

	companies, err := r.companies.FindAll(ctx, specs...)
	if err != nil {
		r.logger.Printf("[WARN] Priority fetch failed: %v", err)
		bundle.Degraded = true
		return []ScoredRecord{}
	}

	records := make([]ScoredRecord, 0, len(companies))
	for _, c := range companies {
		records = append(records, ScoredRecord{Record: c, Score: c.PriorityScore})
	}
	return records
}

func (r *Retriever) summarize(ctx context.Context, bundle *Bundle) *entity.KnowledgeSummary {
	summary, err := r.companies.Summarize(ctx, highPriorityThreshold)
	if err != nil {
		r.logger.Printf("[WARN] Summary query failed: %v", err)
		bundle.Degraded = true
		return nil
	}
	return summary
}

func (r *Retriever) fetchWeb(ctx context.Context, message string) []WebItem {
	url := extractURL(message)
	if url == "" {
		url = r.targetURL
	}

	content, err := r.fetcher.FetchPage(ctx, url)
	if err != nil {
		r.logger.Printf("[WARN] Web fetch failed for %s: %v", url, err)
		return []WebItem{{URL: url, Content: FetchFailedSentinel}}
	}
	return []WebItem{{URL: url, Content: content, Score: scoreWebContent(content, message)}}
}
