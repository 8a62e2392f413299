package services

import (
	"context"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"rule/resume-analyzer/internal/models"
)

// BatchItem is one document of a batch run.
type BatchItem struct {
	FilePath string
	Filename string
	ResumeID string
}

// BatchResult splits a batch into ranked successes and per-document
// failures. Ranking is computed only after every document has reached its
// terminal state.
type BatchResult struct {
	Ranked []*models.CandidateAssessment
	Failed []models.BatchFailure
}

// BatchService runs the analyzer over N documents with bounded
// concurrency. Document runs are independent; there is no inter-document
// ordering guarantee, only the final ranking.
type BatchService interface {
	Process(ctx context.Context, items []BatchItem, jobDescription string) *BatchResult
}

type batchService struct {
	analyzer    AnalyzerService
	concurrency int
}

func NewBatchService(analyzer AnalyzerService, concurrency int) BatchService {
	if concurrency <= 0 {
		concurrency = 3
	}

	return &batchService{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

func (b *batchService) Process(ctx context.Context, items []BatchItem, jobDescription string) *BatchResult {
	log.Printf("🚀 Batch: processing %d documents with %d workers\n", len(items), b.concurrency)

	var mu sync.Mutex
	result := &BatchResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for _, item := range items {
		g.Go(func() error {
			outcome := b.analyzer.Analyze(gctx, AnalyzeRequest{
				FilePath:       item.FilePath,
				Filename:       item.Filename,
				ResumeID:       item.ResumeID,
				JobDescription: jobDescription,
			})

			mu.Lock()
			defer mu.Unlock()

			if outcome.Failed {
				result.Failed = append(result.Failed, models.BatchFailure{
					ResumeID: item.ResumeID,
					FileName: item.Filename,
					Error:    outcome.FailureReason,
				})
				return nil
			}

			result.Ranked = append(result.Ranked, outcome.Assessment)
			return nil
		})
	}

	// Analyze never returns an error; Wait only orders the ranking after
	// the last document persists.
	_ = g.Wait()

	sort.SliceStable(result.Ranked, func(i, j int) bool {
		return result.Ranked[i].FitScore > result.Ranked[j].FitScore
	})

	log.Printf("✅ Batch complete: %d ranked, %d failed\n", len(result.Ranked), len(result.Failed))

	return result
}
