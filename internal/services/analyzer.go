package services

import (
	"context"
	"log"
	"strings"

	"rule/resume-analyzer/internal/models"
)

// LLMGateway is the one blocking dependency of a pipeline run.
// *providers.Gateway satisfies it; tests substitute fakes.
type LLMGateway interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// AnalysisRecorder receives the index row written alongside each
// persisted assessment. Optional; nil disables indexing.
type AnalysisRecorder interface {
	Record(record *models.AnalysisRecord) error
}

// analysisState tracks the forward-only progress of one document run.
type analysisState string

const (
	stateClassifying analysisState = "classifying"
	stateExtracting  analysisState = "extracting"
	stateInvoking    analysisState = "invoking"
	stateNormalizing analysisState = "normalizing"
	stateValidating  analysisState = "validating"
	statePersisted   analysisState = "persisted"
)

// AnalyzeRequest identifies one document run.
type AnalyzeRequest struct {
	FilePath       string
	Filename       string
	ResumeID       string
	JobDescription string
}

// AnalysisOutcome always carries a complete assessment. Failed marks runs
// that resolved through the fallback synthesizer; the record is persisted
// either way.
type AnalysisOutcome struct {
	Assessment    *models.CandidateAssessment
	Failed        bool
	FailureReason string
}

// AnalyzerService runs the per-document pipeline: classify, extract,
// invoke, normalize, validate, persist. Every state transitions forward
// only; any failure short-circuits to persistence via the fallback
// record. No retries inside a run.
type AnalyzerService interface {
	Analyze(ctx context.Context, req AnalyzeRequest) *AnalysisOutcome
}

type analyzerService struct {
	classifier      DocumentClassifier
	nativeExtractor TextExtractor
	ocrExtractor    TextExtractor
	gateway         LLMGateway
	validator       SchemaValidator
	resultStore     ResultStore
	recorder        AnalysisRecorder
	promptBuilder   *PromptBuilder
}

func NewAnalyzerService(
	classifier DocumentClassifier,
	nativeExtractor TextExtractor,
	ocrExtractor TextExtractor,
	gateway LLMGateway,
	validator SchemaValidator,
	resultStore ResultStore,
	recorder AnalysisRecorder,
) AnalyzerService {
	return &analyzerService{
		classifier:      classifier,
		nativeExtractor: nativeExtractor,
		ocrExtractor:    ocrExtractor,
		gateway:         gateway,
		validator:       validator,
		resultStore:     resultStore,
		recorder:        recorder,
		promptBuilder:   NewPromptBuilder(),
	}
}

func (a *analyzerService) Analyze(ctx context.Context, req AnalyzeRequest) *AnalysisOutcome {
	log.Printf("🔄 [%s] Starting analysis for %s\n", stateClassifying, req.Filename)

	class := a.classifier.Classify(req.FilePath)

	extractor := a.nativeExtractor
	if class == Scanned {
		extractor = a.ocrExtractor
	}

	log.Printf("📄 [%s] Strategy %s for %s\n", stateExtracting, class, req.Filename)
	text, err := extractor.Extract(req.FilePath)
	if err != nil || strings.TrimSpace(text) == "" {
		reason := "text extraction produced no content"
		if err != nil {
			reason = "text extraction failed: " + err.Error()
		}
		return a.fail(req, reason)
	}

	log.Printf("🤖 [%s] Invoking LLM for %s (%d characters of text)\n", stateInvoking, req.Filename, len(text))
	prompt := a.promptBuilder.BuildResumeAnalysisPrompt(CleanText(text), req.JobDescription)
	raw, err := a.gateway.Send(ctx, prompt)
	if err != nil {
		// Reason string preserved verbatim for diagnostics.
		return a.fail(req, err.Error())
	}

	log.Printf("🧹 [%s] Normalizing response for %s\n", stateNormalizing, req.Filename)
	normalized := NormalizeResponse(raw)

	log.Printf("🔎 [%s] Validating response for %s\n", stateValidating, req.Filename)
	result := a.validator.Validate(ctx, normalized, req.JobDescription)
	if !result.IsValid {
		return a.fail(req, "validation failed: "+strings.Join(result.Errors, ", "))
	}
	for _, warning := range result.Warnings {
		log.Printf("⚠️  Validation note for %s: %s\n", req.Filename, warning)
	}

	assessment := result.Data
	assessment.ResumeID = req.ResumeID
	assessment.Filename = req.Filename

	if err := a.persist(assessment, false, ""); err != nil {
		log.Printf("❌ Failed to persist assessment %s: %v\n", req.ResumeID, err)
	}

	log.Printf("✅ [%s] Analysis completed for %s (fit_score=%d, %s)\n", statePersisted, req.Filename, assessment.FitScore, assessment.EligibilityStatus)

	return &AnalysisOutcome{Assessment: assessment}
}

// fail converges every failure path on a persisted fallback record, so a
// failed analysis has the same shape as a successful one.
func (a *analyzerService) fail(req AnalyzeRequest, reason string) *AnalysisOutcome {
	log.Printf("❌ Analysis failed for %s: %s\n", req.Filename, reason)

	fallback := NewFallbackAssessment(req.ResumeID, req.Filename, req.JobDescription, reason)

	if err := a.persist(fallback, true, reason); err != nil {
		log.Printf("❌ Failed to persist fallback record %s: %v\n", req.ResumeID, err)
	}

	log.Printf("🛟 [%s] Fallback record persisted for %s\n", statePersisted, req.Filename)

	return &AnalysisOutcome{
		Assessment:    fallback,
		Failed:        true,
		FailureReason: reason,
	}
}

func (a *analyzerService) persist(assessment *models.CandidateAssessment, failed bool, reason string) error {
	if err := a.resultStore.Save(assessment); err != nil {
		return err
	}

	if a.recorder != nil {
		if err := a.recorder.Record(&models.AnalysisRecord{
			ResumeID:          assessment.ResumeID,
			Filename:          assessment.Filename,
			FitScore:          assessment.FitScore,
			EligibilityStatus: string(assessment.EligibilityStatus),
			Failed:            failed,
			FailureReason:     reason,
		}); err != nil {
			log.Printf("⚠️  Failed to index assessment %s: %v\n", assessment.ResumeID, err)
		}
	}

	return nil
}

// gatewayExtractor adapts the gateway into the validator's slow path.
type gatewayExtractor struct {
	gateway       LLMGateway
	promptBuilder *PromptBuilder
}

// NewStructuredExtractor returns the re-extraction pass used when a
// response mixes prose with the JSON payload.
func NewStructuredExtractor(gateway LLMGateway) StructuredExtractor {
	return &gatewayExtractor{
		gateway:       gateway,
		promptBuilder: NewPromptBuilder(),
	}
}

func (g *gatewayExtractor) ExtractStructured(ctx context.Context, rawText, jobDescription string) (string, error) {
	prompt := g.promptBuilder.BuildStructuredExtractionPrompt(rawText, jobDescription)
	return g.gateway.Send(ctx, prompt)
}
