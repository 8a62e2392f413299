package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rule/resume-analyzer/internal/models"
)

type fakeClassifier struct {
	class DocumentClass
}

func (f *fakeClassifier) Classify(filePath string) DocumentClass {
	return f.class
}

type fakeTextExtractor struct {
	text   string
	err    error
	called bool
}

func (f *fakeTextExtractor) Extract(filePath string) (string, error) {
	f.called = true
	return f.text, f.err
}

type fakeGateway struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGateway) Send(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

type fakeRecorder struct {
	records []*models.AnalysisRecord
}

func (f *fakeRecorder) Record(record *models.AnalysisRecord) error {
	f.records = append(f.records, record)
	return nil
}

func newTestAnalyzer(t *testing.T, gateway LLMGateway, native, ocr TextExtractor, class DocumentClass) (AnalyzerService, ResultStore, *fakeRecorder) {
	t.Helper()

	store := NewFileResultStore(t.TempDir())
	if err := store.EnsureDir(); err != nil {
		t.Fatalf("failed to create outputs dir: %v", err)
	}

	recorder := &fakeRecorder{}
	analyzer := NewAnalyzerService(
		&fakeClassifier{class: class},
		native,
		ocr,
		gateway,
		NewSchemaValidator(5, nil),
		store,
		recorder,
	)

	return analyzer, store, recorder
}

func TestAnalyzeSuccess(t *testing.T) {
	gateway := &fakeGateway{
		response: "```json\n{\"full_name\": \"Jane Smith\", \"fit_score\": 8, \"eligibility_status\": \"Eligible\"}\n```",
	}
	native := &fakeTextExtractor{text: "Jane Smith, Backend Engineer with 6 years of experience."}
	ocr := &fakeTextExtractor{text: "should not be used"}

	analyzer, store, recorder := newTestAnalyzer(t, gateway, native, ocr, NativeText)

	outcome := analyzer.Analyze(context.Background(), AnalyzeRequest{
		FilePath:       "/tmp/cv.pdf",
		Filename:       "cv.pdf",
		ResumeID:       "resume-1",
		JobDescription: "Backend role in Go",
	})

	if outcome.Failed {
		t.Fatalf("expected success, got failure: %s", outcome.FailureReason)
	}
	if !native.called || ocr.called {
		t.Error("native extractor should run for native_text documents")
	}
	if outcome.Assessment.ResumeID != "resume-1" || outcome.Assessment.Filename != "cv.pdf" {
		t.Errorf("identity not stamped: %+v", outcome.Assessment)
	}
	if outcome.Assessment.FitScore != 8 {
		t.Errorf("fit score = %d, want 8", outcome.Assessment.FitScore)
	}
	if outcome.Assessment.JobDescription != "Backend role in Go" {
		t.Errorf("job description = %q, want verbatim", outcome.Assessment.JobDescription)
	}
	if !strings.Contains(gateway.prompt, "Backend role in Go") {
		t.Error("prompt should embed the job description")
	}

	persisted, err := store.Get("resume-1")
	if err != nil {
		t.Fatalf("assessment not persisted: %v", err)
	}
	if persisted.FitScore != 8 {
		t.Errorf("persisted fit score = %d, want 8", persisted.FitScore)
	}

	if len(recorder.records) != 1 || recorder.records[0].Failed {
		t.Errorf("expected one successful index row, got %+v", recorder.records)
	}
}

func TestAnalyzeUsesOCRForScannedDocuments(t *testing.T) {
	gateway := &fakeGateway{
		response: `{"full_name": "Jane", "fit_score": 6}`,
	}
	native := &fakeTextExtractor{text: "should not be used"}
	ocr := &fakeTextExtractor{text: "Jane, scanned resume text"}

	analyzer, _, _ := newTestAnalyzer(t, gateway, native, ocr, Scanned)

	outcome := analyzer.Analyze(context.Background(), AnalyzeRequest{
		FilePath: "/tmp/scan.pdf",
		Filename: "scan.pdf",
		ResumeID: "resume-2",
	})

	if outcome.Failed {
		t.Fatalf("expected success, got failure: %s", outcome.FailureReason)
	}
	if !ocr.called || native.called {
		t.Error("OCR extractor should run for scanned documents")
	}
}

func TestAnalyzeGatewayTimeoutFallsBack(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("openrouter: timeout: context deadline exceeded")}
	native := &fakeTextExtractor{text: "some resume text"}

	analyzer, store, recorder := newTestAnalyzer(t, gateway, native, &fakeTextExtractor{}, NativeText)

	outcome := analyzer.Analyze(context.Background(), AnalyzeRequest{
		FilePath:       "/tmp/cv.pdf",
		Filename:       "cv.pdf",
		ResumeID:       "resume-3",
		JobDescription: "Backend role",
	})

	if !outcome.Failed {
		t.Fatal("expected failure outcome")
	}
	if !strings.Contains(outcome.FailureReason, "timeout") {
		t.Errorf("failure reason %q should mention the timeout", outcome.FailureReason)
	}

	persisted, err := store.Get("resume-3")
	if err != nil {
		t.Fatalf("fallback record not persisted: %v", err)
	}
	if persisted.FitScore != 1 || persisted.EligibilityStatus != models.NotEligible {
		t.Errorf("fallback record malformed: %+v", persisted)
	}
	if !strings.Contains(persisted.FitScoreReason, "timeout") {
		t.Errorf("fit score reason %q should carry the timeout", persisted.FitScoreReason)
	}
	if persisted.JobDescription != "Backend role" {
		t.Errorf("fallback job description = %q, want preserved", persisted.JobDescription)
	}

	if len(recorder.records) != 1 || !recorder.records[0].Failed {
		t.Errorf("expected one failed index row, got %+v", recorder.records)
	}
}

func TestAnalyzeEmptyExtractionFallsBack(t *testing.T) {
	gateway := &fakeGateway{response: "never called"}
	native := &fakeTextExtractor{text: "   \n  "}

	analyzer, _, _ := newTestAnalyzer(t, gateway, native, &fakeTextExtractor{}, NativeText)

	outcome := analyzer.Analyze(context.Background(), AnalyzeRequest{
		FilePath: "/tmp/cv.pdf",
		Filename: "cv.pdf",
		ResumeID: "resume-4",
	})

	if !outcome.Failed {
		t.Fatal("expected failure outcome")
	}
	if outcome.FailureReason != "text extraction produced no content" {
		t.Errorf("failure reason = %q", outcome.FailureReason)
	}
	if gateway.prompt != "" {
		t.Error("gateway must not be invoked when extraction yields nothing")
	}
}

func TestAnalyzeCorrectsInconsistentEligibility(t *testing.T) {
	gateway := &fakeGateway{
		response: `{"full_name": "Jane", "fit_score": 8, "eligibility_status": "Not Eligible"}`,
	}
	native := &fakeTextExtractor{text: "resume text"}

	analyzer, _, _ := newTestAnalyzer(t, gateway, native, &fakeTextExtractor{}, NativeText)

	outcome := analyzer.Analyze(context.Background(), AnalyzeRequest{
		FilePath: "/tmp/cv.pdf",
		Filename: "cv.pdf",
		ResumeID: "resume-5",
	})

	if outcome.Failed {
		t.Fatalf("correction must not fail the run: %s", outcome.FailureReason)
	}
	if outcome.Assessment.EligibilityStatus != models.Eligible {
		t.Errorf("eligibility = %q, want corrected to Eligible", outcome.Assessment.EligibilityStatus)
	}
}

func TestAnalyzeUnparseableResponseFallsBack(t *testing.T) {
	gateway := &fakeGateway{response: "I cannot produce JSON today"}
	native := &fakeTextExtractor{text: "resume text"}

	analyzer, store, _ := newTestAnalyzer(t, gateway, native, &fakeTextExtractor{}, NativeText)

	outcome := analyzer.Analyze(context.Background(), AnalyzeRequest{
		FilePath: "/tmp/cv.pdf",
		Filename: "cv.pdf",
		ResumeID: "resume-6",
	})

	if !outcome.Failed {
		t.Fatal("expected failure outcome")
	}
	if !strings.Contains(outcome.FailureReason, "validation failed") {
		t.Errorf("failure reason = %q", outcome.FailureReason)
	}

	if _, err := store.Get("resume-6"); err != nil {
		t.Fatalf("fallback record not persisted: %v", err)
	}
}
