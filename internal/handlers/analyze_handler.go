package handlers

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rule/resume-analyzer/internal/models"
	"rule/resume-analyzer/internal/repositories"
	"rule/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	jobDescStore   services.JobDescriptionStore
	analyzer       services.AnalyzerService
	batch          services.BatchService
	maxFileSize    int64
}

func NewAnalyzeHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	jobDescStore services.JobDescriptionStore,
	analyzer services.AnalyzerService,
	batch services.BatchService,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		docRepo:        docRepo,
		storageService: storageService,
		jobDescStore:   jobDescStore,
		analyzer:       analyzer,
		batch:          batch,
		maxFileSize:    maxFileSize,
	}
}

// saveUpload stores the uploaded resume and registers its document
// record, returning the generated resume ID and the stored file path.
func (h *AnalyzeHandler) saveUpload(file *multipart.FileHeader) (string, string, error) {
	if file.Size > h.maxFileSize {
		return "", "", fmt.Errorf("file too large. Max size: %d bytes", h.maxFileSize)
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	resumeID := uuid.New().String()

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		ResumeID:         resumeID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return "", "", fmt.Errorf("failed to save document record: %w", err)
	}

	return resumeID, filePath, nil
}

func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume uploaded. Please upload 'resume' as a PDF file.",
		})
	}

	resumeID, filePath, err := h.saveUpload(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	jobDescription := h.jobDescStore.Load()

	outcome := h.analyzer.Analyze(c.UserContext(), services.AnalyzeRequest{
		FilePath:       filePath,
		Filename:       file.Filename,
		ResumeID:       resumeID,
		JobDescription: jobDescription,
	})

	return c.JSON(outcome.Assessment)
}

func (h *AnalyzeHandler) HandleAnalyzeBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resumes uploaded. Please upload 'resumes' as PDF files.",
		})
	}

	var items []services.BatchItem
	failed := make([]models.BatchFailure, 0)

	for _, file := range files {
		resumeID, filePath, err := h.saveUpload(file)
		if err != nil {
			// A rejected upload still appears in the batch report
			failed = append(failed, models.BatchFailure{
				FileName: file.Filename,
				Error:    err.Error(),
			})
			continue
		}

		items = append(items, services.BatchItem{
			FilePath: filePath,
			Filename: file.Filename,
			ResumeID: resumeID,
		})
	}

	jobDescription := h.jobDescStore.Load()

	result := h.batch.Process(c.UserContext(), items, jobDescription)

	ranked := make([]models.RankedResume, 0, len(result.Ranked))
	for _, assessment := range result.Ranked {
		ranked = append(ranked, models.RankedResume{
			ResumeID: assessment.ResumeID,
			FileName: assessment.Filename,
			FitScore: assessment.FitScore,
		})
	}

	return c.JSON(models.BatchResponse{
		RankedResumes: ranked,
		Failed:        append(failed, result.Failed...),
	})
}
