package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"careerai/internal/analyzer"
	"careerai/internal/logging"
	"careerai/internal/models"
	"careerai/internal/objectstore"
	"careerai/internal/queue"
	"careerai/internal/redis"
	"careerai/internal/storage"
)

const defaultMaxUpload = 10 << 20

type Analyzer interface {
	Ask(ctx context.Context, question, systemPrompt string) (string, error)
	Chat(ctx context.Context, conversation []models.Message) (string, error)
	Prompt(ctx context.Context, content, model string) (string, error)
	Scan(path string) (string, error)
	ReviewResume(ctx context.Context, path, model, language string) (*models.Report, error)
}

type HistoryStore interface {
	Load(ctx context.Context, sessionID string) ([]models.Message, error)
	Append(ctx context.Context, sessionID string, msgs ...models.Message) ([]models.Message, error)
}

// Options wires the optional backends. A nil History disables /api/chat and
// a nil Jobs disables the asynchronous /api/jobs endpoints.
type Options struct {
	UploadDir      string
	MaxUploadBytes int64
	History        HistoryStore
	Jobs           storage.JobStore
	Queue          queue.Producer
	Uploader       objectstore.Uploader
	S3Bucket       string
	Logger         *logging.Logger
}

type APIHandler struct {
	analyzer  Analyzer
	history   HistoryStore
	jobs      storage.JobStore
	queue     queue.Producer
	uploader  objectstore.Uploader
	s3Bucket  string
	uploadDir string
	maxUpload int64
	validate  *validator.Validate
	logger    *logging.Logger
}

func NewAPIHandler(a Analyzer, opts Options) *APIHandler {
	if opts.UploadDir == "" {
		opts.UploadDir = "uploads"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUpload
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	return &APIHandler{
		analyzer:  a,
		history:   opts.History,
		jobs:      opts.Jobs,
		queue:     opts.Queue,
		uploader:  opts.Uploader,
		s3Bucket:  opts.S3Bucket,
		uploadDir: opts.UploadDir,
		maxUpload: opts.MaxUploadBytes,
		validate:  newValidator(),
		logger:    opts.Logger,
	}
}

func (h *APIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Status:    statusSuccess,
		Message:   "CareerAI Backend API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

type uploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Mimetype     string `json:"mimetype"`
	Path         string `json:"path"`
	UploadedAt   string `json:"uploadedAt"`
}

func (h *APIHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.readResume(w, r)
	if !ok {
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("failed to create upload directory", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload file", err.Error())
		return
	}

	name := fmt.Sprintf("resume-%d-%d.pdf", time.Now().UnixMilli(), rand.Int64N(1_000_000_000))
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to upload file", err.Error())
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(path)
		writeError(w, http.StatusInternalServerError, "Failed to upload file", err.Error())
		return
	}

	h.logger.Info("resume uploaded", "filename", name, "original_name", header.Filename, "size", size)

	writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: "File uploaded successfully",
		Data: uploadedFile{
			Filename:     name,
			OriginalName: header.Filename,
			Size:         size,
			Mimetype:     "application/pdf",
			Path:         path,
			UploadedAt:   time.Now().UTC().Format(time.RFC3339),
		},
	})
}

type scanRequest struct {
	Filename string `json:"filename" validate:"required"`
}

func (h *APIHandler) HandleScanPDF(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !h.decode(w, r, &req) {
		return
	}

	path, ok := h.resolveUpload(w, req.Filename)
	if !ok {
		return
	}

	text, err := h.analyzer.Scan(path)
	if err != nil {
		h.logger.Error("scan failed", "filename", req.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to scan PDF", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: "PDF scanned successfully",
		Data: map[string]string{
			"scannedText": strings.TrimSpace(text),
			"filename":    req.Filename,
		},
	})
}

type scanAndAnalyzeRequest struct {
	Filename string `json:"filename" validate:"required"`
	Model    string `json:"model"`
	Language string `json:"language" validate:"omitempty,oneof=english french"`
}

type reviewData struct {
	ScannedText string                    `json:"scannedText"`
	Analysis    string                    `json:"analysis"`
	Filename    string                    `json:"filename"`
	Model       string                    `json:"model"`
	Language    string                    `json:"language"`
	Scores      models.ScoreCard          `json:"scores"`
	Categories  []models.CategoryFeedback `json:"categories"`
}

func (h *APIHandler) HandleScanAndAnalyze(w http.ResponseWriter, r *http.Request) {
	var req scanAndAnalyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	path, ok := h.resolveUpload(w, req.Filename)
	if !ok {
		return
	}

	report, err := h.analyzer.ReviewResume(r.Context(), path, req.Model, req.Language)
	if err != nil {
		h.logger.Error("scan and analyze failed", "filename", req.Filename, "error", err)
		writeFailure(w, err, "Failed to scan and analyze PDF. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status: statusSuccess,
		Data: reviewData{
			ScannedText: strings.TrimSpace(report.ScannedText),
			Analysis:    report.Analysis,
			Filename:    req.Filename,
			Model:       report.Model,
			Language:    report.Language,
			Scores:      report.Scores,
			Categories:  report.Categories,
		},
	})
}

type analyzeRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Model  string `json:"model"`
}

func (h *APIHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	text, err := h.analyzer.Prompt(r.Context(), req.Prompt, req.Model)
	if err != nil {
		h.logger.Error("analyze failed", "error", err)
		writeFailure(w, err, "Failed to get AI response")
		return
	}

	writeJSON(w, http.StatusOK, envelope{Status: statusSuccess, Response: text})
}

type askRequest struct {
	Question     string `json:"question" validate:"required"`
	SystemPrompt string `json:"systemPrompt"`
}

func (h *APIHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !h.decode(w, r, &req) {
		return
	}

	answer, err := h.analyzer.Ask(r.Context(), req.Question, req.SystemPrompt)
	if err != nil {
		h.logger.Error("ask failed", "error", err)
		writeFailure(w, err, "Failed to get AI response")
		return
	}

	writeJSON(w, http.StatusOK, envelope{Status: statusSuccess, Response: answer})
}

type chatRequest struct {
	SessionID string `json:"sessionId" validate:"omitempty,uuid"`
	Message   string `json:"message" validate:"required"`
}

type chatData struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Turns     int    `json:"turns"`
}

func (h *APIHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "Chat history is not configured", "")
		return
	}

	var req chatRequest
	if !h.decode(w, r, &req) {
		return
	}

	var conversation models.Conversation
	sessionID := req.SessionID

	if sessionID == "" {
		sessionID = uuid.NewString()
	} else {
		history, err := h.history.Load(r.Context(), sessionID)
		if errors.Is(err, redis.ErrUnknownSession) {
			writeError(w, http.StatusNotFound, "Unknown chat session", "")
			return
		}
		if err != nil {
			h.logger.Error("failed to load chat history", "session_id", sessionID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load chat history", err.Error())
			return
		}
		conversation = history
	}

	userMsg := models.Message{Role: models.RoleUser, Content: req.Message}
	conversation = append(conversation, userMsg)

	reply, err := h.analyzer.Chat(r.Context(), conversation)
	if err != nil {
		h.logger.Error("chat failed", "session_id", sessionID, "error", err)
		writeFailure(w, err, "Failed to get AI response")
		return
	}

	stored, err := h.history.Append(r.Context(), sessionID, userMsg, models.Message{Role: models.RoleAssistant, Content: reply})
	if err != nil {
		h.logger.Error("failed to save chat history", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save chat history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status: statusSuccess,
		Data:   chatData{SessionID: sessionID, Reply: reply, Turns: len(stored)},
	})
}

func (h *APIHandler) HandleCreateJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil || h.queue == nil || h.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "Background analysis is not configured", "")
		return
	}

	file, header, ok := h.readResume(w, r)
	if !ok {
		return
	}
	defer file.Close()

	language := r.FormValue("language")
	if language != "" && language != "english" && language != "french" {
		writeError(w, http.StatusBadRequest, "language must be one of english french", "")
		return
	}

	jobID, err := uuid.NewV7()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create job", err.Error())
		return
	}
	key := fmt.Sprintf("resumes/%s.pdf", jobID)

	if _, err := h.uploader.Upload(r.Context(), file, h.s3Bucket, key, "application/pdf"); err != nil {
		h.logger.Error("failed to store resume", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload file", err.Error())
		return
	}

	now := time.Now().UTC()
	job := &models.Job{
		ID:        jobID,
		Status:    models.StatusQueued,
		FileName:  header.Filename,
		ObjectKey: key,
		Model:     r.FormValue("model"),
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.jobs.Create(r.Context(), job); err != nil {
		h.logger.Error("failed to create job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while processing your resume", err.Error())
		return
	}

	if err := h.queue.Produce(r.Context(), jobID); err != nil {
		h.logger.Error("failed to enqueue job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while processing your resume", err.Error())
		return
	}

	h.logger.Info("job queued", "job_id", jobID, "object_key", key)
	writeJSON(w, http.StatusAccepted, envelope{
		Status:  statusSuccess,
		Message: "Resume queued for analysis",
		Data:    map[string]string{"jobId": jobID.String(), "status": job.Status.String()},
	})
}

type jobData struct {
	Job    *models.Job    `json:"job"`
	Report *models.Report `json:"report,omitempty"`
}

func (h *APIHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeError(w, http.StatusServiceUnavailable, "Background analysis is not configured", "")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("jobId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job id format", "")
		return
	}

	job, err := h.jobs.Get(r.Context(), jobID)
	if errors.Is(err, storage.ErrJobNotFound) {
		writeError(w, http.StatusNotFound, "Job not found", "")
		return
	}
	if err != nil {
		h.logger.Error("error retrieving job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve job", err.Error())
		return
	}

	data := jobData{Job: job}
	if job.Status == models.StatusCompleted && job.Analysis != nil {
		data.Report = analyzer.ParseReport(*job.Analysis)
	}

	writeJSON(w, http.StatusOK, envelope{Status: statusSuccess, Data: data})
}

func (h *APIHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found", "")
}

// readResume returns the multipart "resume" file after checking its size,
// extension and content type. On failure it has already written the response.
func (h *APIHandler) readResume(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10MB", "")
			return nil, nil, false
		}
		writeError(w, http.StatusBadRequest, "No file uploaded", "")
		return nil, nil, false
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded", "")
		return nil, nil, false
	}

	if header.Size > h.maxUpload {
		file.Close()
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10MB", "")
		return nil, nil, false
	}

	if !isPDF(file, header.Filename) {
		file.Close()
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed!", "")
		return nil, nil, false
	}

	return file, header, true
}

func isPDF(file multipart.File, filename string) bool {
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return false
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return false
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return false
	}

	return http.DetectContentType(head[:n]) == "application/pdf"
}

// resolveUpload maps a client supplied name onto a file in the upload dir.
func (h *APIHandler) resolveUpload(w http.ResponseWriter, filename string) (string, bool) {
	base := filepath.Base(filename)
	if base != filename || base == "." || base == ".." {
		writeError(w, http.StatusBadRequest, "Invalid filename", "")
		return "", false
	}

	path := filepath.Join(h.uploadDir, base)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "File not found", "")
		return "", false
	}

	return path, true
}
