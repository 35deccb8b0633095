package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/service"
)

// AttachmentHandler handles per-task file upload, listing, and deletion.
type AttachmentHandler struct {
	taskService    *service.TaskService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewAttachmentHandler creates a new AttachmentHandler with the given
// dependencies. maxUploadBytes caps the multipart request size.
func NewAttachmentHandler(taskService *service.TaskService, maxUploadBytes int64, logger *slog.Logger) *AttachmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttachmentHandler{
		taskService:    taskService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "attachment_handler")),
	}
}

// Upload handles POST /api/tasks/{id}/upload. The multipart part must be
// named "file". The task is checked before any disk write, so a rejected
// upload leaves nothing behind.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No file received")
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			h.logger.Warn("failed to close uploaded file", "error", cerr)
		}
	}()

	attachment, err := h.taskService.UploadAttachment(r.Context(), taskID, header.Filename, file, identity)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to upload file")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UploadResponse{
		Message:    "File uploaded successfully",
		Attachment: newAttachmentResponse(*attachment, nil),
	})
}

// ListFiles handles GET /api/tasks/{id}/files.
func (h *AttachmentHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	attachments, users, err := h.taskService.ListAttachments(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch files")
		return
	}

	responses := make([]AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		responses = append(responses, newAttachmentResponse(a, users))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// DeleteFile handles DELETE /api/tasks/{id}/files/{filename}. The filename
// addresses the attachment by stored-path suffix.
func (h *AttachmentHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	filename := chi.URLParam(r, "filename")
	if filename == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Filename is required")
		return
	}

	if err := h.taskService.DeleteAttachment(r.Context(), taskID, filename); err != nil {
		HandleAPIError(w, r, err, "Failed to delete file")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "File deleted successfully"})
}
