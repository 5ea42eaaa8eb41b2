package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ordernest/internal/domain/entity"
	"ordernest/internal/domain/repository"
	"ordernest/internal/domain/service"
	"ordernest/pkg/errors"
	"ordernest/pkg/logger"
	"ordernest/pkg/response"
)

type FileHandler struct {
	fileService      service.FileUploadService
	fileMetadataRepo repository.FileMetadataRepository
	formRepo         repository.FormRepository
}

var fileHandler *FileHandler

func NewFileHandler(fileService service.FileUploadService, fileMetadataRepo repository.FileMetadataRepository, formRepo repository.FormRepository) *FileHandler {
	return &FileHandler{
		fileService:      fileService,
		fileMetadataRepo: fileMetadataRepo,
		formRepo:         formRepo,
	}
}

func SetupFileHandler(fileService service.FileUploadService, fileMetadataRepo repository.FileMetadataRepository, formRepo repository.FormRepository) {
	fileHandler = NewFileHandler(fileService, fileMetadataRepo, formRepo)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

// UploadFile stores one multipart file against a form, enforcing the form's
// upload policy. The returned URL is what the customer attaches to the
// submission; policy is re-checked at submission time as well.
func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		logger.Error("Error getting file from form: %v", err)
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	formID := c.FormValue("form_id")
	if formID == "" {
		return response.Error(c, errors.BadRequest("form_id is required", nil))
	}

	form, err := h.formRepo.GetByID(c.Request().Context(), formID)
	if err != nil {
		return response.Error(c, err)
	}

	if form.DeletedAt != nil || !form.Active {
		return response.Error(c, errors.NotFound("Form", nil))
	}

	if !form.AllowFileUpload {
		return response.Error(c, errors.Policy("This form does not accept file uploads", nil))
	}

	if form.MaxFileSize > 0 && file.Size > form.MaxFileSize*1024*1024 {
		logger.Warn("File too large: %d bytes (max: %dMB)", file.Size, form.MaxFileSize)
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds the allowed maximum (%dMB)", form.MaxFileSize), nil))
	}

	if len(form.AllowedFileTypes) > 0 && !extensionAllowed(form.AllowedFileTypes, file.Filename) {
		logger.Warn("File type not allowed for form %s: %s", formID, file.Filename)
		return response.Error(c, errors.BadRequest("File type is not allowed for this form", nil))
	}

	src, err := file.Open()
	if err != nil {
		logger.Error("Error opening file: %v", err)
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	fileType := file.Header.Get("Content-Type")
	folder := "forms/" + formID

	url, objectName, err := h.fileService.UploadFile(c.Request().Context(), src, fileType, folder)
	if err != nil {
		logger.Error("Error from storage client: %v", err)
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	uid := c.Get("uid").(string)
	now := time.Now()

	metadata := &entity.FileMetadata{
		ID:         uuid.New().String(),
		URL:        url,
		ObjectName: objectName,
		FormID:     formID,
		UploadedBy: uid,
		Filename:   file.Filename,
		FileType:   fileType,
		FileSize:   file.Size,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.fileMetadataRepo.Create(c.Request().Context(), metadata); err != nil {
		logger.Error("Failed to save file metadata: %v", err)
		return response.Error(c, errors.Internal("Failed to record file metadata", err))
	}

	return response.Created(c, map[string]interface{}{
		"id":       metadata.ID,
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	fileID := c.Param("id")
	if fileID == "" {
		return response.Error(c, errors.BadRequest("File ID is required", nil))
	}

	metadata, err := h.fileMetadataRepo.GetByID(c.Request().Context(), fileID)
	if err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	if metadata.UploadedBy != uid {
		return response.Error(c, errors.Forbidden("You may only delete your own files", nil))
	}

	if metadata.OrderID != "" {
		return response.Error(c, errors.Policy("Files attached to an order cannot be deleted", nil))
	}

	if err := h.fileService.DeleteFile(c.Request().Context(), metadata.ObjectName); err != nil {
		logger.Error("Failed to delete object %s: %v", metadata.ObjectName, err)
		return response.Error(c, errors.Internal("Failed to delete file", err))
	}

	if err := h.fileMetadataRepo.Delete(c.Request().Context(), fileID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"status": "deleted",
	})
}

func extensionAllowed(allowed []string, filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])

	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == ext {
			return true
		}
	}
	return false
}
