package routes

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"tourlink-server/services"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedUploadTypes = map[string]map[string]bool{
	"avatar":      {".jpg": true, ".jpeg": true, ".png": true, ".webp": true},
	"certificate": {".jpg": true, ".jpeg": true, ".png": true, ".pdf": true},
	"cv":          {".pdf": true},
	"document":    {".jpg": true, ".jpeg": true, ".png": true, ".pdf": true},
	"post":        {".jpg": true, ".jpeg": true, ".png": true, ".webp": true},
}

// RegisterUploadRoutes registers file upload routes
func RegisterUploadRoutes(protected *gin.RouterGroup) {
	protected.POST("/uploads/:fileType", uploadFile)
}

// validateUpload checks the file size and extension against the declared
// file type before anything is sent to storage
func validateUpload(header *multipart.FileHeader, fileType string) (string, error) {
	allowed, ok := allowedUploadTypes[fileType]
	if !ok {
		return "", fmt.Errorf("unknown file type %q", fileType)
	}

	if header.Size > maxUploadSize {
		return "", fmt.Errorf("file exceeds the %dMB limit", maxUploadSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowed[ext] {
		return "", fmt.Errorf("file type %s is not allowed for %s uploads", ext, fileType)
	}

	return strings.TrimPrefix(ext, "."), nil
}

// uploadFile stores a multipart file and returns its public URL. The object
// key is derived server-side so callers cannot overwrite each other's files.
func uploadFile(c *gin.Context) {
	fileType := c.Param("fileType")

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "VALIDATION_ERROR",
			"error": "No file provided",
		})
		return
	}

	ext, err := validateUpload(header, fileType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "VALIDATION_ERROR",
			"error": err.Error(),
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	storage, err := services.NewStorageService()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage is not configured"})
		return
	}

	key := services.BuildObjectKey(c.GetUint("user_id"), fileType, ext)
	url, err := storage.Upload(c.Request.Context(), file, key)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"code":  "EXTERNAL_SERVICE_ERROR",
			"error": "Failed to upload file",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully",
		"key":     key,
		"url":     url,
	})
}
