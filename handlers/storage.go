package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/services/storage"
	"voyago/utils"
)

// StorageHandler covers media uploads: profile pictures, vehicle photos
// and driver verification documents.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedBuckets defines permitted buckets for general uploads.
var allowedBuckets = map[string]bool{
	"profiles": true,
	"vehicles": true,
}

// allowedDocumentBuckets defines permitted buckets for driver documents.
var allowedDocumentBuckets = map[string]bool{
	"licenses": true,
	"nics":     true,
}

func (h *StorageHandler) saveTempUpload(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"file": "file not provided"}))
		return "", false
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.RespondError(c, err)
		return "", false
	}
	return tempFilePath, true
}

// UploadFile handles general image uploads and returns a public URL.
func (h *StorageHandler) UploadFile(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"bucket": "allowed buckets are 'profiles' and 'vehicles'"}))
		return
	}

	tempFilePath, ok := h.saveTempUpload(c)
	if !ok {
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c.Request.Context(), tempFilePath, "images/"+bucket)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	downloadURL, err := h.StorageSvc.GetDownloadURL(c.Request.Context(), "image", publicID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"publicId": publicID, "downloadURL": downloadURL}, "file uploaded")
}

// UploadDocument handles driver verification documents. The file goes to a
// non-public folder; only the public ID comes back.
func (h *StorageHandler) UploadDocument(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedDocumentBuckets[bucket] {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"bucket": "allowed buckets are 'licenses' and 'nics'"}))
		return
	}

	tempFilePath, ok := h.saveTempUpload(c)
	if !ok {
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c.Request.Context(), tempFilePath, "documents/"+bucket)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"publicId": publicID}, "document uploaded")
}

// GetDocumentURL generates a signed, short-lived URL for a driver
// document. Admin-only; guarded in the routes.
func (h *StorageHandler) GetDocumentURL(c *gin.Context) {
	bucket := c.Param("bucket")
	filename := c.Param("filename")
	if !allowedDocumentBuckets[bucket] {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"bucket": "allowed buckets are 'licenses' and 'nics'"}))
		return
	}

	expiry := 15 * time.Minute
	if expStr := c.Query("expires"); expStr != "" {
		if exp, err := time.ParseDuration(expStr); err == nil {
			expiry = exp
		}
	}

	secureURL, err := h.StorageSvc.GetSecureDownloadURL(c.Request.Context(), "image", "documents/"+bucket+"/"+filename, expiry)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"downloadURL": secureURL}, "")
}
