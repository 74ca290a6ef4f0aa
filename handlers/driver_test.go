package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/models"
	"voyago/services/user"
)

type fakeDriverService struct {
	submittedTempID string
	submittedDocs   models.DriverDocuments
}

func (f *fakeDriverService) InitiateRegistration(ctx context.Context, basic models.DriverBasicData) (string, error) {
	return "temp-1", nil
}

func (f *fakeDriverService) VerifyRegistrationOTP(ctx context.Context, tempID, providedOTP string) (*models.DriverRegistrationSession, error) {
	return nil, nil
}

func (f *fakeDriverService) SubmitDocuments(ctx context.Context, tempID string, docs models.DriverDocuments) (*models.DriverRegistrationSession, error) {
	f.submittedTempID = tempID
	f.submittedDocs = docs
	return &models.DriverRegistrationSession{TempID: tempID}, nil
}

func (f *fakeDriverService) FinalizeRegistration(ctx context.Context, tempID string, vehicle models.Vehicle) (*user.AuthResponse, error) {
	return nil, nil
}

func (f *fakeDriverService) CancelRegistration(ctx context.Context, tempID string) error {
	return nil
}

func (f *fakeDriverService) GetDriverVehicles(driverID string) ([]models.Vehicle, error) {
	return nil, nil
}

func (f *fakeDriverService) AddVehicle(ctx context.Context, driverID string, vehicle models.Vehicle) (*models.Vehicle, error) {
	return nil, nil
}

func (f *fakeDriverService) SetVehicleActive(ctx context.Context, driverID, vehicleID string, active bool) error {
	return nil
}

type fakeStorageService struct {
	uploads []string // destFolder per call
}

func (f *fakeStorageService) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	f.uploads = append(f.uploads, destFolder)
	return destFolder + "/uploaded", nil
}

func (f *fakeStorageService) DeleteFile(ctx context.Context, publicID string) error { return nil }

func (f *fakeStorageService) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	return "https://example.test/" + publicID, nil
}

func (f *fakeStorageService) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "https://example.test/signed/" + publicID, nil
}

func documentsRequest(t *testing.T, fields map[string][]byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, content := range fields {
		part, err := writer.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/drivers/register/temp-1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// Document uploads happen before the driver has an account, so the route
// must work with nothing but the registration session ID.
func TestSubmitDocumentsUploadsMultipartFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	drivers := &fakeDriverService{}
	store := &fakeStorageService{}
	handler := NewDriverHandler(drivers, store)

	router := gin.New()
	router.POST("/api/drivers/register/:tempID/documents", handler.SubmitDocuments)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, documentsRequest(t, map[string][]byte{
		"license_image": []byte("license bytes"),
		"nic_image":     []byte("nic bytes"),
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"documents/licenses", "documents/nics"}, store.uploads)
	assert.Equal(t, "temp-1", drivers.submittedTempID)
	assert.Equal(t, "documents/licenses/uploaded", drivers.submittedDocs.LicenseImage)
	assert.Equal(t, "documents/nics/uploaded", drivers.submittedDocs.NICImage)
}

func TestSubmitDocumentsRequiresBothFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	drivers := &fakeDriverService{}
	store := &fakeStorageService{}
	handler := NewDriverHandler(drivers, store)

	router := gin.New()
	router.POST("/api/drivers/register/:tempID/documents", handler.SubmitDocuments)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, documentsRequest(t, map[string][]byte{
		"license_image": []byte("license bytes"),
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "nic_image")
	assert.Empty(t, drivers.submittedTempID, "nothing is submitted when a file is missing")
}
