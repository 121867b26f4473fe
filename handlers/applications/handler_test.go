package applications

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const (
	candidateID = "22222222-2222-2222-2222-222222222222"
	employerID  = "11111111-1111-1111-1111-111111111111"
	offerID     = "44444444-4444-4444-4444-444444444444"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func asCandidate(c *gin.Context) {
	c.Set("user_id", candidateID)
	c.Set("role", "CANDIDATE")
	c.Next()
}

func asEmployer(c *gin.Context) {
	c.Set("user_id", employerID)
	c.Set("role", "EMPLOYER")
	c.Next()
}

func offerColumns() []string {
	return []string{"id", "employer_id", "title", "company_name", "status", "created_at"}
}

func applicationColumns() []string {
	return []string{"id", "job_offer_id", "candidate_id", "cover_letter", "status", "created_at"}
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCreateApplication_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(offerColumns()).
			AddRow(offerID, employerID, "Backend developer", "Acme", "PUBLISHED", time.Now()))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "job_applications"`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "job_applications" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("55555555-5555-5555-5555-555555555555"))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "first_name"}).
			AddRow(candidateID, "candidate@example.com", "Jo"))

	r := testutils.SetupTestRouter()
	r.POST("/jobs/:id/applications", asCandidate, CreateApplication)

	body, contentType := multipartBody(t, map[string]string{"coverLetter": "I would love to join."})
	req, _ := http.NewRequest(http.MethodPost, "/jobs/"+offerID+"/applications", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var application map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &application)
	assert.Equal(t, "PENDING", application["status"])
	assert.Equal(t, candidateID, application["candidateId"])
}

func TestCreateApplication_OfferNotPublished(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(offerColumns()))

	r := testutils.SetupTestRouter()
	r.POST("/jobs/:id/applications", asCandidate, CreateApplication)

	body, contentType := multipartBody(t, map[string]string{})
	req, _ := http.NewRequest(http.MethodPost, "/jobs/"+offerID+"/applications", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateApplication_AlreadyApplied(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(offerColumns()).
			AddRow(offerID, employerID, "Backend developer", "Acme", "PUBLISHED", time.Now()))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "job_applications"`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))

	r := testutils.SetupTestRouter()
	r.POST("/jobs/:id/applications", asCandidate, CreateApplication)

	body, contentType := multipartBody(t, map[string]string{})
	req, _ := http.NewRequest(http.MethodPost, "/jobs/"+offerID+"/applications", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetApplicationsForOffer_NotOwnedAnswers404(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(offerColumns()))

	r := testutils.SetupTestRouter()
	r.GET("/jobs/:id/applications", asEmployer, GetApplicationsForOffer)

	req, _ := http.NewRequest(http.MethodGet, "/jobs/"+offerID+"/applications", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetMyApplications_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_applications"`).
		WillReturnRows(mock.NewRows(applicationColumns()).
			AddRow("55555555-5555-5555-5555-555555555555", offerID, candidateID, "", "PENDING", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(offerColumns()).
			AddRow(offerID, employerID, "Backend developer", "Acme", "PUBLISHED", time.Now()))

	r := testutils.SetupTestRouter()
	r.GET("/applications", asCandidate, GetMyApplications)

	req, _ := http.NewRequest(http.MethodGet, "/applications", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var applications []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &applications)
	assert.Len(t, applications, 1)
}

func TestUpdateApplicationStatus_InvalidStatus(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.PATCH("/applications/:id", asEmployer, UpdateApplicationStatus)

	body, _ := json.Marshal(map[string]string{"status": "PENDING"})
	req, _ := http.NewRequest(http.MethodPatch, "/applications/55555555-5555-5555-5555-555555555555", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateApplicationStatus_WrongEmployerAnswers404(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_applications"`).
		WillReturnRows(mock.NewRows(applicationColumns()).
			AddRow("55555555-5555-5555-5555-555555555555", offerID, candidateID, "", "PENDING", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(offerColumns()).
			AddRow(offerID, "99999999-9999-9999-9999-999999999999", "Backend developer", "Acme", "PUBLISHED", time.Now()))

	r := testutils.SetupTestRouter()
	r.PATCH("/applications/:id", asEmployer, UpdateApplicationStatus)

	body, _ := json.Marshal(map[string]string{"status": "ACCEPTED"})
	req, _ := http.NewRequest(http.MethodPatch, "/applications/55555555-5555-5555-5555-555555555555", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatus_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_applications"`).
		WillReturnRows(mock.NewRows(applicationColumns()).
			AddRow("55555555-5555-5555-5555-555555555555", offerID, candidateID, "", "PENDING", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(offerColumns()).
			AddRow(offerID, employerID, "Backend developer", "Acme", "PUBLISHED", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "job_applications" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.PATCH("/applications/:id", asEmployer, UpdateApplicationStatus)

	body, _ := json.Marshal(map[string]string{"status": "ACCEPTED"})
	req, _ := http.NewRequest(http.MethodPatch, "/applications/55555555-5555-5555-5555-555555555555", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	var application map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &application)
	assert.Equal(t, "ACCEPTED", application["status"])
}
