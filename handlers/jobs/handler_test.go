package jobs

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
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

const employerID = "11111111-1111-1111-1111-111111111111"

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func asEmployer(c *gin.Context) {
	c.Set("user_id", employerID)
	c.Set("role", "EMPLOYER")
	c.Next()
}

func jobColumns() []string {
	return []string{"id", "employer_id", "title", "description", "company_name", "location", "salary_min", "salary_max", "status", "created_at"}
}

func TestCreateJobOffer_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "job_offers" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("44444444-4444-4444-4444-444444444444"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/jobs", asEmployer, CreateJobOffer)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Backend developer",
		"description": "We build job boards.",
		"location":    "Remote",
		"salaryMin":   45000,
		"salaryMax":   65000,
	})
	req, _ := http.NewRequest(http.MethodPost, "/jobs", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var offer map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &offer)
	assert.Equal(t, "DRAFT", offer["status"])
	assert.Equal(t, employerID, offer["employerId"])
}

func TestCreateJobOffer_MissingTitle(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/jobs", asEmployer, CreateJobOffer)

	body, _ := json.Marshal(map[string]interface{}{"location": "Remote"})
	req, _ := http.NewRequest(http.MethodPost, "/jobs", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateJobOffer_InvalidSalaryRange(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/jobs", asEmployer, CreateJobOffer)

	body, _ := json.Marshal(map[string]interface{}{
		"title":     "Backend developer",
		"salaryMin": 80000,
		"salaryMax": 50000,
	})
	req, _ := http.NewRequest(http.MethodPost, "/jobs", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetPublishedJobOffers_ReturnsPage(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "job_offers"`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(jobColumns()).
			AddRow("44444444-4444-4444-4444-444444444444", employerID, "Backend developer", "", "Acme", "Remote", 45000, 65000, "PUBLISHED", time.Now()))

	r := testutils.SetupTestRouter()
	r.GET("/jobs", GetPublishedJobOffers)

	req, _ := http.NewRequest(http.MethodGet, "/jobs?page=1&limit=20", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, float64(1), respBody["total"])
	assert.Len(t, respBody["jobs"], 1)
}

func TestGetJobOfferByID_DraftHiddenFromPublic(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(jobColumns()).
			AddRow("44444444-4444-4444-4444-444444444444", employerID, "Backend developer", "", "Acme", "Remote", 0, 0, "DRAFT", time.Now()))

	r := testutils.SetupTestRouter()
	r.GET("/jobs/:id", GetJobOfferByID)

	req, _ := http.NewRequest(http.MethodGet, "/jobs/44444444-4444-4444-4444-444444444444", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateJobOffer_NotOwnedAnswers404(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(jobColumns()))

	r := testutils.SetupTestRouter()
	r.PUT("/jobs/:id", asEmployer, UpdateJobOffer)

	body, _ := json.Marshal(map[string]interface{}{"title": "New title"})
	req, _ := http.NewRequest(http.MethodPut, "/jobs/44444444-4444-4444-4444-444444444444", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateJobOffer_InvalidStatusAnswers400(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(jobColumns()).
			AddRow("44444444-4444-4444-4444-444444444444", employerID, "Backend developer", "", "Acme", "Remote", 0, 0, "DRAFT", time.Now()))

	r := testutils.SetupTestRouter()
	r.PUT("/jobs/:id", asEmployer, UpdateJobOffer)

	body, _ := json.Marshal(map[string]interface{}{"status": "ARCHIVED"})
	req, _ := http.NewRequest(http.MethodPut, "/jobs/44444444-4444-4444-4444-444444444444", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateJobOffer_PublishDraft(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "job_offers"`).
		WillReturnRows(mock.NewRows(jobColumns()).
			AddRow("44444444-4444-4444-4444-444444444444", employerID, "Backend developer", "", "Acme", "Remote", 0, 0, "DRAFT", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "job_offers" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.PUT("/jobs/:id", asEmployer, UpdateJobOffer)

	body, _ := json.Marshal(map[string]interface{}{"status": "PUBLISHED"})
	req, _ := http.NewRequest(http.MethodPut, "/jobs/44444444-4444-4444-4444-444444444444", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
