package applications

import (
	"net/http"

	"github.com/LauraM111/jobtowners-backend-sub001/db"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"
	mailsmodels "github.com/LauraM111/jobtowners-backend-sub001/utils/mails-models"

	"github.com/gin-gonic/gin"
)

// @Summary Apply to a job offer
// @Description Apply to a published job offer as the authenticated candidate, with an optional resume upload
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Job offer ID"
// @Param coverLetter formData string false "Cover letter"
// @Param resume formData file false "Resume file (pdf, doc, docx, odt, rtf, txt)"
// @Security BearerAuth
// @Success 201 {object} models.JobApplication
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Job offer not found"
// @Failure 409 {object} map[string]string "error: Already applied"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /jobs/{id}/applications [post]
func CreateApplication(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var offer models.JobOffer
	if err := db.DB.First(&offer, "id = ? AND status = ?", c.Param("id"), models.JobOfferPublished).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job offer not found"})
		return
	}

	var count int64
	db.DB.Model(&models.JobApplication{}).
		Where("job_offer_id = ? AND candidate_id = ?", offer.ID, userID.(string)).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already applied to this job offer"})
		return
	}

	application := models.JobApplication{
		JobOfferID:  offer.ID,
		CandidateID: userID.(string),
		CoverLetter: c.Request.FormValue("coverLetter"),
		Status:      models.ApplicationPending,
	}

	file, err := c.FormFile("resume")
	if err == nil && file != nil {
		resumeURL, err := utils.UploadResume(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error uploading resume: " + err.Error()})
			return
		}
		application.ResumeURL = resumeURL
	}

	if err := db.DB.Create(&application).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error when creating the application in CreateApplication")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating application: " + err.Error()})
		return
	}

	var candidate models.User
	if err := db.DB.First(&candidate, "id = ?", userID.(string)).Error; err == nil {
		go mailsmodels.ApplicationReceived(mailsmodels.ApplicationReceivedData{
			FirstName: candidate.FirstName,
			Email:     candidate.Email,
			JobTitle:  offer.Title,
			Company:   offer.CompanyName,
		})
	}

	utils.LogSuccessWithUser(userID, "Application created in CreateApplication")
	c.JSON(http.StatusCreated, application)
}

// @Summary List my applications
// @Description Retrieve all applications submitted by the authenticated candidate
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.JobApplication
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /applications [get]
func GetMyApplications(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var applications []models.JobApplication
	if err := db.DB.Preload("JobOffer").
		Where("candidate_id = ?", userID.(string)).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		utils.LogError(err, "Error when fetching applications in GetMyApplications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// @Summary List applications for a job offer
// @Description Retrieve all applications for a job offer owned by the authenticated employer
// @Tags applications
// @Produce json
// @Param id path string true "Job offer ID"
// @Security BearerAuth
// @Success 200 {array} models.JobApplication
// @Failure 404 {object} map[string]string "error: Job offer not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /jobs/{id}/applications [get]
func GetApplicationsForOffer(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var offer models.JobOffer
	if err := db.DB.First(&offer, "id = ? AND employer_id = ?", c.Param("id"), userID.(string)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job offer not found"})
		return
	}

	var applications []models.JobApplication
	if err := db.DB.Where("job_offer_id = ?", offer.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		utils.LogError(err, "Error when fetching applications in GetApplicationsForOffer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// @Summary Update an application status
// @Description Transition an application's status as the employer owning the offer
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param application body models.JobApplicationUpdate true "New status"
// @Security BearerAuth
// @Success 200 {object} models.JobApplication
// @Failure 400 {object} map[string]string "error: Invalid status"
// @Failure 404 {object} map[string]string "error: Application not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /applications/{id} [patch]
func UpdateApplicationStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.JobApplicationUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	switch input.Status {
	case models.ApplicationReviewed, models.ApplicationAccepted, models.ApplicationRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var application models.JobApplication
	if err := db.DB.Preload("JobOffer").First(&application, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if application.JobOffer.EmployerID != userID.(string) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if err := db.DB.Model(&models.JobApplication{}).
		Where("id = ?", application.ID).
		Update("status", input.Status).Error; err != nil {
		utils.LogError(err, "Error when updating the application in UpdateApplicationStatus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	application.Status = input.Status

	utils.LogSuccessWithUser(userID, "Application status updated in UpdateApplicationStatus")
	c.JSON(http.StatusOK, application)
}
