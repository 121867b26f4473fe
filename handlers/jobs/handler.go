package jobs

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/LauraM111/jobtowners-backend-sub001/db"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new job offer
// @Description Create a job offer as the authenticated employer. Offers start as DRAFT.
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body models.JobOfferCreate true "Job offer information"
// @Security BearerAuth
// @Success 201 {object} models.JobOffer
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /jobs [post]
func CreateJobOffer(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.JobOfferCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.SalaryMin < 0 || input.SalaryMax < 0 || (input.SalaryMax > 0 && input.SalaryMin > input.SalaryMax) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid salary range"})
		return
	}

	offer := models.JobOffer{
		EmployerID:  userID.(string),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		CompanyName: input.CompanyName,
		Location:    input.Location,
		SalaryMin:   input.SalaryMin,
		SalaryMax:   input.SalaryMax,
		Status:      models.JobOfferDraft,
	}

	if err := db.DB.Create(&offer).Error; err != nil {
		utils.LogError(err, "Error when creating the job offer in CreateJobOffer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating job offer: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Job offer created in CreateJobOffer")
	c.JSON(http.StatusCreated, offer)
}

// @Summary List published job offers
// @Description Retrieve published job offers with optional filtering and pagination
// @Tags jobs
// @Produce json
// @Param location query string false "Filter by location (partial match)"
// @Param q query string false "Search in title"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {array} models.JobOffer
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /jobs [get]
func GetPublishedJobOffers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := db.DB.Model(&models.JobOffer{}).Where("status = ?", models.JobOfferPublished)

	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("title ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError(err, "Error when counting job offers in GetPublishedJobOffers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var offers []models.JobOffer
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&offers).Error; err != nil {
		utils.LogError(err, "Error when fetching job offers in GetPublishedJobOffers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  offers,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// @Summary Get a job offer by ID
// @Description Retrieve a single job offer. Draft offers are only visible to their employer.
// @Tags jobs
// @Produce json
// @Param id path string true "Job offer ID"
// @Success 200 {object} models.JobOffer
// @Failure 404 {object} map[string]string "error: Job offer not found"
// @Router /jobs/{id} [get]
func GetJobOfferByID(c *gin.Context) {
	id := c.Param("id")

	var offer models.JobOffer
	if err := db.DB.First(&offer, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job offer not found"})
		return
	}

	if offer.Status != models.JobOfferPublished {
		userID, exists := c.Get("user_id")
		if !exists || userID.(string) != offer.EmployerID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job offer not found"})
			return
		}
	}

	c.JSON(http.StatusOK, offer)
}

// @Summary List my job offers
// @Description Retrieve all job offers created by the authenticated employer
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.JobOffer
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /jobs/mine [get]
func GetMyJobOffers(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var offers []models.JobOffer
	if err := db.DB.Where("employer_id = ?", userID.(string)).Order("created_at DESC").Find(&offers).Error; err != nil {
		utils.LogError(err, "Error when fetching job offers in GetMyJobOffers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, offers)
}

// @Summary Update a job offer
// @Description Update fields of a job offer owned by the authenticated employer
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job offer ID"
// @Param job body models.JobOfferUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.JobOffer
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Job offer not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /jobs/{id} [put]
func UpdateJobOffer(c *gin.Context) {
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

	var input models.JobOfferUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.CompanyName != nil {
		updates["company_name"] = *input.CompanyName
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.SalaryMin != nil {
		updates["salary_min"] = *input.SalaryMin
	}
	if input.SalaryMax != nil {
		updates["salary_max"] = *input.SalaryMax
	}
	if input.Status != nil {
		switch *input.Status {
		case models.JobOfferDraft, models.JobOfferPublished, models.JobOfferClosed:
			updates["status"] = *input.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, offer)
		return
	}

	if err := db.DB.Model(&offer).Updates(updates).Error; err != nil {
		utils.LogError(err, "Error when updating the job offer in UpdateJobOffer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Job offer updated in UpdateJobOffer")
	c.JSON(http.StatusOK, offer)
}

// @Summary Delete a job offer
// @Description Delete a job offer owned by the authenticated employer
// @Tags jobs
// @Produce json
// @Param id path string true "Job offer ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Job offer deleted successfully"
// @Failure 404 {object} map[string]string "error: Job offer not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /jobs/{id} [delete]
func DeleteJobOffer(c *gin.Context) {
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

	if err := db.DB.Delete(&offer).Error; err != nil {
		utils.LogError(err, "Error when deleting the job offer in DeleteJobOffer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Job offer deleted in DeleteJobOffer")
	c.JSON(http.StatusOK, gin.H{"message": "Job offer deleted successfully"})
}
