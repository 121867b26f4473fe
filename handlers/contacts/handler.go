package contacts

import (
	"net/http"
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/db"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"
	mailsmodels "github.com/LauraM111/jobtowners-backend-sub001/utils/mails-models"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new contact request
// @Description Submit a new contact request with the provided information
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body models.ContactCreate true "Contact information"
// @Success 201 {object} map[string]interface{} "message: Contact request submitted successfully, id: contact ID"
// @Failure 400 {object} map[string]interface{} "error: Invalid input"
// @Failure 500 {object} map[string]interface{} "error: Error message"
// @Router /contact [post]
func CreateContact(c *gin.Context) {
	var contactInput models.ContactCreate

	if err := c.ShouldBindJSON(&contactInput); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input: " + err.Error(),
		})
		return
	}

	if !utils.ValidateEmail(contactInput.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid email format",
		})
		return
	}

	contact := models.Contact{
		FirstName:   contactInput.FirstName,
		LastName:    contactInput.LastName,
		Email:       contactInput.Email,
		Subject:     contactInput.Subject,
		Message:     contactInput.Message,
		SubmittedAt: time.Now(),
	}

	result := db.DB.Create(&contact)
	if result.Error != nil {
		utils.LogError(result.Error, "Error when creating the contact in CreateContact")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": result.Error.Error(),
		})
		return
	}

	go mailsmodels.ContactConfirmation(mailsmodels.ContactEmailData{
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Message:   contact.Message,
	})

	utils.LogSuccess("Contact request created in CreateContact")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Contact request submitted successfully",
		"id":      contact.ID,
	})
}

// @Summary List contact requests (admin)
// @Description Retrieve all contact requests, newest first
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Contact
// @Failure 500 {object} map[string]interface{} "error: Error message"
// @Router /contact [get]
func GetAllContacts(c *gin.Context) {
	var contacts []models.Contact

	result := db.DB.Order("submitted_at DESC").Find(&contacts)
	if result.Error != nil {
		utils.LogError(result.Error, "Error when fetching contacts in GetAllContacts")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": result.Error.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// @Summary Get a contact request by ID (admin)
// @Description Retrieve a single contact request
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} models.Contact
// @Failure 404 {object} map[string]interface{} "error: Contact not found"
// @Router /contact/{id} [get]
func GetContactByID(c *gin.Context) {
	id := c.Param("id")

	var contact models.Contact
	result := db.DB.First(&contact, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Contact not found",
		})
		return
	}

	c.JSON(http.StatusOK, contact)
}
