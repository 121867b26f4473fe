package messages

import (
	"net/http"
	"strings"

	"github.com/LauraM111/jobtowners-backend-sub001/db"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Send a message
// @Description Send a message on an application thread. Only the candidate and the employer of the offer may post.
// @Tags messages
// @Accept json
// @Produce json
// @Param message body models.MessageCreate true "Message content"
// @Security BearerAuth
// @Success 201 {object} models.Message
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Not a participant"
// @Failure 404 {object} map[string]string "error: Application not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /messages [post]
func SendMessage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.MessageCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content cannot be empty"})
		return
	}

	var application models.JobApplication
	if err := db.DB.Preload("JobOffer").First(&application, "id = ?", input.ApplicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	sender := userID.(string)
	var receiver string
	switch sender {
	case application.CandidateID:
		receiver = application.JobOffer.EmployerID
	case application.JobOffer.EmployerID:
		receiver = application.CandidateID
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this conversation"})
		return
	}

	message := models.Message{
		ApplicationID: application.ID,
		SenderID:      sender,
		ReceiverID:    receiver,
		Content:       input.Content,
		Status:        "UNREAD",
	}

	if err := db.DB.Create(&message).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error when creating the message in SendMessage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending message: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Message sent in SendMessage")
	c.JSON(http.StatusCreated, message)
}

// @Summary Get conversation for an application
// @Description Retrieve all messages of an application thread, oldest first. Marks received messages as read.
// @Tags messages
// @Produce json
// @Param id path string true "Application ID"
// @Security BearerAuth
// @Success 200 {array} models.Message
// @Failure 403 {object} map[string]string "error: Not a participant"
// @Failure 404 {object} map[string]string "error: Application not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /applications/{id}/messages [get]
func GetConversation(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var application models.JobApplication
	if err := db.DB.Preload("JobOffer").First(&application, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	uid := userID.(string)
	if uid != application.CandidateID && uid != application.JobOffer.EmployerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this conversation"})
		return
	}

	var msgList []models.Message
	if err := db.DB.Where("application_id = ?", application.ID).
		Order("created_at ASC").
		Find(&msgList).Error; err != nil {
		utils.LogError(err, "Error when fetching messages in GetConversation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Model(&models.Message{}).
		Where("application_id = ? AND receiver_id = ? AND status = ?", application.ID, uid, "UNREAD").
		Update("status", "READ").Error; err != nil {
		utils.LogError(err, "Error when marking messages as read in GetConversation")
	}

	c.JSON(http.StatusOK, msgList)
}

// @Summary Count unread messages
// @Description Count unread messages addressed to the authenticated user
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64 "unread: count"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /messages/unread [get]
func GetUnreadCount(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var count int64
	if err := db.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND status = ?", userID.(string), "UNREAD").
		Count(&count).Error; err != nil {
		utils.LogError(err, "Error when counting unread messages in GetUnreadCount")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}
