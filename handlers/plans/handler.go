package plans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/LauraM111/jobtowners-backend-sub001/billing"
	"github.com/LauraM111/jobtowners-backend-sub001/catalog"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	catalog *catalog.Catalog
}

func NewHandler(c *catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

// @Summary Create a subscription plan
// @Description Create a subscription plan and mirror it into the billing provider
// @Tags subscription-plans
// @Accept json
// @Produce json
// @Param plan body models.PlanCreate true "Plan information"
// @Security BearerAuth
// @Success 201 {object} models.SubscriptionPlan
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 502 {object} map[string]string "error: Billing provider error"
// @Router /subscription-plans [post]
func (h *Handler) CreatePlan(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var input models.PlanCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	plan, err := h.catalog.Create(input)
	if err != nil {
		respondCatalogError(c, userID, err, "CreatePlan")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription plan created")
	c.JSON(http.StatusCreated, plan)
}

// @Summary List subscription plans
// @Description List subscription plans, optionally filtered by status
// @Tags subscription-plans
// @Produce json
// @Param status query string false "Plan status filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.SubscriptionPlan
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /subscription-plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	plans, err := h.catalog.List(c.Query("status"), limit, offset)
	if err != nil {
		utils.LogError(err, "Error listing subscription plans")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// @Summary Get a subscription plan
// @Description Retrieve a single subscription plan by ID
// @Tags subscription-plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} models.SubscriptionPlan
// @Failure 404 {object} map[string]string "error: Plan not found"
// @Router /subscription-plans/{id} [get]
func (h *Handler) GetPlan(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	plan, err := h.catalog.Get(id)
	if err != nil {
		respondCatalogError(c, nil, err, "GetPlan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// @Summary Update a subscription plan
// @Description Patch a plan; pricing changes rotate the provider price reference
// @Tags subscription-plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param plan body models.PlanUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.SubscriptionPlan
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Plan not found"
// @Failure 502 {object} map[string]string "error: Billing provider error"
// @Router /subscription-plans/{id} [patch]
func (h *Handler) UpdatePlan(c *gin.Context) {
	userID, _ := c.Get("user_id")

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var patch models.PlanUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	plan, err := h.catalog.Update(id, patch)
	if err != nil {
		respondCatalogError(c, userID, err, "UpdatePlan")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription plan updated")
	c.JSON(http.StatusOK, plan)
}

// @Summary Archive a subscription plan
// @Description Archive a plan and deactivate the provider product; idempotent
// @Tags subscription-plans
// @Produce json
// @Param id path string true "Plan ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Plan archived"
// @Failure 404 {object} map[string]string "error: Plan not found"
// @Failure 502 {object} map[string]string "error: Billing provider error"
// @Router /subscription-plans/{id} [delete]
func (h *Handler) ArchivePlan(c *gin.Context) {
	userID, _ := c.Get("user_id")

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	if err := h.catalog.Archive(id); err != nil {
		respondCatalogError(c, userID, err, "ArchivePlan")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription plan archived")
	c.JSON(http.StatusOK, gin.H{"message": "Plan archived"})
}

func respondCatalogError(c *gin.Context, userID interface{}, err error, op string) {
	var validationErr *catalog.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
	case billing.IsGatewayError(err):
		utils.LogErrorWithUser(userID, err, "Billing provider error in "+op)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		utils.LogErrorWithUser(userID, err, "Unexpected error in "+op)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
