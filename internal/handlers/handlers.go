// Package handlers exposes the training service over HTTP.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"titanic-service/internal/models"
	"titanic-service/internal/training"
)

// Trainer fits a model by key and reports its test metrics.
type Trainer interface {
	Train(key string) (training.Metrics, error)
}

// API serves training requests and the loaded dataset.
type API struct {
	trainer Trainer
	dataset models.Dataset
}

// NewAPI creates a new API over the given trainer and dataset snapshot.
func NewAPI(trainer Trainer, dataset models.Dataset) *API {
	return &API{trainer: trainer, dataset: dataset}
}

// NewRouter builds a gin engine with request ids and every route registered.
func NewRouter(api *API) *gin.Engine {
	router := gin.Default()
	router.Use(RequestID())
	api.RegisterRoutes(router)
	return router
}

// RegisterRoutes registers the service routes with the given Gin router.
func (a *API) RegisterRoutes(router *gin.Engine) {
	router.POST("/train", a.TrainModel)
	router.GET("/get/all", a.GetAll)
	router.GET("/healthz", a.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// TrainModel godoc
// @Summary Train a classifier
// @Description Fit the selected classifier on the fixed training partition and score it on the test partition.
// @Tags training
// @Accept  json
// @Produce  json
// @Param   request  body   models.TrainRequest   true  "Model to train: log_reg, svm or knn"
// @Success 200 {object} models.TrainResponse "Weighted precision, recall and F1"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR or INVALID_MODEL_KIND)"
// @Failure 500 {object} models.APIError "Training failed (TRAINING_FAILED)"
// @Router /train [post]
func (a *API) TrainModel(c *gin.Context) {
	var req models.TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	log.Printf("Received training request for model %q (request_id=%s)", req.Model, c.GetString(RequestIDKey))
	metrics, err := a.trainer.Train(req.Model)
	if err != nil {
		if errors.Is(err, training.ErrInvalidModelKind) {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidModelKind, "Unsupported model kind.",
				gin.H{"model": req.Model, "allowed": training.Kinds})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeTrainingFailed, "Failed to train model.", gin.H{"reason": err.Error()})
		return
	}

	RespondWithSuccess(c, http.StatusOK, models.TrainResponse{
		Precision: metrics.Precision,
		Recall:    metrics.Recall,
		F1:        metrics.F1,
	})
}

// GetAll godoc
// @Summary Get the passenger dataset
// @Description Return every stored passenger as a column name to values mapping. Absent values are null.
// @Tags dataset
// @Produce  json
// @Success 200 {object} map[string][]interface{} "Columnar dataset"
// @Failure 503 {object} models.APIError "Dataset not loaded (SERVICE_UNAVAILABLE)"
// @Router /get/all [get]
func (a *API) GetAll(c *gin.Context) {
	if a.dataset == nil {
		RespondWithError(c, http.StatusServiceUnavailable, models.ErrorCodeServiceUnavailable, "Dataset is not loaded.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, a.dataset)
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]interface{} "status and row count"
// @Router /healthz [get]
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": a.dataset.Len()})
}
