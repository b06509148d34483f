package handlers

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/pricewise/corolla-pricer/app/dto"
	businessflow "github.com/pricewise/corolla-pricer/business_flow"
	"github.com/pricewise/corolla-pricer/models"
	"github.com/pricewise/corolla-pricer/utils"
)

// PredictionHandlerInterface defines the contract for prediction handlers
type PredictionHandlerInterface interface {
	Predict(c fiber.Ctx) error
	PredictBatch(c fiber.Ctx) error
}

// PredictionHandler handles inference HTTP requests
type PredictionHandler struct {
	flow      businessflow.PredictionFlow
	validator *validator.Validate
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(flow businessflow.PredictionFlow) *PredictionHandler {
	return &PredictionHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *PredictionHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// Predict handles a single-record price prediction
// @Summary Predict Price
// @Description Predict the price of one car from a fully specified feature record
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body dto.PredictRequest true "Feature record"
// @Success 200 {object} dto.PredictResponse "Predicted price"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Prediction failed"
// @Router /predict [post]
func (h *PredictionHandler) Predict(c fiber.Ctx) error {
	var req dto.PredictRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Schema-level failures are rejected before the pipeline is invoked
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	record := req.ToRecord()
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	ctx, cancel := h.createRequestContext(c, "/predict")
	defer cancel()

	price, err := h.flow.PredictSingle(ctx, &record, metadata)
	if err != nil {
		log.Println("Prediction failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Prediction failed", "PREDICTION_FAILED", err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(dto.PredictResponse{PredictedPrice: price})
}

// PredictBatch handles an ordered batch of price predictions
// @Summary Predict Prices for a Batch
// @Description Predict prices for an ordered list of feature records; the response array is aligned with the input
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body []dto.PredictRequest true "Feature records"
// @Success 200 {object} dto.BatchPredictResponse "Predicted prices in input order"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Prediction failed"
// @Router /predict_batch [post]
func (h *PredictionHandler) PredictBatch(c fiber.Ctx) error {
	var reqs []dto.PredictRequest
	if err := c.Bind().JSON(&reqs); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if len(reqs) == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Batch contains no records", "EMPTY_BATCH", nil)
	}

	// Validate every record up front so a malformed row is reported with its
	// index instead of surfacing as a pipeline failure.
	records := make([]models.FeatureRecord, 0, len(reqs))
	for i := range reqs {
		if err := h.validator.Struct(&reqs[i]); err != nil {
			var validationErrors []string
			for _, err := range err.(validator.ValidationErrors) {
				validationErrors = append(validationErrors, getValidationErrorMessage(err))
			}
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", fiber.Map{
				"record": i,
				"errors": validationErrors,
			})
		}
		records = append(records, reqs[i].ToRecord())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	ctx, cancel := h.createRequestContext(c, "/predict_batch")
	defer cancel()

	prices, err := h.flow.PredictBatch(ctx, records, metadata)
	if err != nil {
		if businessflow.IsEmptyBatch(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Batch contains no records", "EMPTY_BATCH", nil)
		}
		log.Println("Batch prediction failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Batch prediction failed", "BATCH_PREDICTION_FAILED", err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(dto.BatchPredictResponse{PredictedPrices: prices})
}

func (h *PredictionHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), utils.RequestTimeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx, cancel
}
