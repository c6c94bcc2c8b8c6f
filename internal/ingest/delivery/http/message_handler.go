package http

import (
	"net/http"

	"golang-ticker-relay/internal/ingest/dto"
	"golang-ticker-relay/internal/ingest/service"
	"golang-ticker-relay/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MessageHandler handles HTTP requests for message ingestion.
type MessageHandler struct {
	ingestService service.IngestService
	logger        *logger.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(ingestService service.IngestService, logger *logger.Logger) *MessageHandler {
	return &MessageHandler{ingestService: ingestService, logger: logger}
}

// RegisterRoutes registers the message routes to the Echo group.
func (h *MessageHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.IngestMessage)
}

// IngestMessage godoc
// @Summary Ingest a chat message
// @Description Extracts tickers, matches routing rules and schedules downstream tasks. Responds as soon as the task batch is scheduled.
// @Tags messages
// @Accept  json
// @Produce  json
// @Param   message  body    dto.IngestMessageRequest   true    "Message to ingest"
// @Success 200 {object} dto.IngestMessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) IngestMessage(c echo.Context) error {
	var req dto.IngestMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp := h.ingestService.HandleMessage(c.Request().Context(), req.ToEntity())
	return c.JSON(http.StatusOK, resp)
}
