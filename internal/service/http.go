package service

import (
	"crypto/ed25519"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"rolemenu-service/internal/interaction"
	"rolemenu-service/internal/metrics"
	"rolemenu-service/internal/repository"
)

const (
	interactionsPath = "/interactions"
	metricsPath      = "/metrics"

	// Interaction payloads carry the source message and resolved entities, well below this.
	maxBodyBytes = 1 << 20

	requestIdHeader = "X-Request-Id"
	requestIdKey    = "requestId"
)

type interactionHandler struct {
	logger    *zap.SugaredLogger
	publicKey ed25519.PublicKey
	svc       InteractionService
}

// NewRouter builds the HTTP surface: the signed interactions endpoint and the metrics endpoint.
func NewRouter(logger *zap.SugaredLogger, publicKey ed25519.PublicKey, svc InteractionService) *gin.Engine {
	h := &interactionHandler{
		logger:    logger,
		publicKey: publicKey,
		svc:       svc,
	}

	r := gin.New()
	r.Use(requestLogger(logger), gin.CustomRecovery(recoverer(logger)))

	r.POST(interactionsPath, h.handle)
	r.GET(metricsPath, gin.WrapH(metrics.NewHandler()))

	return r
}

func (h *interactionHandler) handle(c *gin.Context) {
	start := time.Now()
	logger := h.logger.With(requestIdKey, c.GetString(requestIdKey))

	status, event := h.serve(c, logger)

	statusLabel := strconv.Itoa(status)
	kind, operation := eventLabels(event)
	metrics.Interactions.WithLabelValues(kind, operation, statusLabel).Inc()
	metrics.InteractionDuration.WithLabelValues(statusLabel).Observe(time.Since(start).Seconds())
}

// serve writes the response and reports its status with the decoded event, which is nil when
// decoding did not get that far.
func (h *interactionHandler) serve(c *gin.Context, logger *zap.SugaredLogger) (int, interaction.Event) {
	// An oversized body fails verification and is rejected as unauthenticated.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	if len(h.publicKey) != ed25519.PublicKeySize || !discordgo.VerifyInteraction(c.Request, h.publicKey) {
		c.AbortWithStatus(http.StatusUnauthorized)
		return http.StatusUnauthorized, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Warnw("failed to read interaction body", "error", err)
		c.AbortWithStatus(http.StatusBadRequest)
		return http.StatusBadRequest, nil
	}

	event, err := interaction.Decode(body)
	if err != nil {
		return h.fail(c, logger, err), nil
	}

	resp, err := h.svc.Handle(c.Request.Context(), event)
	if err != nil {
		return h.fail(c, logger, err), event
	}

	c.JSON(http.StatusOK, resp)
	return http.StatusOK, event
}

func (h *interactionHandler) fail(c *gin.Context, logger *zap.SugaredLogger, err error) int {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Errorw("failed to handle interaction", "error", err)
	} else {
		logger.Debugw("rejected interaction", "status", status, "error", err)
	}

	c.AbortWithStatus(status)
	return status
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, interaction.ErrMalformedPayload),
		errors.Is(err, interaction.ErrMalformedInteraction),
		errors.Is(err, interaction.ErrUnknownInteraction):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrGroupNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func eventLabels(event interaction.Event) (kind string, operation string) {
	switch e := event.(type) {
	case interaction.Ping:
		return "ping", ""
	case interaction.ButtonPress:
		return "button", e.Action.Operation()
	case interaction.MenuSelect:
		return "select", e.Action.Operation()
	default:
		return "none", ""
	}
}

func requestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestId := c.GetHeader(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Set(requestIdKey, requestId)
		c.Header(requestIdHeader, requestId)

		c.Next()

		logger.Infow("handled request",
			requestIdKey, requestId,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func recoverer(logger *zap.SugaredLogger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Errorw("recovered from panic", requestIdKey, c.GetString(requestIdKey), "panic", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
