package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"cyberx/logging"
	"cyberx/scanner"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server bundles dependencies for HTTP handlers.
type Server struct {
	store    TaskStore
	scanner  *scanner.Scanner
	maxPorts int
	deadline time.Duration
}

// NewServer creates a new API server instance. maxPorts bounds the number of
// ports a single request may expand to and deadline bounds a synchronous scan.
func NewServer(store TaskStore, s *scanner.Scanner, maxPorts int, deadline time.Duration) *Server {
	return &Server{
		store:    store,
		scanner:  s,
		maxPorts: maxPorts,
		deadline: deadline,
	}
}

// RegisterRoutes attaches handlers to the provided Gin router group.
func (s *Server) RegisterRoutes(routes gin.IRoutes) {
	routes.POST("/scan", s.scanHandler)
	routes.POST("/scans", s.createScanHandler)
	routes.GET("/scans/:id", s.getScanHandler)
}

var (
	uuidV4Pattern = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[1-5][a-fA-F0-9]{3}-[abAB89][a-fA-F0-9]{3}-[a-fA-F0-9]{12}$`)

	errMissingFields = errors.New("target and ports are required")
)

// validate resolves defaults and checks the request can be scanned.
func (s *Server) validate(req ScanRequest) (ScanSettings, scanner.Request, error) {
	settings := req.resolve()
	if settings.Target == "" || settings.Ports == "" {
		return settings, scanner.Request{}, errMissingFields
	}

	scanReq := settings.scannerRequest()
	if len(scanReq.Ports) > s.maxPorts {
		return settings, scanner.Request{}, fmt.Errorf("too many ports: %d requested, limit is %d", len(scanReq.Ports), s.maxPorts)
	}
	return settings, scanReq, nil
}

// @Summary      Scan a target and wait for the results
// @Description  Runs TCP connect and/or UDP probes against every requested port and answers once all probes finished. Every port and enabled protocol yields exactly one result; results are sorted by port, then protocol.
// @Description  **States**: open (handshake or UDP reply), closed (RST or ICMP port unreachable), filtered (timeout or network error, reason carries the error code), open_or_filtered (UDP probe never answered).
// @Description  **Defaults**: tcp=true, udp=false, timeoutMs=1200 (min 200), concurrency=200 (min 1), retries=2 (min 1).
// @Tags         Scans
// @Accept       json
// @Produce      json
// @Param        scanRequest  body      ScanRequest    true  "Scan request parameters"
// @Success      200          {object}  ScanResponse   "Completed scan. Example: {\"target\":\"127.0.0.1\",\"count\":1,\"results\":[{\"port\":22,\"protocol\":\"tcp\",\"state\":\"open\",\"reason\":\"tcp connect ok\",\"latencyMs\":1}]}"
// @Failure      400          {object}  ErrorResponse  "Malformed JSON body, missing target/ports, or too many ports. Example: {\"error\":\"target and ports are required\"}"
// @Failure      401          {object}  ErrorResponse  "Missing or incorrect API key. Example: {\"error\":\"unauthorized\"}"
// @Failure      429          {object}  ErrorResponse  "Rate limit exceeded for the calling client. Example: {\"error\":\"rate limit exceeded\"}"
// @Failure      500          {object}  ErrorResponse  "The scan could not complete, for example because the request deadline passed."
// @Security     ApiKeyAuth
// @Router       /api/scan [post]
func (s *Server) scanHandler(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request payload: %v", err)})
		return
	}

	_, scanReq, err := s.validate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.deadline)
	defer cancel()

	results, err := s.scanner.Scan(ctx, scanReq)
	if err != nil {
		logging.Logger().Error("scan failed", "target", scanReq.Target, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ScanResponse{
		Target:  req.Target,
		Count:   len(results),
		Results: results,
	})
}

// @Summary      Create a background scan task
// @Description  Validates the scan definition, persists it and enqueues it for background workers before returning a UUID.
// @Description  **Lifecycle**: POST /api/scans answers with HTTP 202 Accepted plus the task identifier. Poll GET /api/scans/{id} to observe pending → running → completed/failed. Results are attached only after completion.
// @Tags         Scans
// @Accept       json
// @Produce      json
// @Param        scanRequest  body      ScanRequest           true  "Scan request parameters"
// @Success      202          {object}  ScanAcceptedResponse  "Scan accepted. Example: {\"id\":\"a3f5c62e-1234-4f72-a84a-1c2d3e4f5678\",\"status\":\"pending\"}"
// @Failure      400          {object}  ErrorResponse         "Malformed JSON body, missing target/ports, or too many ports."
// @Failure      401          {object}  ErrorResponse         "Missing or incorrect API key. Example: {\"error\":\"unauthorized\"}"
// @Failure      429          {object}  ErrorResponse         "Rate limit exceeded for the calling client. Example: {\"error\":\"rate limit exceeded\"}"
// @Failure      500          {object}  ErrorResponse         "Internal error while persisting or queueing the task. Example: {\"error\":\"failed to persist task\"}"
// @Security     ApiKeyAuth
// @Router       /api/scans [post]
func (s *Server) createScanHandler(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request payload: %v", err)})
		return
	}

	settings, _, err := s.validate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	taskID, err := generateUUID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate task id"})
		return
	}

	ctx := c.Request.Context()
	task := &ScanTask{
		ID:        taskID,
		Status:    StatusPending,
		Request:   settings,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		logging.Logger().Error("failed to persist task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to persist task"})
		return
	}

	if err := s.store.PushToQueue(ctx, task.ID); err != nil {
		task.Status = StatusFailed
		task.Error = "failed to queue task"
		now := time.Now().UTC()
		task.CompletedAt = &now
		_ = s.store.UpdateTask(ctx, task)

		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to queue task"})
		return
	}

	c.JSON(http.StatusAccepted, ScanAcceptedResponse{ID: task.ID, Status: task.Status})
}

// @Summary      Get scan status and results
// @Description  Retrieve a snapshot of a background scan task. Poll until status is completed or failed.
// @Tags         Scans
// @Produce      json
// @Param        id   path      string         true  "Scan Task ID (UUID v4)"
// @Success      200  {object}  ScanTask       "Current task snapshot including results when completed."
// @Failure      400  {object}  ErrorResponse  "Malformed task identifier. Example: {\"error\":\"invalid task id format\"}"
// @Failure      401  {object}  ErrorResponse  "Missing or incorrect API key. Example: {\"error\":\"unauthorized\"}"
// @Failure      404  {object}  ErrorResponse  "Task with the provided ID does not exist. Example: {\"error\":\"task not found\"}"
// @Failure      500  {object}  ErrorResponse  "Internal error when loading the task. Example: {\"error\":\"failed to load task\"}"
// @Security     ApiKeyAuth
// @Router       /api/scans/{id} [get]
func (s *Server) getScanHandler(c *gin.Context) {
	id := c.Param("id")
	if !uuidV4Pattern.MatchString(id) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task id format"})
		return
	}
	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /healthz [get]
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task store unavailable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func generateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
