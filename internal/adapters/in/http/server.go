// Package http exposes the dispatch core over a JSON API: job and engineer
// registration, assignment, cancellation, completion, dispatcher read
// models and a websocket change feed. Every route except the health check
// sits behind the JWT session middleware.
package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/application/usecases/queries"
	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/realtime"
)

// Server wires HTTP routes to the application's command and query handlers.
type Server struct {
	// Command handlers
	assignEngineerHandler commands.AssignEngineerCommandHandler
	createJobHandler      commands.CreateJobCommandHandler
	createEngineerHandler commands.CreateEngineerCommandHandler
	cancelJobHandler      commands.CancelJobCommandHandler
	completeJobHandler    commands.CompleteJobCommandHandler

	// Query handlers
	getPendingJobsHandler        queries.GetPendingJobsQueryHandler
	getAvailableEngineersHandler queries.GetAvailableEngineersQueryHandler
	getJobCandidatesHandler      queries.GetJobCandidatesQueryHandler

	// Realtime feed
	hub *realtime.Hub
}

// NewServer creates an HTTP server with the required command and query
// handlers and the realtime hub backing the websocket feed.
func NewServer(
	assignEngineerHandler commands.AssignEngineerCommandHandler,
	createJobHandler commands.CreateJobCommandHandler,
	createEngineerHandler commands.CreateEngineerCommandHandler,
	cancelJobHandler commands.CancelJobCommandHandler,
	completeJobHandler commands.CompleteJobCommandHandler,
	getPendingJobsHandler queries.GetPendingJobsQueryHandler,
	getAvailableEngineersHandler queries.GetAvailableEngineersQueryHandler,
	getJobCandidatesHandler queries.GetJobCandidatesQueryHandler,
	hub *realtime.Hub,
) *Server {
	return &Server{
		assignEngineerHandler:        assignEngineerHandler,
		createJobHandler:             createJobHandler,
		createEngineerHandler:        createEngineerHandler,
		cancelJobHandler:             cancelJobHandler,
		completeJobHandler:           completeJobHandler,
		getPendingJobsHandler:        getPendingJobsHandler,
		getAvailableEngineersHandler: getAvailableEngineersHandler,
		getJobCandidatesHandler:      getJobCandidatesHandler,
		hub:                          hub,
	}
}

// RegisterRoutes mounts all routes on the echo instance. jwtSecret guards
// every /api/v1 route; /health stays open.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.Use(middleware.RequestID())

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", JWTMiddleware(jwtSecret))
	api.POST("/jobs", s.CreateJob)
	api.GET("/jobs/pending", s.GetPendingJobs)
	api.GET("/jobs/:job_id/candidates", s.GetJobCandidates)
	api.POST("/jobs/:job_id/assign", s.AssignEngineer)
	api.POST("/jobs/:job_id/cancel", s.CancelJob)
	api.POST("/jobs/:job_id/complete", s.CompleteJob)
	api.POST("/engineers", s.CreateEngineer)
	api.GET("/engineers/available", s.GetAvailableEngineers)
	api.GET("/ws/jobs", s.JobFeed)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type geoPointPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createJobRequest struct {
	Number        string          `json:"number"`
	ClientName    string          `json:"client_name"`
	Site          geoPointPayload `json:"site"`
	SiteAddress   string          `json:"site_address"`
	RequiredSkill int             `json:"required_skill"`
	Urgency       string          `json:"urgency"`
	ScheduledAt   *time.Time      `json:"scheduled_at,omitempty"`
}

type jobPayload struct {
	ID            string           `json:"id"`
	Number        string           `json:"number"`
	ClientName    string           `json:"client_name"`
	Status        string           `json:"status"`
	EngineerID    *string          `json:"engineer_id,omitempty"`
	AssignedAt    *time.Time       `json:"assigned_at,omitempty"`
	Site          geoPointPayload  `json:"site"`
	SiteAddress   string           `json:"site_address"`
	RequiredSkill int              `json:"required_skill"`
	Urgency       string           `json:"urgency"`
	ScheduledAt   *time.Time       `json:"scheduled_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func jobToPayload(j *job.Job) jobPayload {
	payload := jobPayload{
		ID:         j.ID().String(),
		Number:     j.Number(),
		ClientName: j.ClientName(),
		Status:     j.Status().String(),
		AssignedAt: j.AssignedAt(),
		Site: geoPointPayload{
			Latitude:  j.Site().Latitude(),
			Longitude: j.Site().Longitude(),
		},
		SiteAddress:   j.SiteAddress(),
		RequiredSkill: int(j.RequiredSkill()),
		Urgency:       j.Urgency().String(),
		ScheduledAt:   j.ScheduledAt(),
		CreatedAt:     j.CreatedAt(),
	}

	if id := j.EngineerID(); id != nil {
		s := id.String()
		payload.EngineerID = &s
	}

	return payload
}

// CreateJob handles POST /api/v1/jobs.
func (s *Server) CreateJob(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	var req createJobRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeValidationError,
			"invalid request body", nil)
	}

	site, err := kernel.NewGeoPoint(req.Site.Latitude, req.Site.Longitude)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	skill, err := kernel.NewSkillLevel(req.RequiredSkill)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	urgency, err := job.UrgencyFromString(req.Urgency)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewCreateJobCommand(
		kernel.NewUUID(),
		req.Number,
		req.ClientName,
		site,
		req.SiteAddress,
		skill,
		urgency,
		req.ScheduledAt,
		actor,
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	created, err := s.createJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, jobToPayload(created))
}

type createEngineerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Skill int    `json:"skill"`
}

type engineerPayload struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Availability   string  `json:"availability_status"`
	Skill          int     `json:"skill"`
	CompletedCount int     `json:"completed_count"`
	Rating         float64 `json:"rating"`
	SuccessRate    float64 `json:"success_rate"`
}

func engineerToPayload(e *engineer.Engineer) engineerPayload {
	return engineerPayload{
		ID:             e.ID().String(),
		Name:           e.Name(),
		Phone:          e.Phone(),
		Availability:   e.Availability().String(),
		Skill:          int(e.Skill()),
		CompletedCount: e.CompletedCount(),
		Rating:         e.Rating(),
		SuccessRate:    e.SuccessRate(),
	}
}

// CreateEngineer handles POST /api/v1/engineers.
func (s *Server) CreateEngineer(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	var req createEngineerRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeValidationError,
			"invalid request body", nil)
	}

	skill, err := kernel.NewSkillLevel(req.Skill)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewCreateEngineerCommand(
		kernel.NewUUID(), req.Name, req.Phone, skill, actor)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	created, err := s.createEngineerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, engineerToPayload(created))
}

type assignEngineerRequest struct {
	EngineerID string `json:"engineer_id"`
}

type assignmentPayload struct {
	AssignedAt time.Time `json:"assigned_at"`
	AssignedBy string    `json:"assigned_by"`
}

type assignEngineerResponse struct {
	Job              jobPayload        `json:"job"`
	Engineer         engineerPayload   `json:"engineer"`
	Assignment       assignmentPayload `json:"assignment"`
	NotificationSent bool              `json:"notification_sent"`
}

// AssignEngineer handles POST /api/v1/jobs/:job_id/assign.
func (s *Server) AssignEngineer(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("job_id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeInvalidID,
			"job_id is not a valid UUID", nil)
	}

	var req assignEngineerRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeValidationError,
			"invalid request body", nil)
	}

	engineerID, err := kernel.UUIDFromString(req.EngineerID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeInvalidID,
			"engineer_id is not a valid UUID", nil)
	}

	cmd, err := commands.NewAssignEngineerCommand(jobID, engineerID, actor)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	result, err := s.assignEngineerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignEngineerResponse{
		Job:      jobToPayload(result.Job),
		Engineer: engineerToPayload(result.Engineer),
		Assignment: assignmentPayload{
			AssignedAt: result.AssignedAt,
			AssignedBy: result.AssignedBy.ID.String(),
		},
		NotificationSent: result.NotificationSent,
	})
}

// CancelJob handles POST /api/v1/jobs/:job_id/cancel.
func (s *Server) CancelJob(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("job_id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeInvalidID,
			"job_id is not a valid UUID", nil)
	}

	cmd, err := commands.NewCancelJobCommand(jobID, actor)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.cancelJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type completeJobRequest struct {
	Successful bool `json:"successful"`
}

// CompleteJob handles POST /api/v1/jobs/:job_id/complete.
func (s *Server) CompleteJob(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("job_id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeInvalidID,
			"job_id is not a valid UUID", nil)
	}

	var req completeJobRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeValidationError,
			"invalid request body", nil)
	}

	cmd, err := commands.NewCompleteJobCommand(jobID, req.Successful, actor)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.completeJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type pendingJobPayload struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	ClientName    string          `json:"client_name"`
	Site          geoPointPayload `json:"site"`
	SiteAddress   string          `json:"site_address"`
	RequiredSkill int             `json:"required_skill"`
	Urgency       string          `json:"urgency"`
	ScheduledAt   *time.Time      `json:"scheduled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// GetPendingJobs handles GET /api/v1/jobs/pending.
func (s *Server) GetPendingJobs(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	query, err := queries.NewGetPendingJobsQuery(actor.AgencyID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	pending, err := s.getPendingJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]pendingJobPayload, len(pending))
	for i, item := range pending {
		response[i] = pendingJobPayload{
			ID:         item.ID.String(),
			Number:     item.Number,
			ClientName: item.ClientName,
			Site: geoPointPayload{
				Latitude:  item.Site.Latitude(),
				Longitude: item.Site.Longitude(),
			},
			SiteAddress:   item.SiteAddress,
			RequiredSkill: item.RequiredSkill,
			Urgency:       item.Urgency,
			ScheduledAt:   item.ScheduledAt,
			CreatedAt:     item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type availableEngineerPayload struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Skill             int              `json:"skill"`
	Location          *geoPointPayload `json:"location,omitempty"`
	LocationUpdatedAt *time.Time       `json:"location_updated_at,omitempty"`
	CompletedCount    int              `json:"completed_count"`
	Rating            float64          `json:"rating"`
	SuccessRate       float64          `json:"success_rate"`
}

// GetAvailableEngineers handles GET /api/v1/engineers/available.
func (s *Server) GetAvailableEngineers(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	query, err := queries.NewGetAvailableEngineersQuery(actor.AgencyID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	available, err := s.getAvailableEngineersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]availableEngineerPayload, len(available))
	for i, item := range available {
		payload := availableEngineerPayload{
			ID:                item.ID.String(),
			Name:              item.Name,
			Skill:             item.Skill,
			LocationUpdatedAt: item.LocationUpdatedAt,
			CompletedCount:    item.CompletedCount,
			Rating:            item.Rating,
			SuccessRate:       item.SuccessRate,
		}
		if item.Location != nil {
			payload.Location = &geoPointPayload{
				Latitude:  item.Location.Latitude(),
				Longitude: item.Location.Longitude(),
			}
		}
		response[i] = payload
	}

	return ctx.JSON(http.StatusOK, response)
}

type candidatePayload struct {
	EngineerID      string   `json:"engineer_id"`
	Name            string   `json:"name"`
	Skill           int      `json:"skill"`
	Rating          float64  `json:"rating"`
	DistanceMeters  *float64 `json:"distance_meters,omitempty"`
	DurationSeconds *int64   `json:"duration_seconds,omitempty"`
	DistanceSource  string   `json:"distance_source"`
}

// GetJobCandidates handles GET /api/v1/jobs/:job_id/candidates.
func (s *Server) GetJobCandidates(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "no session", nil)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("job_id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeInvalidID,
			"job_id is not a valid UUID", nil)
	}

	query, err := queries.NewGetJobCandidatesQuery(jobID, actor)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	candidates, err := s.getJobCandidatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]candidatePayload, len(candidates))
	for i, candidate := range candidates {
		payload := candidatePayload{
			EngineerID:      candidate.EngineerID.String(),
			Name:            candidate.Name,
			Skill:           candidate.Skill,
			Rating:          candidate.Rating,
			DurationSeconds: candidate.DurationSeconds,
			DistanceSource:  candidate.DistanceSource,
		}
		// Unlocated engineers rank last with no usable distance.
		if candidate.DistanceSource != "none" {
			distance := candidate.DistanceMeters
			payload.DistanceMeters = &distance
		}
		response[i] = payload
	}

	return ctx.JSON(http.StatusOK, response)
}
