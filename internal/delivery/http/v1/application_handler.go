package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	recruiter := middleware.RequireRole(domain.AccountTypeRecruiter)
	candidate := middleware.RequireRole(domain.AccountTypeCandidate)

	jobs := protected.Group("/job/jobs/:jobId")
	{
		jobs.POST("/apply", candidate, handler.Apply)
		jobs.GET("/applications", recruiter, handler.ListByJob)
		jobs.GET("/applications/export", recruiter, handler.Export)
	}

	applications := protected.Group("/job/applications")
	{
		applications.GET("", candidate, handler.ListMine)
		applications.GET("/:applicationId", handler.GetDetails)
		applications.PUT("/:applicationId", candidate, handler.Update)
		applications.DELETE("/:applicationId", candidate, handler.Withdraw)
	}
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
	Resume      string `json:"resume" binding:"max=2048"`
}

type UpdateApplicationRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
	Resume      string `json:"resume" binding:"max=2048"`
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Candidates only; one application per job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId        path      string        true  "Job ID"
// @Param        application  body      ApplyRequest  true  "Application"
// @Success      201          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /job/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.appUC.ApplyToJob(c.Request.Context(), actorFrom(c), domain.ApplyInput{
		JobID:       c.Param("jobId"),
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// ListApplicationsByJob godoc
// @Summary      Applications to a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/jobs/{jobId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	apps, err := h.appUC.GetApplicationsByJob(c.Request.Context(), actorFrom(c), c.Param("jobId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications fetched successfully", apps)
}

// ExportApplications godoc
// @Summary      Export applications as xlsx
// @Description  Only the recruiter who posted the job
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        jobId  path  string  true  "Job ID"
// @Success      200    {file}    file
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/jobs/{jobId}/applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	data, filename, err := h.appUC.ExportApplications(c.Request.Context(), actorFrom(c), c.Param("jobId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Attachment(c, filename, xlsxContentType, data)
}

// ListMyApplications godoc
// @Summary      The candidate's applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /job/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.appUC.GetApplicationsByUser(c.Request.Context(), actorFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications fetched successfully", apps)
}

// GetApplicationDetails godoc
// @Summary      Application details
// @Tags         applications
// @Produce      json
// @Param        applicationId  path      string  true  "Application ID"
// @Success      200            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /job/applications/{applicationId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	app, err := h.appUC.GetApplicationDetails(c.Request.Context(), c.Param("applicationId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application fetched successfully", app)
}

// UpdateApplication godoc
// @Summary      Update an application
// @Description  Only the applying candidate; empty fields keep their stored value
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        applicationId  path      string                    true  "Application ID"
// @Param        application    body      UpdateApplicationRequest  true  "Fields to change"
// @Success      200            {object}  response.Response
// @Failure      403            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /job/applications/{applicationId} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Update(c *gin.Context) {
	var req UpdateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.appUC.UpdateApplication(c.Request.Context(), actorFrom(c), c.Param("applicationId"), domain.ApplicationPatch{
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated successfully", app)
}

// WithdrawApplication godoc
// @Summary      Withdraw an application
// @Tags         applications
// @Produce      json
// @Param        applicationId  path      string  true  "Application ID"
// @Success      200            {object}  response.Response
// @Failure      403            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /job/applications/{applicationId} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	if err := h.appUC.WithdrawApplication(c.Request.Context(), actorFrom(c), c.Param("applicationId")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn successfully", nil)
}
