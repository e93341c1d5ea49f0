package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	publicJobs := public.Group("/job/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:jobId", handler.GetDetails)
	}

	recruiterJobs := protected.Group("/job/jobs", middleware.RequireRole(domain.AccountTypeRecruiter))
	{
		recruiterJobs.POST("", handler.Create)
		recruiterJobs.PUT("/:jobId", handler.Update)
		recruiterJobs.DELETE("/:jobId", handler.Delete)
	}
}

type JobRequest struct {
	Title       string   `json:"title" binding:"max=200"`
	Description string   `json:"description" binding:"max=10000"`
	Company     string   `json:"company" binding:"max=200"`
	Location    string   `json:"location" binding:"max=200"`
	Salary      string   `json:"salary" binding:"max=100"`
	Skills      []string `json:"skills" binding:"max=50,dive,max=100"`
	CategoryID  string   `json:"category_id"`
}

// CreateJob godoc
// @Summary      Create a job posting
// @Description  Recruiters only; the category must exist
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), actorFrom(c), domain.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Skills:      req.Skills,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// UpdateJob godoc
// @Summary      Update a job posting
// @Description  Only the posting recruiter; empty fields keep their stored value
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        jobId  path      string      true  "Job ID"
// @Param        job    body      JobRequest  true  "Fields to change"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/jobs/{jobId} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req JobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), actorFrom(c), c.Param("jobId"), domain.JobPatch{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Skills:      req.Skills,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// DeleteJob godoc
// @Summary      Delete a job posting
// @Description  Removes the job together with every application to it
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/jobs/{jobId} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	removed, err := h.jobUC.DeleteJob(c.Request.Context(), actorFrom(c), c.Param("jobId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", gin.H{"applications_removed": removed})
}

// ListJobs godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /job/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	jobs, total, err := h.jobUC.GetAllJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched successfully", response.Page{
		Items:    jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetJobDetails godoc
// @Summary      Job details
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/jobs/{jobId} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job fetched successfully", job)
}
