package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryUC domain.CategoryUsecase
}

func NewCategoryHandler(public, protected *gin.RouterGroup, categoryUC domain.CategoryUsecase) {
	handler := &CategoryHandler{categoryUC: categoryUC}

	public.GET("/job/categories", handler.List)
	public.GET("/job/categories/:categoryId/jobs", handler.Jobs)
	public.GET("/job/jobs/search", handler.Search)

	protected.POST("/job/categories", middleware.RequireRole(domain.AccountTypeRecruiter), handler.Create)
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"max=100,no_emoji"`
	Description string `json:"description" binding:"max=500"`
}

// CreateCategory godoc
// @Summary      Create a job category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        category  body      CreateCategoryRequest  true  "Category"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Router       /job/categories [post]
// @Security     BearerAuth
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryUC.CreateCategory(c.Request.Context(), actorFrom(c), req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Category created successfully", category)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /job/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryUC.ShowAllCategories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Categories fetched successfully", categories)
}

// JobsByCategory godoc
// @Summary      Jobs of a category
// @Tags         categories
// @Produce      json
// @Param        categoryId  path      string  true  "Category ID"
// @Success      200         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /job/categories/{categoryId}/jobs [get]
func (h *CategoryHandler) Jobs(c *gin.Context) {
	jobs, err := h.categoryUC.GetJobsByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched successfully", jobs)
}

// SearchJobs godoc
// @Summary      Search jobs by category name
// @Description  Case-insensitive match on the category name
// @Tags         categories
// @Produce      json
// @Param        category  query     string  true  "Category name"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /job/jobs/search [get]
func (h *CategoryHandler) Search(c *gin.Context) {
	jobs, err := h.categoryUC.SearchJobsByCategory(c.Request.Context(), c.Query("category"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched successfully", jobs)
}
