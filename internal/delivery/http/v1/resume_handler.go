package v1

import (
	"io"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// multipart framing on top of the file itself
const multipartOverhead = 64 << 10

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
	maxBytes int64
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase, maxBytes int64, uploadLimit gin.HandlerFunc) {
	handler := &ResumeHandler{resumeUC: resumeUC, maxBytes: maxBytes}

	protected.POST("/job/resumes", middleware.RequireRole(domain.AccountTypeCandidate), uploadLimit, handler.Upload)
}

// UploadResume godoc
// @Summary      Upload a resume
// @Description  Accepts pdf, doc or docx; the returned URL is used as the resume when applying
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Resume file"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /job/resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperror.BadRequest("A resume file is required in the 'file' field"))
		return
	}
	if header.Size > h.maxBytes {
		_ = c.Error(apperror.BadRequest("Resume exceeds the maximum allowed size"))
		return
	}

	file, err := header.Open()
	if err != nil {
		_ = c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		_ = c.Error(apperror.Internal(err))
		return
	}

	url, err := h.resumeUC.UploadResume(c.Request.Context(), actorFrom(c), header.Filename, data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume uploaded successfully", gin.H{"url": url})
}
