package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := protected.Group("/profile")
	{
		profile.GET("", handler.Get)
		profile.PUT("", handler.Update)
	}
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=50,valid_name"`
	LastName  string `json:"last_name" binding:"omitempty,max=50,valid_name"`
	DOB       string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Gender    string `json:"gender" binding:"omitempty,max=20"`
	ContactNo string `json:"contact_no" binding:"omitempty,valid_phone"`
	About     string `json:"about" binding:"omitempty,max=2000"`
	City      string `json:"city" binding:"omitempty,max=100"`
	State     string `json:"state" binding:"omitempty,max=100"`
	Country   string `json:"country" binding:"omitempty,max=100"`
	College   string `json:"college" binding:"omitempty,max=200"`
}

// GetProfile godoc
// @Summary      Profile with postings and applications
// @Description  Returns the user, profile, posted job ids and the jobs applied to
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	details, err := h.profileUC.GetAllUserDetails(c.Request.Context(), actorFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User details fetched successfully", details)
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Empty fields keep their stored value
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.profileUC.UpdateProfile(c.Request.Context(), actorFrom(c), domain.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       req.DOB,
		Gender:    req.Gender,
		ContactNo: req.ContactNo,
		About:     req.About,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		College:   req.College,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", user)
}
