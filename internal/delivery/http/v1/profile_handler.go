package v1

import (
	"net/http"

	"go-devconnector-backend/internal/delivery/http/middleware"
	"go-devconnector-backend/internal/delivery/http/response"
	"go-devconnector-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(public, protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	publicProfile := public.Group("/profile")
	{
		publicProfile.GET("", handler.List)
		publicProfile.GET("/user/:user_id", handler.GetByUserID)
		publicProfile.GET("/github/:username", handler.GithubRepos)
	}

	protectedProfile := protected.Group("/profile")
	{
		protectedProfile.GET("/me", handler.GetOwn)
		protectedProfile.POST("", handler.Upsert)
		protectedProfile.DELETE("", handler.DeleteOwn)
		protectedProfile.PUT("/experience", handler.AddExperience)
		protectedProfile.DELETE("/experience/:exp_id", handler.RemoveExperience)
		protectedProfile.PUT("/education", handler.AddEducation)
		protectedProfile.DELETE("/education/:edu_id", handler.RemoveEducation)
	}
}

// List godoc
// @Summary      List profiles
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Profile}
// @Router       /profile [get]
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileUC.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profiles", profiles)
}

// GetByUserID godoc
// @Summary      Profile by user id
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  response.Response{data=domain.Profile}
// @Failure      404      {object}  response.Response
// @Router       /profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	profile, err := h.profileUC.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", profile)
}

// GithubRepos godoc
// @Summary      GitHub repositories
// @Description  Five most recently created public repositories of a GitHub user
// @Tags         profile
// @Produce      json
// @Param        username  path      string  true  "GitHub username"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /profile/github/{username} [get]
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	repos, err := h.profileUC.GithubRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Github repositories", repos)
}

// GetOwn godoc
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Profile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile/me [get]
// @Security     ApiKeyAuth
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	profile, err := h.profileUC.GetOwn(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", profile)
}

// Upsert godoc
// @Summary      Create or update own profile
// @Description  Empty fields keep their stored value. Skills is a comma separated list.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileInput  true  "Profile fields"
// @Success      200      {object}  response.Response{data=domain.Profile}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /profile [post]
// @Security     ApiKeyAuth
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var input domain.ProfileInput
	if !bindJSON(c, &input) {
		return
	}

	profile, err := h.profileUC.Upsert(c.Request.Context(), middleware.CallerID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", profile)
}

// DeleteOwn godoc
// @Summary      Delete own profile and account
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /profile [delete]
// @Security     ApiKeyAuth
func (h *ProfileHandler) DeleteOwn(c *gin.Context) {
	if err := h.profileUC.DeleteOwn(c.Request.Context(), middleware.CallerID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}

// AddExperience godoc
// @Summary      Add experience
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        experience  body      domain.ExperienceInput  true  "Experience entry"
// @Success      200         {object}  response.Response{data=domain.Profile}
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /profile/experience [put]
// @Security     ApiKeyAuth
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var input domain.ExperienceInput
	if !bindJSON(c, &input) {
		return
	}

	profile, err := h.profileUC.AddExperience(c.Request.Context(), middleware.CallerID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience added", profile)
}

// RemoveExperience godoc
// @Summary      Remove experience
// @Tags         profile
// @Produce      json
// @Param        exp_id  path      string  true  "Experience ID"
// @Success      200     {object}  response.Response{data=domain.Profile}
// @Failure      404     {object}  response.Response
// @Router       /profile/experience/{exp_id} [delete]
// @Security     ApiKeyAuth
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	profile, err := h.profileUC.RemoveExperience(c.Request.Context(), middleware.CallerID(c), c.Param("exp_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience removed", profile)
}

// AddEducation godoc
// @Summary      Add education
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        education  body      domain.EducationInput  true  "Education entry"
// @Success      200        {object}  response.Response{data=domain.Profile}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /profile/education [put]
// @Security     ApiKeyAuth
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var input domain.EducationInput
	if !bindJSON(c, &input) {
		return
	}

	profile, err := h.profileUC.AddEducation(c.Request.Context(), middleware.CallerID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education added", profile)
}

// RemoveEducation godoc
// @Summary      Remove education
// @Tags         profile
// @Produce      json
// @Param        edu_id  path      string  true  "Education ID"
// @Success      200     {object}  response.Response{data=domain.Profile}
// @Failure      404     {object}  response.Response
// @Router       /profile/education/{edu_id} [delete]
// @Security     ApiKeyAuth
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	profile, err := h.profileUC.RemoveEducation(c.Request.Context(), middleware.CallerID(c), c.Param("edu_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education removed", profile)
}
