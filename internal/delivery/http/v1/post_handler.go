package v1

import (
	"net/http"

	"go-devconnector-backend/internal/delivery/http/middleware"
	"go-devconnector-backend/internal/delivery/http/response"
	"go-devconnector-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUC domain.PostUsecase
}

// Every post route requires a token.
func NewPostHandler(protected *gin.RouterGroup, postUC domain.PostUsecase) {
	handler := &PostHandler{postUC: postUC}

	posts := protected.Group("/posts")
	{
		posts.GET("", handler.List)
		posts.POST("", handler.Create)
		posts.GET("/:id", handler.GetByID)
		posts.DELETE("/:id", handler.Delete)
		posts.PUT("/like/:id", handler.Like)
		posts.PUT("/unlike/:id", handler.Unlike)
		posts.POST("/comment/:id", handler.AddComment)
		posts.DELETE("/comment/:id/:comment_id", handler.RemoveComment)
	}
}

// List godoc
// @Summary      List posts
// @Description  Newest first
// @Tags         posts
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Post}
// @Failure      401  {object}  response.Response
// @Router       /posts [get]
// @Security     ApiKeyAuth
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posts", posts)
}

// Create godoc
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        post  body      domain.TextInput  true  "Post text"
// @Success      201   {object}  response.Response{data=domain.Post}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /posts [post]
// @Security     ApiKeyAuth
func (h *PostHandler) Create(c *gin.Context) {
	var input domain.TextInput
	if !bindJSON(c, &input) {
		return
	}

	post, err := h.postUC.Create(c.Request.Context(), middleware.CallerID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Post created", post)
}

// GetByID godoc
// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  response.Response{data=domain.Post}
// @Failure      404  {object}  response.Response
// @Router       /posts/{id} [get]
// @Security     ApiKeyAuth
func (h *PostHandler) GetByID(c *gin.Context) {
	post, err := h.postUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post", post)
}

// Delete godoc
// @Summary      Delete post
// @Description  Only the author may delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /posts/{id} [delete]
// @Security     ApiKeyAuth
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postUC.Delete(c.Request.Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post removed", nil)
}

// Like godoc
// @Summary      Like post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  response.Response{data=[]domain.Like}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /posts/like/{id} [put]
// @Security     ApiKeyAuth
func (h *PostHandler) Like(c *gin.Context) {
	post, err := h.postUC.Like(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post liked", post.Likes)
}

// Unlike godoc
// @Summary      Unlike post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  response.Response{data=[]domain.Like}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /posts/unlike/{id} [put]
// @Security     ApiKeyAuth
func (h *PostHandler) Unlike(c *gin.Context) {
	post, err := h.postUC.Unlike(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post unliked", post.Likes)
}

// AddComment godoc
// @Summary      Comment on post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Post ID"
// @Param        comment  body      domain.TextInput  true  "Comment text"
// @Success      201      {object}  response.Response{data=[]domain.Comment}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /posts/comment/{id} [post]
// @Security     ApiKeyAuth
func (h *PostHandler) AddComment(c *gin.Context) {
	var input domain.TextInput
	if !bindJSON(c, &input) {
		return
	}

	post, err := h.postUC.AddComment(c.Request.Context(), c.Param("id"), middleware.CallerID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Comment added", post.Comments)
}

// RemoveComment godoc
// @Summary      Delete comment
// @Description  Only the comment author may delete it
// @Tags         posts
// @Produce      json
// @Param        id          path      string  true  "Post ID"
// @Param        comment_id  path      string  true  "Comment ID"
// @Success      200         {object}  response.Response{data=[]domain.Comment}
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /posts/comment/{id}/{comment_id} [delete]
// @Security     ApiKeyAuth
func (h *PostHandler) RemoveComment(c *gin.Context) {
	post, err := h.postUC.RemoveComment(c.Request.Context(), c.Param("id"), c.Param("comment_id"), middleware.CallerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment removed", post.Comments)
}
