package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUC domain.FeedUsecase
}

func NewFeedHandler(protected *gin.RouterGroup, feedUC domain.FeedUsecase) {
	handler := &FeedHandler{feedUC: feedUC}

	feed := protected.Group("/feed")

	tweets := feed.Group("/tweets")
	{
		tweets.POST("", handler.CreateTweet)
		tweets.GET("", handler.ListTweets)
		tweets.GET("/:tweetId", handler.GetTweet)
		tweets.PUT("/:tweetId", handler.UpdateTweet)
		tweets.DELETE("/:tweetId", handler.DeleteTweet)

		tweets.POST("/:tweetId/like", handler.Like)
		tweets.DELETE("/:tweetId/like", handler.Unlike)
		tweets.GET("/:tweetId/likes", handler.Likes)
		tweets.POST("/:tweetId/share", handler.Share)
		tweets.DELETE("/:tweetId/share", handler.Unshare)

		tweets.POST("/:tweetId/comments", handler.AddComment)
		tweets.GET("/:tweetId/comments", handler.ListComments)
	}

	comments := feed.Group("/comments")
	{
		comments.PUT("/:commentId", handler.UpdateComment)
		comments.DELETE("/:commentId", handler.DeleteComment)
	}

	users := feed.Group("/users/:userId")
	{
		users.GET("/tweets", handler.UserTweets)
		users.GET("/activity", handler.UserActivity)
	}
}

type ContentRequest struct {
	Content string `json:"content" binding:"max=2000"`
}

// CreateTweet godoc
// @Summary      Post a tweet
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        tweet  body      ContentRequest  true  "Tweet"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /feed/tweets [post]
// @Security     BearerAuth
func (h *FeedHandler) CreateTweet(c *gin.Context) {
	var req ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	tweet, err := h.feedUC.CreateTweet(c.Request.Context(), actorFrom(c), req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Tweet created successfully", tweet)
}

// ListTweets godoc
// @Summary      All tweets, newest first
// @Tags         feed
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /feed/tweets [get]
// @Security     BearerAuth
func (h *FeedHandler) ListTweets(c *gin.Context) {
	tweets, err := h.feedUC.GetAllTweets(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweets fetched successfully", tweets)
}

// GetTweet godoc
// @Summary      One tweet
// @Tags         feed
// @Produce      json
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /feed/tweets/{tweetId} [get]
// @Security     BearerAuth
func (h *FeedHandler) GetTweet(c *gin.Context) {
	tweet, err := h.feedUC.GetTweetByID(c.Request.Context(), c.Param("tweetId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweet fetched successfully", tweet)
}

// UpdateTweet godoc
// @Summary      Edit a tweet
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        tweetId  path      string          true  "Tweet ID"
// @Param        tweet    body      ContentRequest  true  "Tweet"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /feed/tweets/{tweetId} [put]
// @Security     BearerAuth
func (h *FeedHandler) UpdateTweet(c *gin.Context) {
	var req ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	tweet, err := h.feedUC.UpdateTweet(c.Request.Context(), actorFrom(c), c.Param("tweetId"), req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweet updated successfully", tweet)
}

// DeleteTweet godoc
// @Summary      Delete a tweet and its comments
// @Tags         feed
// @Produce      json
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /feed/tweets/{tweetId} [delete]
// @Security     BearerAuth
func (h *FeedHandler) DeleteTweet(c *gin.Context) {
	if err := h.feedUC.DeleteTweet(c.Request.Context(), actorFrom(c), c.Param("tweetId")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweet deleted successfully", nil)
}

// LikeTweet godoc
// @Summary      Like a tweet
// @Tags         feed
// @Produce      json
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /feed/tweets/{tweetId}/like [post]
// @Security     BearerAuth
func (h *FeedHandler) Like(c *gin.Context) {
	tweet, err := h.feedUC.LikeTweet(c.Request.Context(), actorFrom(c), c.Param("tweetId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweet liked successfully", tweet)
}

// UnlikeTweet godoc
// @Summary      Remove a like
// @Tags         feed
// @Produce      json
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /feed/tweets/{tweetId}/like [delete]
// @Security     BearerAuth
func (h *FeedHandler) Unlike(c *gin.Context) {
	tweet, err := h.feedUC.UnlikeTweet(c.Request.Context(), actorFrom(c), c.Param("tweetId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweet unliked successfully", tweet)
}

// TweetLikes godoc
// @Summary      Users who liked a tweet
// @Tags         feed
// @Produce      json
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /feed/tweets/{tweetId}/likes [get]
// @Security     BearerAuth
func (h *FeedHandler) Likes(c *gin.Context) {
	users, err := h.feedUC.GetLikesByTweet(c.Request.Context(), c.Param("tweetId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Likes fetched successfully", users)
}

// ShareTweet godoc
// @Summary      Share a tweet
// @Tags         feed
// @Produce      json
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /feed/tweets/{tweetId}/share [post]
// @Security     BearerAuth
func (h *FeedHandler) Share(c *gin.Context) {
	tweet, err := h.feedUC.ShareTweet(c.Request.Context(), actorFrom(c), c.Param("tweetId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweet shared successfully", tweet)
}

// UnshareTweet godoc
// @Summary      Remove a share
// @Tags         feed
// @Produce      json
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /feed/tweets/{tweetId}/share [delete]
// @Security     BearerAuth
func (h *FeedHandler) Unshare(c *gin.Context) {
	tweet, err := h.feedUC.UnshareTweet(c.Request.Context(), actorFrom(c), c.Param("tweetId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweet unshared successfully", tweet)
}

// AddComment godoc
// @Summary      Comment on a tweet
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        tweetId  path      string          true  "Tweet ID"
// @Param        comment  body      ContentRequest  true  "Comment"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /feed/tweets/{tweetId}/comments [post]
// @Security     BearerAuth
func (h *FeedHandler) AddComment(c *gin.Context) {
	var req ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.feedUC.AddComment(c.Request.Context(), actorFrom(c), c.Param("tweetId"), req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Comment added successfully", comment)
}

// ListComments godoc
// @Summary      Comments of a tweet, oldest first
// @Tags         feed
// @Produce      json
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /feed/tweets/{tweetId}/comments [get]
// @Security     BearerAuth
func (h *FeedHandler) ListComments(c *gin.Context) {
	comments, err := h.feedUC.GetCommentsByTweet(c.Request.Context(), c.Param("tweetId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comments fetched successfully", comments)
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        commentId  path      string          true  "Comment ID"
// @Param        comment    body      ContentRequest  true  "Comment"
// @Success      200        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /feed/comments/{commentId} [put]
// @Security     BearerAuth
func (h *FeedHandler) UpdateComment(c *gin.Context) {
	var req ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.feedUC.UpdateComment(c.Request.Context(), actorFrom(c), c.Param("commentId"), req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment updated successfully", comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         feed
// @Produce      json
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /feed/comments/{commentId} [delete]
// @Security     BearerAuth
func (h *FeedHandler) DeleteComment(c *gin.Context) {
	if err := h.feedUC.DeleteComment(c.Request.Context(), actorFrom(c), c.Param("commentId")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment deleted successfully", nil)
}

// UserTweets godoc
// @Summary      Tweets of a user
// @Tags         feed
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /feed/users/{userId}/tweets [get]
// @Security     BearerAuth
func (h *FeedHandler) UserTweets(c *gin.Context) {
	tweets, err := h.feedUC.GetAllTweetsOfUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tweets fetched successfully", tweets)
}

// UserActivity godoc
// @Summary      Tweets, likes, shares and comments of a user
// @Tags         feed
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /feed/users/{userId}/activity [get]
// @Security     BearerAuth
func (h *FeedHandler) UserActivity(c *gin.Context) {
	activity, err := h.feedUC.GetUserActivity(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Activity fetched successfully", activity)
}
