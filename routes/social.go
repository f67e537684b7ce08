package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourlink-server/database"
	"tourlink-server/models"
	"tourlink-server/websocket"
)

// RegisterSocialRoutes registers the social feed routes
func RegisterSocialRoutes(protected *gin.RouterGroup) {
	protected.POST("/posts", createPost)
	protected.GET("/posts", listPosts)
	protected.GET("/posts/:id", getPost)
	protected.DELETE("/posts/:id", deletePost)
	protected.POST("/posts/:id/like", toggleLike)
	protected.POST("/posts/:id/comments", createComment)
	protected.DELETE("/comments/:id", deleteComment)
}

// createPost publishes a post to the social feed
func createPost(c *gin.Context) {
	var req models.PostRequest
	if !bindJSON(c, &req) {
		return
	}

	post := models.Post{
		AuthorID: c.GetUint("user_id"),
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// listPosts returns the feed, newest first
func listPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	database.DB.Model(&models.Post{}).Count(&total)

	var posts []models.Post
	if err := database.DB.
		Preload("Author").
		Preload("Likes").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// getPost returns one post with its likes and comments
func getPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.
		Preload("Author").
		Preload("Likes").
		Preload("Comments.Author").
		First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// deletePost removes the caller's own post
func deletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Post not found"})
		return
	}

	if post.AuthorID != c.GetUint("user_id") {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "You can only delete your own posts",
		})
		return
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// toggleLike likes a post, or removes the like when it already exists
func toggleLike(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid post ID"})
		return
	}

	userID := c.GetUint("user_id")

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Post not found"})
		return
	}

	var like models.PostLike
	if err := database.DB.Where("post_id = ? AND user_id = ?", post.ID, userID).First(&like).Error; err == nil {
		if err := database.DB.Delete(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post unliked", "liked": false})
		return
	}

	like = models.PostLike{PostID: post.ID, UserID: userID}
	if err := database.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	if post.AuthorID != userID {
		websocket.Notify(post.AuthorID, "post_liked", gin.H{"post_id": post.ID})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post liked", "liked": true})
}

// createComment adds a comment to a post
func createComment(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid post ID"})
		return
	}

	var req models.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := c.GetUint("user_id")

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Post not found"})
		return
	}

	comment := models.PostComment{
		PostID:   post.ID,
		AuthorID: userID,
		Content:  req.Content,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if post.AuthorID != userID {
		websocket.Notify(post.AuthorID, "post_commented", gin.H{
			"post_id":    post.ID,
			"comment_id": comment.ID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// deleteComment removes the caller's own comment
func deleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid comment ID"})
		return
	}

	var comment models.PostComment
	if err := database.DB.First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Comment not found"})
		return
	}

	if comment.AuthorID != c.GetUint("user_id") {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "You can only delete your own comments",
		})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
