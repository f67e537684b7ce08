package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourlink-server/database"
	"tourlink-server/models"
)

func likePost(t *testing.T, user models.User, postID uint) (int, map[string]interface{}) {
	t.Helper()
	c, w := testContext(t, http.MethodPost, "/posts/1/like", nil)
	asUser(c, user)
	setParam(c, "id", postID)
	toggleLike(c)
	return w.Code, decodeBody(t, w)
}

func TestLikeToggle(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "author@example.com", models.RoleGuide)
	liker := createTestUser(t, "liker@example.com", models.RoleTraveler)

	post := models.Post{AuthorID: author.ID, Content: "Just wrapped up a great season!"}
	require.NoError(t, database.DB.Create(&post).Error)

	code, body := likePost(t, liker, post.ID)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["liked"])

	code, body = likePost(t, liker, post.ID)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["liked"])

	var count int64
	database.DB.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeletePostIsAuthorOnly(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "author@example.com", models.RoleGuide)
	other := createTestUser(t, "other@example.com", models.RoleTraveler)

	post := models.Post{AuthorID: author.ID, Content: "Looking for a co-guide next month."}
	require.NoError(t, database.DB.Create(&post).Error)

	c, w := testContext(t, http.MethodDelete, "/posts/1", nil)
	asUser(c, other)
	setParam(c, "id", post.ID)
	deletePost(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = testContext(t, http.MethodDelete, "/posts/1", nil)
	asUser(c, author)
	setParam(c, "id", post.ID)
	deletePost(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommentOnPost(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "author@example.com", models.RoleGuide)
	commenter := createTestUser(t, "commenter@example.com", models.RoleTraveler)

	post := models.Post{AuthorID: author.ID, Content: "Photos from yesterday's hike."}
	require.NoError(t, database.DB.Create(&post).Error)

	c, w := testContext(t, http.MethodPost, "/posts/1/comments", models.CommentRequest{
		Content: "That ridge looks amazing!",
	})
	asUser(c, commenter)
	setParam(c, "id", post.ID)
	createComment(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var comments []models.PostComment
	require.NoError(t, database.DB.Where("post_id = ?", post.ID).Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, commenter.ID, comments[0].AuthorID)
}
