package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Malek-bh/agrical-api/internal/models"
)

func TestComments_CreateAndList(t *testing.T) {
	env := setupEnv(t)
	env.register("alice", "alice@example.com", "pw123456", false)
	env.register("bob", "bob@example.com", "pw123456", false)
	alice := env.login("alice", "pw123456")
	bob := env.login("bob", "pw123456")

	postID := createPost(t, env, alice, "Discuss")

	w := env.do(http.MethodPost, "/comments", bob, gin.H{
		"post_id": postID, "content": "great post",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "great post")
}

func TestComments_CreateOnMissingPost(t *testing.T) {
	env := setupEnv(t)
	env.register("alice", "alice@example.com", "pw123456", false)
	alice := env.login("alice", "pw123456")

	w := env.do(http.MethodPost, "/comments", alice, gin.H{
		"post_id": 9999, "content": "into the void",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post_not_found")
}

func TestComments_DeleteOwnership(t *testing.T) {
	env := setupEnv(t)
	env.register("alice", "alice@example.com", "pw123456", false)
	env.register("bob", "bob@example.com", "pw123456", false)
	env.register("root", "root@example.com", "pw123456", true)
	alice := env.login("alice", "pw123456")
	bob := env.login("bob", "pw123456")
	admin := env.login("root", "pw123456")

	postID := createPost(t, env, alice, "Discuss")

	w := env.do(http.MethodPost, "/comments", bob, gin.H{
		"post_id": postID, "content": "bob's comment",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Comment models.Comment `json:"comment"`
	}
	decodeBody(t, w, &resp)
	path := fmt.Sprintf("/comments/%d", resp.Comment.ID)

	// the post owner is not the comment owner
	w = env.do(http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// an admin may remove anything
	w = env.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodDelete, "/comments/9999", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
