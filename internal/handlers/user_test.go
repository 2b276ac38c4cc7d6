package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Profile(t *testing.T) {
	e := newTestEnv(t)
	alice, token := e.user(t, "alice")

	w, env := e.do(t, http.MethodPatch, "/api/users/me", token, map[string]interface{}{
		"bio":    "frontend dev",
		"skills": []string{"React", "CSS"},
		"avatar": map[string]string{"url": "https://img/a.png", "publicId": "a"},
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var data struct {
		User dto.User `json:"user"`
	}
	decode(t, env.Data, &data)
	assert.Equal(t, "frontend dev", data.User.Bio)
	assert.Equal(t, "https://img/a.png", data.User.Avatar.URL)
	require.Len(t, data.User.Skills, 2)
	assert.Equal(t, "CSS", data.User.Skills[0].Name)

	w, env = e.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &data)
	assert.Equal(t, "alice", data.User.Username)

	w, env = e.do(t, http.MethodGet, "/api/users?limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.UserList
	decode(t, env.Data, &list)
	assert.Equal(t, int64(1), list.NumberOfUsers)

	w, _ = e.do(t, http.MethodPatch, "/api/users/me", token, map[string]interface{}{"username": "a!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_MyProjectsAndDelete(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.user(t, "alice")
	createProjectVia(t, e, token, "Mine")

	w, env := e.do(t, http.MethodGet, "/api/users/me/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Projects []dto.Project `json:"projects"`
	}
	decode(t, env.Data, &data)
	require.Len(t, data.Projects, 1)
	assert.Equal(t, "Mine", data.Projects[0].Title)

	w, _ = e.do(t, http.MethodDelete, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSkillHandler(t *testing.T) {
	e := newTestEnv(t)

	w, env := e.do(t, http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Skills []dto.Skill `json:"skills"`
	}
	decode(t, env.Data, &data)
	assert.Len(t, data.Skills, 20)

	w, env = e.do(t, http.MethodGet, "/api/skills/search?q=sql", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &data)
	assert.Len(t, data.Skills, 2)

	w, _ = e.do(t, http.MethodGet, "/api/skills/search?q=zzz", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthHandler(t *testing.T) {
	e := newTestEnv(t)

	w, env := e.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Message)
	assert.Contains(t, string(env.Data), `"queue_mode":"sync"`)
	assert.Contains(t, string(env.Data), `"search":"database"`)
}
