package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"
	"github.com/jossyfresh/EduAssist/internal/service"
	internalws "github.com/jossyfresh/EduAssist/internal/websocket"
	"github.com/jossyfresh/EduAssist/pkg/config"
	"github.com/jossyfresh/EduAssist/pkg/db"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if err := logger.InitLogger("debug", false); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if err := db.InitDB(config.GlobalConfig.Database); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	for _, m := range []any{
		&model.MessageRead{}, &model.Message{}, &model.GroupMember{}, &model.ChatGroup{},
		&model.Content{}, &model.Course{}, &model.User{},
	} {
		if err := db.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			t.Logf("Failed to cleanup table for %T: %v", m, err)
		}
	}

	userRepo := repository.NewUserRepository(db.DB)
	courseService := service.NewCourseService(
		repository.NewCourseRepository(db.DB),
		repository.NewContentRepository(db.DB),
	)
	chatService := service.NewChatService(repository.NewChatRepository(db.DB), userRepo)
	pathService := service.NewLearningPathService(
		repository.NewLearningPathRepository(db.DB),
		repository.NewProgressRepository(db.DB),
	)
	assessmentService := service.NewAssessmentService(repository.NewAssessmentRepository(db.DB))

	registry := internalws.NewRegistry()
	dispatcher := internalws.NewDispatcher(registry, config.GlobalConfig.WebSocket)
	sessions := internalws.NewSessionManager(registry, dispatcher, chatService)

	handlers := Handlers{
		Auth:         NewAuthHandler(service.NewAuthService(userRepo)),
		User:         NewUserHandler(userRepo),
		Course:       NewCourseHandler(courseService),
		Content:      NewContentHandler(courseService, nil),
		LearningPath: NewLearningPathHandler(pathService),
		Assessment:   NewAssessmentHandler(assessmentService),
		Chat:         NewChatHandler(chatService, dispatcher),
		WS:           NewWSHandler(chatService, sessions),
		YouTube:      NewYouTubeHandler(nil),
	}
	return SetupRouter(handlers, userRepo)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, email, username string) string {
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router, "flow@example.com", "flowuser")

	// Protected route rejects missing and bad tokens.
	w := doJSON(t, router, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "flow@example.com", resp.User.Email)
}

func TestCourseCRUDOverHTTP(t *testing.T) {
	router := setupTestRouter(t)
	owner := registerAndLogin(t, router, "owner@example.com", "owner")
	other := registerAndLogin(t, router, "other@example.com", "other")

	w := doJSON(t, router, http.MethodPost, "/api/v1/courses", owner, gin.H{
		"title":       "Intro to Go",
		"description": "A first course",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var course model.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &course))
	require.NotEmpty(t, course.ID)

	// Anyone authenticated can read.
	w = doJSON(t, router, http.MethodGet, "/api/v1/courses/"+course.ID, other, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the owner can modify.
	w = doJSON(t, router, http.MethodPut, "/api/v1/courses/"+course.ID, other, gin.H{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/courses/"+course.ID, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/courses/"+course.ID, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatGroupEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	creator := registerAndLogin(t, router, "creator@example.com", "creator")
	outsider := registerAndLogin(t, router, "outsider@example.com", "outsider")

	w := doJSON(t, router, http.MethodPost, "/api/v1/chat/groups", creator, gin.H{"name": "study group"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var group model.ChatGroup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &group))
	require.NotZero(t, group.ID)

	groupPath := "/api/v1/chat/groups/" + strconv.FormatUint(uint64(group.ID), 10)

	// A non-member cannot post or read messages.
	w = doJSON(t, router, http.MethodPost, groupPath+"/messages", outsider, gin.H{"content": "let me in"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, router, http.MethodGet, groupPath+"/messages", outsider, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The creator is a member from the start.
	w = doJSON(t, router, http.MethodPost, groupPath+"/messages", creator, gin.H{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, groupPath+"/messages", creator, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Messages, 1)

	// Search finds the message by substring.
	w = doJSON(t, router, http.MethodGet, groupPath+"/messages/search?q=hell", creator, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Messages, 1)
}
