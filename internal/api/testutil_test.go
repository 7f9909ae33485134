package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/internal/database"
	"github.com/kilo-recipes/recipe-api/backend/internal/middleware"
	"github.com/kilo-recipes/recipe-api/backend/internal/models"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
	"github.com/kilo-recipes/recipe-api/backend/internal/storage"
	"github.com/kilo-recipes/recipe-api/backend/internal/testhelpers"
)

const testMaxUpload = 1 << 20

type testEnv struct {
	router   *gin.Engine
	db       *database.DB
	auth     *service.AuthService
	mediaDir string
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	logger := zap.NewNop()
	mediaDir := t.TempDir()

	authService := service.NewAuthService(db.DB, "test-secret", time.Hour)
	recipeService := service.NewRecipeService(db.DB)
	imageService := service.NewImageService(recipeService, storage.NewLocal(mediaDir, "/static/media/"))

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	router.GET("/", Home)
	router.GET("/health", HealthCheck(db))

	authRequired := middleware.AuthMiddleware(authService)
	NewUserHandler(authService, logger).RegisterRoutes(router, authRequired)

	recipe := router.Group("/recipe", authRequired)
	NewRecipeHandler(recipeService, imageService, testMaxUpload, logger).RegisterRoutes(recipe)
	NewAttributeHandler[models.Tag](service.NewAttributeService[models.Tag](db.DB), logger).RegisterRoutes(recipe, "/tags")
	NewAttributeHandler[models.Ingredient](service.NewAttributeService[models.Ingredient](db.DB), logger).RegisterRoutes(recipe, "/ingredients")

	return &testEnv{router: router, db: db, auth: authService, mediaDir: mediaDir}
}

// createUserAndToken creates an account and a token for it
func (e *testEnv) createUserAndToken(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateTestUser(t, e.db.DB, email)
	token, err := e.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(testhelpers.JSONMarshal(t, body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func names(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.(map[string]interface{})["name"].(string))
	}
	return out
}
