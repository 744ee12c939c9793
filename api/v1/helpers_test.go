package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
	"github.com/alisoliman/recipe-app-api/services"
	"github.com/alisoliman/recipe-app-api/storage"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	testImageID = "test-uuid"
	mediaURL    = "/media/"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	images *storage.LocalStore
	deps   Dependencies
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repositories.NewMemoryStore()
	images := storage.NewLocalStore(afero.NewMemMapFs(), mediaURL)

	deps := Dependencies{
		Users:       services.NewUserService(store.Users()),
		Tokens:      services.NewTokenService("test-secret", time.Hour, repositories.NewMemoryRevocationList()),
		Tags:        services.NewAttributeService[models.Tag](store.Tags()),
		Ingredients: services.NewAttributeService[models.Ingredient](store.Ingredients()),
		Recipes: services.NewRecipeService(store.Recipes(), store.Tags(), store.Ingredients(), images,
			services.WithIDGenerator(utils.StaticID(testImageID))),
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), deps)
	return &testEnv{router: router, images: images, deps: deps}
}

// user creates an account and returns it with a valid access token
func (e *testEnv) user(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user, err := e.deps.Users.CreateUser(context.Background(), email, "testpass123", "Test Name")
	require.NoError(t, err)
	token, _, err := e.deps.Tokens.Issue(user)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) tag(t *testing.T, owner *models.User, name string) *models.Tag {
	t.Helper()
	tag, err := e.deps.Tags.Create(context.Background(), owner.ID, name)
	require.NoError(t, err)
	return tag
}

func (e *testEnv) ingredient(t *testing.T, owner *models.User, name string) *models.Ingredient {
	t.Helper()
	ingredient, err := e.deps.Ingredients.Create(context.Background(), owner.ID, name)
	require.NoError(t, err)
	return ingredient
}

// do sends body as JSON; a nil body sends no payload
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.send(req, token)
}

func (e *testEnv) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// upload posts a multipart form with a single "image" part
func (e *testEnv) upload(t *testing.T, path, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.send(req, token)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorBody struct {
	Status  string              `json:"status"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func jpegImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10)), nil))
	return buf.Bytes()
}

func imageKey(url string) string {
	return strings.TrimPrefix(url, mediaURL)
}
