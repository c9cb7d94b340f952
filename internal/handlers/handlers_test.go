package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nmm-portal/nmm-api/config"
	"github.com/nmm-portal/nmm-api/internal/cache"
	"github.com/nmm-portal/nmm-api/internal/database/memory"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/services"
	"github.com/nmm-portal/nmm-api/internal/validation"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filesURL = "/api/v1/files"

var (
	translatorOnce sync.Once
	translator     *i18n.Translator
)

func init() {
	gin.SetMode(gin.TestMode)

	if err := logger.Initialize(logger.Config{Level: "debug", Environment: "development"}); err != nil {
		panic(err)
	}
}

func testTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	translatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		require.True(t, ok)
		require.NoError(t, validation.RegisterBindingValidators(v))
		tr, err := i18n.New(v)
		require.NoError(t, err)
		translator = tr
	})
	return translator
}

// newTestRouter wires the real services over the seeded in-memory store
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	tr := testTranslator(t)

	cfg := &config.Config{
		Server: config.ServerConfig{AppEnv: "development"},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-that-is-at-least-32-characters",
			JWTIssuer:       "nmm-api-test",
			SessionTTLHours: 24,
			CookieName:      "nmm_session",
		},
		OTP: config.OTPConfig{TTLMinutes: 5},
	}

	store := memory.NewStore()
	files := storage.NewMemoryStore(filesURL)
	dashboards := cache.NewDashboardCache(60)
	categories := cache.NewCategoryCache(store, 60)

	authService := services.NewAuthService(store, cache.NewOTPStore(5*time.Minute), cfg, nil)

	h := Handlers{
		Auth:         NewAuthHandler(authService, tr),
		Registration: NewRegistrationHandler(services.NewRegistrationService(store, files, dashboards, nil), tr),
		Dashboard:    NewDashboardHandler(services.NewDashboardService(store, store, dashboards), tr),
		Sessions:     NewSessionHandler(services.NewSessionService(store, store, dashboards), tr),
		Resources:    NewResourceHandler(services.NewResourceService(store, files, categories), tr),
		Helpdesk:     NewHelpdeskHandler(services.NewHelpdeskService(store, nil), tr),
		Preferences:  NewPreferencesHandler(services.NewPreferencesService(services.NewMemoryPreferenceStore()), tr, "", false),
		Meta:         NewMetaHandler(),
	}

	router := gin.New()
	router.GET("/api/healthcheck", NewHealthHandler(store).Healthcheck)
	RegisterV1Routes(router.Group("/api/v1"), h, authService, RateLimits{})
	return router
}

type request struct {
	method  string
	path    string
	body    any
	token   string
	cookies []*http.Cookie
	headers map[string]string
}

func do(t *testing.T, router *gin.Engine, r request) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	switch b := r.body.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case string:
		body = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func login(t *testing.T, router *gin.Engine, identifier, role string) string {
	t.Helper()
	w := do(t, router, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/login",
		body:   map[string]string{"emailOrMobile": identifier, "password": "anything", "role": role},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, ok := decode(t, w)["token"].(string)
	require.True(t, ok)
	return token
}

type part struct {
	field       string
	fileName    string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string][]string, files []part) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.fileName))
		header.Set("Content-Type", f.contentType)
		w, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = w.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	t.Run("success sets cookie and redirect", func(t *testing.T) {
		w := do(t, router, request{
			method: http.MethodPost,
			path:   "/api/v1/auth/login",
			body:   map[string]string{"emailOrMobile": "mentor@example.com", "password": "x", "role": "mentor"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		assert.Equal(t, "/mentor/dashboard", resp["redirectTo"])
		assert.NotEmpty(t, resp["token"])
		assert.Contains(t, w.Header().Get("Set-Cookie"), "nmm_session=")
	})

	t.Run("wrong role", func(t *testing.T) {
		w := do(t, router, request{
			method: http.MethodPost,
			path:   "/api/v1/auth/login",
			body:   map[string]string{"emailOrMobile": "mentor@example.com", "password": "x", "role": "mentee"},
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials or role"}`, w.Body.String())
	})

	t.Run("validation details in hindi", func(t *testing.T) {
		w := do(t, router, request{
			method:  http.MethodPost,
			path:    "/api/v1/auth/login",
			body:    map[string]string{},
			headers: map[string]string{"Accept-Language": "hi-IN,hi;q=0.9"},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		assert.Equal(t, "सत्यापन विफल रहा", resp["error"])
		details, ok := resp["details"].([]any)
		require.True(t, ok)
		require.Len(t, details, 3)
		first := details[0].(map[string]any)
		assert.Equal(t, "emailOrMobile", first["field"])
		assert.Equal(t, "ईमेल या मोबाइल नंबर आवश्यक है", first["message"])
	})

	t.Run("malformed body", func(t *testing.T) {
		w := do(t, router, request{method: http.MethodPost, path: "/api/v1/auth/login", body: "{"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
	})
}

func TestRequestOTP(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/otp",
		body:   map[string]string{"mobile": "9876543210", "role": "mentee"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])

	w = do(t, router, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/otp",
		body:   map[string]string{"mobile": "12345", "role": "teacher"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decode(t, w)["details"].([]any)
	require.Len(t, details, 2)
	assert.Equal(t, "mobile", details[0].(map[string]any)["field"])
	assert.Equal(t, "role", details[1].(map[string]any)["field"])
}

func TestSessionAndLogout(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodGet, path: "/api/v1/auth/session"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, router, "mentee@example.com", "mentee")
	w = do(t, router, request{
		method:  http.MethodGet,
		path:    "/api/v1/auth/session",
		cookies: []*http.Cookie{{Name: "nmm_session", Value: token}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "/mentee/dashboard", resp["redirectTo"])
	assert.Equal(t, "1", resp["session"].(map[string]any)["userId"])

	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/auth/logout"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "nmm_session=;")
}

func validRegistration() map[string]any {
	return map[string]any{
		"role":        "mentee",
		"name":        "Asha Nair",
		"email":       "asha@example.com",
		"mobile":      "9123456789",
		"dateOfBirth": "1992-04-01",
		"gender":      "Female",
		"address": map[string]string{
			"state": "Kerala", "district": "Ernakulam", "pincode": "682001",
		},
		"academicQualification": "B.Ed",
		"schoolName":            "Govt School",
	}
}

func TestRegister_JSON(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodPost, path: "/api/v1/register", body: validRegistration()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Asha Nair", resp["user"].(map[string]any)["name"])

	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/register", body: validRegistration()})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"User already exists with this email or mobile"}`, w.Body.String())

	// the new account can sign in
	login(t, router, "asha@example.com", "mentee")
}

func TestRegister_ValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	body := validRegistration()
	body["role"] = "mentor"
	w := do(t, router, request{method: http.MethodPost, path: "/api/v1/register", body: body})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Validation failed", resp["error"])
	details := resp["details"].([]any)
	require.Len(t, details, 2)
	assert.Equal(t, "designation", details[0].(map[string]any)["field"])
	assert.Equal(t, "required", details[0].(map[string]any)["code"])
}

func TestRegister_Multipart(t *testing.T) {
	router := newTestRouter(t)

	fields := map[string][]string{
		"role":                   {"mentor"},
		"name":                   {"Meera Iyer"},
		"email":                  {"meera@example.com"},
		"mobile":                 {"9000000001"},
		"dateOfBirth":            {"1980-01-01"},
		"gender":                 {"Female"},
		"address.state":          {"Tamil Nadu"},
		"address.district":       {"Chennai"},
		"address.pincode":        {"600001"},
		"designation":            {"Lecturer"},
		"professionalExperience": {"9"},
		"areasOfMentoring":       {"Pedagogy", "Assessment"},
	}
	files := []part{
		{field: "photo", fileName: "me.png", contentType: "image/png", data: []byte("png")},
		{field: "supportingDocuments", fileName: "a.pdf", contentType: "application/pdf", data: []byte("pdf")},
	}
	body, contentType := multipartBody(t, fields, files)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode(t, w)["user"].(map[string]any)
	photo, ok := user["photo"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(photo, filesURL+"/photos/"), photo)

	w = do(t, router, request{method: http.MethodGet, path: photo})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestRegister_MultipartUnknownField(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartBody(t, map[string][]string{"favouriteColour": {"blue"}}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decode(t, w)["details"].([]any)
	assert.Equal(t, "favouriteColour", details[0].(map[string]any)["field"])
}

func TestRegister_Validate(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodPost, path: "/api/v1/register/validate", body: validRegistration()})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true,"errors":{}}`, w.Body.String())

	body := validRegistration()
	delete(body, "name")
	body["email"] = "nope"
	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/register/validate", body: body})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["valid"])
	assert.Equal(t, map[string]any{
		"name":  "Name is required",
		"email": "Invalid email format",
	}, resp["errors"])
}

func TestDashboard(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodGet, path: "/api/v1/dashboard"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, router, "mentee@example.com", "mentee")
	w = do(t, router, request{method: http.MethodGet, path: "/api/v1/dashboard", token: token})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Contains(t, resp, "stats")
}

func TestSessions(t *testing.T) {
	router := newTestRouter(t)
	mentee := login(t, router, "mentee@example.com", "mentee")
	mentor := login(t, router, "mentor@example.com", "mentor")

	w := do(t, router, request{method: http.MethodGet, path: "/api/v1/sessions", token: mentee})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	w = do(t, router, request{method: http.MethodGet, path: "/api/v1/sessions/export", token: mentee})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(w.Body.String(), "id,title,mentorName"))

	create := map[string]any{"title": "Assessment design", "area": "Assessment", "resourceIds": []string{"1"}}
	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/sessions", token: mentee, body: create})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/sessions", token: mentor, body: create})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.Equal(t, "upcoming", created["status"])

	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/sessions/" + id + "/attend", token: mentor})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/sessions/" + id + "/attend", token: mentee})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, request{
		method: http.MethodPost, path: "/api/v1/sessions/" + id + "/feedback", token: mentee,
		body: map[string]any{"rating": 9},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, request{
		method: http.MethodPost, path: "/api/v1/sessions/" + id + "/feedback", token: mentee,
		body: map[string]any{"rating": 4, "comments": "Useful"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, request{
		method: http.MethodPost, path: "/api/v1/sessions/missing/attend", token: mentee,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResources(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodGet, path: "/api/v1/resources?type=spreadsheet"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, request{method: http.MethodGet, path: "/api/v1/resources?category=Teaching+Strategies"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.EqualValues(t, 2, resp["total"])
	assert.Equal(t, "All Categories", resp["categories"].([]any)[0])

	token := login(t, router, "mentor@example.com", "mentor")
	body, contentType := multipartBody(t,
		map[string][]string{"title": {"Lesson plan"}, "category": {"Lesson Planning"}},
		[]part{{field: "file", fileName: "plan.pdf", contentType: "application/pdf", data: []byte("%PDF")}},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "pdf", created["type"])

	w = do(t, router, request{method: http.MethodGet, path: created["url"].(string)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF", w.Body.String())

	w = do(t, router, request{method: http.MethodGet, path: "/api/v1/resources?category=Lesson+Planning&search=lesson"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["categories"], "Lesson Planning")

	w = do(t, router, request{method: http.MethodGet, path: filesURL + "/resources/missing.pdf"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResources_UploadWithoutFile(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "mentor@example.com", "mentor")

	body, contentType := multipartBody(t, map[string][]string{"title": {"Empty"}}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decode(t, w)["details"].([]any)
	assert.Equal(t, "file", details[0].(map[string]any)["field"])
}

func TestHelpdesk(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodGet, path: "/api/v1/helpdesk/tickets?status=Open"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	for _, tk := range resp["tickets"].([]any) {
		assert.Equal(t, "Open", tk.(map[string]any)["status"])
	}
	assert.Len(t, resp["priorities"], 4)

	ticket := map[string]string{
		"title": "Cannot upload video", "category": "Technical", "priority": "High", "description": "Upload stalls at 90%",
	}
	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/helpdesk/tickets", body: ticket})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mentee := login(t, router, "mentee@example.com", "mentee")
	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/helpdesk/tickets", token: mentee, body: ticket})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Regexp(t, `^HD-\d{4}-\d{3}$`, created["id"])
	assert.Equal(t, "Open", created["status"])
	assert.Equal(t, "Priya Sharma", created["submittedBy"])

	bad := map[string]string{"title": "x", "category": "Other", "priority": "High", "description": "y"}
	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/helpdesk/tickets", token: mentee, body: bad})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "category", decode(t, w)["details"].([]any)[0].(map[string]any)["field"])

	blank := map[string]string{"title": "   ", "category": "Technical", "priority": "High", "description": "   "}
	w = do(t, router, request{method: http.MethodPost, path: "/api/v1/helpdesk/tickets", token: mentee, body: blank})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	fields := []string{}
	for _, d := range decode(t, w)["details"].([]any) {
		detail := d.(map[string]any)
		fields = append(fields, detail["field"].(string))
		assert.Equal(t, "notblank", detail["code"])
	}
	assert.Equal(t, []string{"title", "description"}, fields)

	w = do(t, router, request{
		method: http.MethodPost, path: "/api/v1/helpdesk/tickets/" + created["id"].(string) + "/status",
		token: mentee, body: map[string]string{"status": "Resolved"},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPreferences_Anonymous(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodGet, path: "/api/v1/preferences"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"theme":"light","fontSizeLevel":0,"highContrast":false,"dyslexiaFont":false,"language":"en"}`, w.Body.String())

	var client *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == ClientCookieName {
			client = c
		}
	}
	require.NotNil(t, client)

	w = do(t, router, request{
		method: http.MethodPut, path: "/api/v1/preferences", cookies: []*http.Cookie{client},
		body: map[string]any{"theme": "dark", "fontSizeLevel": 5},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, request{method: http.MethodGet, path: "/api/v1/preferences", cookies: []*http.Cookie{client}})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "dark", resp["theme"])
	assert.EqualValues(t, 2, resp["fontSizeLevel"])

	w = do(t, router, request{method: http.MethodPut, path: "/api/v1/preferences", body: map[string]any{"theme": "sepia"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferences_SignedInUser(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "mentee@example.com", "mentee")

	w := do(t, router, request{method: http.MethodPut, path: "/api/v1/preferences", token: token, body: map[string]any{"language": "hi"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = do(t, router, request{method: http.MethodGet, path: "/api/v1/preferences", token: token})
	assert.Equal(t, "hi", decode(t, w)["language"])
}

func TestMeta(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodGet, path: "/api/v1/meta"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Len(t, resp["roles"], 6)
	assert.Contains(t, resp["states"], "Kerala")
}

func TestHealthcheckRoute(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodGet, path: "/api/healthcheck"})
	assert.Equal(t, http.StatusOK, w.Code)
}
