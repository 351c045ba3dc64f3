package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/validator"
)

// --- mock services ---

type mockAuthService struct {
	registerFn func(name, email, password string, monthlyIncome *float64, accountType models.AccountType) (string, *models.User, error)
	loginFn    func(email, password string) (string, *models.User, error)
	resolveFn  func(token string) (*models.User, error)
}

func (m *mockAuthService) Register(name, email, password string, monthlyIncome *float64, accountType models.AccountType) (string, *models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(name, email, password, monthlyIncome, accountType)
	}
	return "token", &models.User{}, nil
}

func (m *mockAuthService) Login(email, password string) (string, *models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(email, password)
	}
	return "token", &models.User{}, nil
}

func (m *mockAuthService) Resolve(token string) (*models.User, error) {
	if m.resolveFn != nil {
		return m.resolveFn(token)
	}
	return &models.User{}, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup", handler.Signup)
	r.POST("/auth/signin", handler.Signin)
	r.GET("/auth/me", injectUser(&models.User{Base: models.Base{ID: 1}, Name: "Alice", Email: "alice@example.com"}), handler.Me)
	return r
}

func injectUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		authSvc := &mockAuthService{
			registerFn: func(name, email, _ string, _ *float64, _ models.AccountType) (string, *models.User, error) {
				return "tok-123", &models.User{
					Base:        models.Base{ID: 1},
					Name:        name,
					Email:       email,
					AccountType: models.AccountTypeIndividual,
				}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(authSvc))

		rec := doRequest(r, "POST", "/auth/signup",
			`{"name":"Alice","email":"alice@example.com","password":"password123"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] != "tok-123" {
			t.Errorf("expected token tok-123, got %v", result["token"])
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %v", user["email"])
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/signup", `{"name":"Alice","password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/signup",
			`{"name":"Alice","email":"alice@example.com","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad account type", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/signup",
			`{"name":"Alice","email":"alice@example.com","password":"password123","account_type":"corporate"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		authSvc := &mockAuthService{
			registerFn: func(_, _, _ string, _ *float64, _ models.AccountType) (string, *models.User, error) {
				return "", nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(authSvc))

		rec := doRequest(r, "POST", "/auth/signup",
			`{"name":"Alice","email":"dup@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Signin(t *testing.T) {
	t.Run("returns 200 with token", func(t *testing.T) {
		authSvc := &mockAuthService{
			loginFn: func(email, _ string) (string, *models.User, error) {
				return "tok-456", &models.User{Base: models.Base{ID: 2}, Email: email}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(authSvc))

		rec := doRequest(r, "POST", "/auth/signin",
			`{"email":"alice@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["token"] != "tok-456" {
			t.Error("expected the issued token in the response")
		}
	})

	t.Run("returns 401 on bad credentials", func(t *testing.T) {
		authSvc := &mockAuthService{
			loginFn: func(_, _ string) (string, *models.User, error) {
				return "", nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(authSvc))

		rec := doRequest(r, "POST", "/auth/signin",
			`{"email":"alice@example.com","password":"wrong-password"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns the resolved user", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["email"] != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %v", result["email"])
		}
		if _, leaked := result["password"]; leaked {
			t.Error("password must never appear in responses")
		}
	})
}
