package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "e2e-secret"

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// SQLite + miniredis で全部入りのサーバーを立てる
func NewTestClient(t *testing.T, authRequired bool) *TestClient {
	t.Helper()

	gormDB, err := db.ConnectSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gormDB))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	users := infraRepo.NewUserGormRepository(gormDB)
	clock := auth.SystemClock{}

	e := server.New(server.Handlers{
		Auth: handler.NewAuthHandler(
			auth.NewRegisterUserUsecase(users, auth.NewBcryptPasswordHasher(bcrypt.MinCost), auth.UUIDGenerator{}, clock),
			auth.NewLoginUsecase(users, auth.NewBcryptPasswordVerifier(), auth.NewJWTIssuer(testSecret), clock),
		),
		Product: handler.NewProductHandler(usecase.NewProductUsecase(
			infraRepo.NewProductGormRepository(gormDB),
			cache.NewProductRedisCache(rdb, time.Minute),
		)),
		Cart:  handler.NewCartHandler(usecase.NewCartUsecase(infraRepo.NewCartGormRepository(gormDB))),
		Order: handler.NewOrderHandler(usecase.NewOrderUsecase(infraRepo.NewOrderGormRepository(gormDB))),
	}, server.Options{
		JWTSecret:    testSecret,
		AuthRequired: authRequired,
		Logger:       zerolog.Nop(),
		Ping: func(ctx context.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	ts := httptest.NewServer(e)
	t.Cleanup(func() {
		ts.Close()
		_ = rdb.Close()
		_ = db.Close(gormDB)
	})

	return &TestClient{
		BaseURL: ts.URL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserDTO   `json:"user"`
}

type ProductDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

type ProductListResponse struct {
	Success    bool         `json:"success"`
	Data       []ProductDTO `json:"data"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"totalPages"`
	} `json:"pagination"`
}

type ProductDetailResponse struct {
	Success bool       `json:"success"`
	Data    ProductDTO `json:"data"`
}

type LineItemDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Image     string  `json:"image"`
}

type CartResponse struct {
	UserID   string        `json:"userId"`
	Products []LineItemDTO `json:"products"`
}

type OrderResponse struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Products    []LineItemDTO `json:"products"`
	TotalAmount float64       `json:"totalAmount"`
	Status      string        `json:"status"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	body interface{},
	headers ...string,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := c.HTTP.Do(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(%T) failed: %v body=%s", v, err, string(body))
	}
	return v
}

// 登録してログインし、トークンとユーザーを返す
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context, email string) LoginResponse {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auths/register", "", map[string]string{
		"name": "Tester", "email": email, "password": "password123",
	})
	requireStatus(t, resp, http.StatusCreated, body)

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auths/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	requireStatus(t, resp, http.StatusOK, body)

	login := mustDecode[LoginResponse](t, body)
	if strings.TrimSpace(login.Token) == "" {
		t.Fatalf("token is empty: body=%s", string(body))
	}
	return login
}

func createProduct(t *testing.T, c *TestClient, ctx context.Context, token string, name string, price float64) ProductDTO {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/products", token, map[string]interface{}{
		"name": name, "description": "desc of " + name, "price": price, "image": name + ".png",
	})
	requireStatus(t, resp, http.StatusCreated, body)
	return mustDecode[ProductDTO](t, body)
}
