package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/container"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
}

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	c      *container.Container
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{
		AppName:         "storefront-test",
		Env:             "test",
		StoreDriver:     "memory",
		JWTSecret:       "router-secret",
		SessionTTL:      time.Hour,
		BcryptCost:      4,
		MailSendEnabled: true,
	}
	c, err := container.New(context.Background(), cfg, helpers.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return &testAPI{t: t, engine: r, c: c}
}

type requestOpt func(*http.Request)

func bearer(token string) requestOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func cookie(token string) requestOpt {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token}) }
}

func (a *testAPI) do(method, path string, body any, opts ...requestOpt) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

// session creates an account directly and returns a bearer token for it.
func (a *testAPI) session(email string, role entity.Role) string {
	a.t.Helper()
	ctx := context.Background()
	_, err := a.c.Auth.Register(ctx, application.RegisterInput{Name: "T", Email: email, Password: "secret1", Role: role})
	require.NoError(a.t, err)
	_, sess, err := a.c.Auth.Login(ctx, email, "secret1")
	require.NoError(a.t, err)
	return sess.Token
}

func (a *testAPI) createProduct(admin, name, price, category string) string {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/products", gin.H{"name": name, "price": price, "category": category, "description": "d"}, bearer(admin))
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var data struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.Product.ID
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == helpers.SessionCookieName {
			return c
		}
	}
	return nil
}

type userData struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

func TestRegisterLoginProfile(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodPost, "/api/auth/register", gin.H{"name": "Alice", "email": "Alice@Example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg userData
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.Equal(t, "standard", reg.User.Role)
	assert.NotEmpty(t, reg.Token)
	require.NotNil(t, sessionCookie(rec))
	assert.False(t, sessionCookie(rec).HttpOnly, "HttpOnly only in production")

	rec, env = api.do(http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login userData
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, reg.User.ID, login.User.ID)

	for name, opt := range map[string]requestOpt{"bearer": bearer(login.Token), "cookie": cookie(login.Token)} {
		t.Run(name, func(t *testing.T) {
			rec, env := api.do(http.MethodGet, "/api/auth/profile", nil, opt)
			require.Equal(t, http.StatusOK, rec.Code)
			var prof userData
			require.NoError(t, json.Unmarshal(env.Data, &prof))
			assert.Equal(t, "alice@example.com", prof.User.Email)
			assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), env.RequestID)
		})
	}
}

func TestProfileRejectsBadTokens(t *testing.T) {
	api := newTestAPI(t)
	foreign, _, _, err := helpers.NewJWTManager("someone-else", time.Hour).Generate(helpers.SessionSubject{AccountID: "a1", Email: "x@y.z", Role: "standard"})
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []requestOpt
		msg  string
	}{
		{name: "missing", msg: "no token provided"},
		{name: "garbage", opts: []requestOpt{bearer("not-a-jwt")}, msg: "invalid token"},
		{name: "foreign secret", opts: []requestOpt{bearer(foreign)}, msg: "invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(http.MethodGet, "/api/auth/profile", nil, tt.opts...)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.msg, env.Message)
		})
	}
}

func TestLoginFailures(t *testing.T) {
	api := newTestAPI(t)
	api.session("bob@example.com", entity.RoleStandard)

	rec, env := api.do(http.MethodPost, "/api/auth/login", gin.H{"email": "nobody@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email is not registered", env.Message)

	rec, env = api.do(http.MethodPost, "/api/auth/login", gin.H{"email": "bob@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid password", env.Message)
	assert.Nil(t, sessionCookie(rec))

	rec, env = api.do(http.MethodPost, "/api/auth/login", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "password")
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodPost, "/api/auth/register", gin.H{"name": "C", "email": "c@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "min length 6")

	rec, _ = api.do(http.MethodPost, "/api/auth/register", gin.H{"name": "C", "email": "c@example.com", "password": "secret1", "role": "root"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/auth/register", gin.H{"name": "C", "email": "c@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, env = api.do(http.MethodPost, "/api/auth/register", gin.H{"name": "C2", "email": "C@EXAMPLE.COM", "password": "secret2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "account already exists", env.Message)
}

func TestRegisterAdminRequiresAdminSession(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)
	standard := api.session("user@example.com", entity.RoleStandard)
	body := gin.H{"name": "Eve", "email": "eve@example.com", "password": "secret1", "role": "admin"}

	rec, _ := api.do(http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/auth/register", body, bearer(standard))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := api.do(http.MethodPost, "/api/auth/register", body, bearer(admin))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg userData
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.Equal(t, "admin", reg.User.Role)
	assert.Nil(t, sessionCookie(rec), "admin keeps their own session")
}

func TestLogoutClearsCookie(t *testing.T) {
	api := newTestAPI(t)
	token := api.session("dan@example.com", entity.RoleStandard)

	rec, env := api.do(http.MethodPost, "/api/auth/logout", nil, cookie(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)

	rec, _ = api.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAccounts(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)
	standard := api.session("user@example.com", entity.RoleStandard)
	body := gin.H{"name": "Ops", "email": "ops@example.com", "password": "secret1", "role": "admin"}

	rec, _ := api.do(http.MethodPost, "/api/admin/accounts", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, _ = api.do(http.MethodPost, "/api/admin/accounts", body, bearer(standard))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := api.do(http.MethodPost, "/api/admin/accounts", body, bearer(admin))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created userData
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "admin", created.User.Role)
	assert.Empty(t, created.Token)
}

func TestAdminEmails(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)
	body := gin.H{"to": "c@example.com", "template": "welcome"}

	rec, _ := api.do(http.MethodPost, "/api/admin/emails", body, bearer(admin))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "no queue configured")

	rec, _ = api.do(http.MethodPost, "/api/admin/emails", gin.H{"to": "c@example.com", "template": "nope"}, bearer(admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.c.Config.MailSendEnabled = false
	rec, env := api.do(http.MethodPost, "/api/admin/emails", body, bearer(admin))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"enqueued":false,"disabled":true}`, string(env.Data))
}

type productData struct {
	Product struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Price    decimal.Decimal `json:"price"`
		Category string          `json:"category"`
	} `json:"product"`
}

type productsData struct {
	Products []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"products"`
}

func TestCatalogMutationsAreAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	standard := api.session("user@example.com", entity.RoleStandard)
	body := gin.H{"name": "Lamp", "price": "10.50", "category": "Furniture"}

	rec, _ := api.do(http.MethodPost, "/api/products", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, env := api.do(http.MethodPost, "/api/products", body, bearer(standard))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access denied", env.Message)

	rec, env = api.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list productsData
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list.Products)
}

func TestCatalogCRUD(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)

	lamp := api.createProduct(admin, "Desk Lamp", "10.50", "Furniture")
	api.createProduct(admin, "Phone", "299.00", "Electronics")

	rec, env := api.do(http.MethodGet, "/api/products/"+lamp, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got productData
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Desk Lamp", got.Product.Name)
	assert.True(t, decimal.RequireFromString("10.50").Equal(got.Product.Price))

	rec, env = api.do(http.MethodPut, "/api/products/"+lamp, gin.H{"price": "12"}, bearer(admin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Desk Lamp", got.Product.Name)
	assert.True(t, decimal.NewFromInt(12).Equal(got.Product.Price))

	rec, _ = api.do(http.MethodPut, "/api/products/"+lamp, gin.H{"category": "Spaceships"}, bearer(admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = api.do(http.MethodGet, "/api/products/filter?category=Furniture&min_price=11", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list productsData
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Products, 1)
	assert.Equal(t, lamp, list.Products[0].ID)

	rec, env = api.do(http.MethodGet, "/api/products/filter?maxPrice=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list.Products)

	rec, _ = api.do(http.MethodGet, "/api/products/filter?min_price=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = api.do(http.MethodGet, "/api/products/search?q=lamp", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Desk Lamp", list.Products[0].Name)

	rec, _ = api.do(http.MethodDelete, "/api/products/"+lamp, nil, bearer(admin))
	require.Equal(t, http.StatusOK, rec.Code)
	rec, env = api.do(http.MethodGet, "/api/products/"+lamp, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product not found", env.Message)
	rec, _ = api.do(http.MethodDelete, "/api/products/"+lamp, nil, bearer(admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadImageWithoutStore(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)
	id := api.createProduct(admin, "Lamp", "1", "Furniture")

	rec, _ := api.do(http.MethodPost, "/api/products/"+id+"/image", nil, bearer(admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing multipart field")
}

type cartData struct {
	Cart []struct {
		ProductID string          `json:"product_id"`
		Quantity  int             `json:"quantity"`
		Subtotal  decimal.Decimal `json:"subtotal"`
		Product   *struct {
			Name string `json:"name"`
		} `json:"product"`
	} `json:"cart"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	OrderID   string          `json:"order_id"`
}

func decodeCart(t *testing.T, env envelope) cartData {
	t.Helper()
	var c cartData
	require.NoError(t, json.Unmarshal(env.Data, &c))
	return c
}

func TestCartFlow(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)
	alice := api.session("alice@example.com", entity.RoleStandard)
	lamp := api.createProduct(admin, "Lamp", "10.50", "Furniture")
	pen := api.createProduct(admin, "Pen", "2.25", "Books")

	rec, env := api.do(http.MethodGet, "/api/cart", nil, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, env).Cart)

	api.do(http.MethodPost, "/api/cart", gin.H{"product_id": lamp, "quantity": 2}, bearer(alice))
	api.do(http.MethodPost, "/api/cart", gin.H{"product_id": lamp, "quantity": 3}, bearer(alice))
	rec, env = api.do(http.MethodPost, "/api/cart", gin.H{"product_id": pen, "quantity": 1}, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, env)
	require.Len(t, cart.Cart, 2)
	assert.Equal(t, lamp, cart.Cart[0].ProductID)
	assert.Equal(t, 5, cart.Cart[0].Quantity)
	assert.Equal(t, "Lamp", cart.Cart[0].Product.Name)
	assert.True(t, decimal.RequireFromString("54.75").Equal(cart.Total), cart.Total.String())
	assert.Equal(t, 6, cart.ItemCount)

	rec, env = api.do(http.MethodPatch, "/api/cart/"+lamp, nil, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decodeCart(t, env).Cart[0].Quantity)

	rec, env = api.do(http.MethodDelete, "/api/cart/"+pen, nil, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeCart(t, env).Cart, 1)
	rec, _ = api.do(http.MethodDelete, "/api/cart/"+pen, nil, bearer(alice))
	assert.Equal(t, http.StatusOK, rec.Code, "remove is idempotent")

	rec, env = api.do(http.MethodPatch, "/api/cart/"+pen, nil, bearer(alice))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product not in cart", env.Message)

	rec, env = api.do(http.MethodDelete, "/api/cart", nil, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, env).Cart)
}

func TestCartRejectsBadInput(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)
	alice := api.session("alice@example.com", entity.RoleStandard)
	lamp := api.createProduct(admin, "Lamp", "10.50", "Furniture")

	rec, _ := api.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := api.do(http.MethodPost, "/api/cart", gin.H{"product_id": lamp, "quantity": 0}, bearer(alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "quantity")

	rec, _ = api.do(http.MethodPost, "/api/cart", gin.H{"product_id": lamp, "quantity": -2}, bearer(alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = api.do(http.MethodPost, "/api/cart", gin.H{"product_id": lamp, "quantity": 3000000000}, bearer(alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "quantity")

	rec, _ = api.do(http.MethodPost, "/api/cart", gin.H{"product_id": lamp, "quantity": 10000}, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = api.do(http.MethodPost, "/api/cart", gin.H{"product_id": lamp, "quantity": 1}, bearer(alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	api.do(http.MethodDelete, "/api/cart", nil, bearer(alice))

	rec, env = api.do(http.MethodPost, "/api/cart", gin.H{"quantity": 1}, bearer(alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "product_id")

	rec, env = api.do(http.MethodPost, "/api/cart", gin.H{"product_id": "missing", "quantity": 1}, bearer(alice))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product not found", env.Message)

	rec, env = api.do(http.MethodGet, "/api/cart", nil, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, env).Cart)
}

func TestCartAcceptsCamelCaseProductID(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)
	alice := api.session("alice@example.com", entity.RoleStandard)
	lamp := api.createProduct(admin, "Lamp", "10.50", "Furniture")

	for i := 0; i < 2; i++ {
		rec, _ := api.do(http.MethodPost, "/api/cart", gin.H{"productId": lamp, "quantity": 1}, bearer(alice))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec, env := api.do(http.MethodGet, "/api/cart", nil, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, env)
	require.Len(t, cart.Cart, 1)
	assert.Equal(t, lamp, cart.Cart[0].ProductID)
	assert.Equal(t, 2, cart.Cart[0].Quantity)
}

func TestCheckout(t *testing.T) {
	api := newTestAPI(t)
	admin := api.session("root@example.com", entity.RoleAdmin)
	alice := api.session("alice@example.com", entity.RoleStandard)
	lamp := api.createProduct(admin, "Lamp", "10.50", "Furniture")

	rec, env := api.do(http.MethodPost, "/api/cart/checkout", nil, bearer(alice))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cart is empty", env.Message)

	api.do(http.MethodPost, "/api/cart", gin.H{"product_id": lamp, "quantity": 2}, bearer(alice))
	rec, env = api.do(http.MethodPost, "/api/cart/checkout", nil, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	order := decodeCart(t, env)
	assert.NotEmpty(t, order.OrderID)
	assert.True(t, decimal.NewFromInt(21).Equal(order.Total))
	require.Len(t, order.Cart, 1)

	rec, env = api.do(http.MethodGet, "/api/cart", nil, bearer(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, env).Cart)
}

func TestDebugVarsToggle(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	rec := httptest.NewRecorder()
	api.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	api.c.Config.DebugMetricsEnabled = true
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg, api.c)
	reg.RegisterAll()
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "memstats")
}

func TestRegisterAllIsIdempotent(t *testing.T) {
	api := newTestAPI(t)
	reg := NewRegistry(gin.New())
	InitModules(reg, api.c)

	reg.RegisterAll()
	assert.NotPanics(t, reg.RegisterAll)
}
