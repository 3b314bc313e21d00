package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/api"
	"app/internal/infra/storage"
	"app/internal/usecase"
)

type uuidGen struct{}

func (uuidGen) NewID() string { return uuid.NewString() }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// リモートAPI（Auth/Catalog/Customer/Order）の偽サーバー。
type fakeRemote struct {
	mux      *http.ServeMux
	token    string
	placed   int
	lastIdem string
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "role": "CUSTOMER", "exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("remote_secret"))
	require.NoError(t, err)

	f := &fakeRemote{mux: http.NewServeMux(), token: signed}

	f.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": f.token, "role": "CUSTOMER", "name": "Saree Fan",
			"email": body["email"], "userId": 1, "customerId": 9,
		})
	})
	f.mux.HandleFunc("GET /sarees", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 3, "title": "Green Silk", "fabric": "Silk", "color": "Green",
				"sellingPrice": 1800, "stockQuantity": 4},
		})
	})
	f.mux.HandleFunc("GET /sarees/3", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 3, "title": "Green Silk", "fabric": "Silk", "color": "Green",
			"sellingPrice": 1800, "stockQuantity": 4,
		})
	})
	f.mux.HandleFunc("GET /customers/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 9, "name": "Saree Fan", "phoneNumber": "9876543210",
			"email": "saree@example.com", "address": "12 Temple Road",
		})
	})
	f.mux.HandleFunc("POST /orders/place-order", func(w http.ResponseWriter, r *http.Request) {
		f.placed++
		f.lastIdem = r.Header.Get("Idempotency-Key")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"order":   map[string]any{"id": 100, "status": "PLACED"},
		})
	})
	f.mux.HandleFunc("GET /orders/my-orders", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})

	return f
}

// アプリ一式を実物で組み立てて、echoをテストサーバーとして立てる。
type testApp struct {
	srv    *httptest.Server
	remote *fakeRemote
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	remote := newFakeRemote(t)
	remoteSrv := httptest.NewServer(remote.mux)
	t.Cleanup(remoteSrv.Close)

	state, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	client := api.NewClient(remoteSrv.URL, 5*time.Second)
	store, err := usecase.NewStore(
		state,
		api.NewAuthClient(client),
		api.NewCustomerClient(client),
		api.NewOrderClient(client),
		"CUSTOMER",
		uuidGen{},
		realClock{},
	)
	require.NoError(t, err)

	catalog := usecase.NewCatalogUsecase(api.NewCatalogClient(client))

	e := New(config.Config{}, Handlers{
		Session:  handler.NewSessionHandler(store),
		Cart:     handler.NewCartHandler(store, catalog),
		Checkout: handler.NewCheckoutHandler(store),
		Catalog:  handler.NewCatalogHandler(catalog),
		Order:    handler.NewOrderHandler(store),
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &testApp{srv: srv, remote: remote}
}

func (a *testApp) doJSON(t *testing.T, method, path string, in any, out any) int {
	t.Helper()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, body)
	require.NoError(t, err)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(data, out), "body: %s", string(data))
	}
	return resp.StatusCode
}

func TestRoutes_GuardedEndpointsRequireSession(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, 401, app.doJSON(t, http.MethodGet, "/cart", nil, nil))
	assert.Equal(t, 401, app.doJSON(t, http.MethodPost, "/checkout/start", nil, nil))
	assert.Equal(t, 401, app.doJSON(t, http.MethodGet, "/orders", nil, nil))

	//カタログとセッションは公開
	assert.Equal(t, 200, app.doJSON(t, http.MethodGet, "/sarees", nil, nil))
	assert.Equal(t, 200, app.doJSON(t, http.MethodGet, "/session", nil, nil))
}

// 未ログインで商品を追加 → ログイン → 保留アイテムがカートに入り、元の場所へ戻される。
func TestRoutes_PendingItemHandoffAcrossLogin(t *testing.T) {
	app := newTestApp(t)

	var addOut struct {
		LoginRequired bool `json:"login_required"`
	}
	status := app.doJSON(t, http.MethodPost, "/cart/items", map[string]any{
		"saree_id": 3, "quantity": 2, "return_to": "/sarees/3",
	}, &addOut)
	require.Equal(t, 401, status)
	assert.True(t, addOut.LoginRequired)

	var loginOut struct {
		Name       string `json:"name"`
		RedirectTo string `json:"redirect_to"`
		Notice     string `json:"notice"`
	}
	status = app.doJSON(t, http.MethodPost, "/session/login", map[string]string{
		"email": "saree@example.com", "password": "pw",
	}, &loginOut)
	require.Equal(t, 200, status)
	assert.Equal(t, "Saree Fan", loginOut.Name)
	assert.Equal(t, "/sarees/3", loginOut.RedirectTo)
	assert.Contains(t, loginOut.Notice, "Green Silk")

	var cart struct {
		TotalItemCount int64  `json:"total_item_count"`
		Subtotal       string `json:"subtotal"`
	}
	status = app.doJSON(t, http.MethodGet, "/cart", nil, &cart)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(2), cart.TotalItemCount)
	assert.Equal(t, "3600", cart.Subtotal)
}

// ログインから注文確定までの一連の流れ。
func TestRoutes_FullCheckoutFlow(t *testing.T) {
	app := newTestApp(t)

	status := app.doJSON(t, http.MethodPost, "/session/login", map[string]string{
		"email": "saree@example.com", "password": "pw",
	}, nil)
	require.Equal(t, 200, status)

	status = app.doJSON(t, http.MethodPost, "/cart/items", map[string]any{"saree_id": 3}, nil)
	require.Equal(t, 200, status)

	var view struct {
		Stage string `json:"stage"`
		Total string `json:"total"`
	}
	status = app.doJSON(t, http.MethodPost, "/checkout/start", nil, &view)
	require.Equal(t, 200, status)
	assert.Equal(t, "delivery_info", view.Stage)
	assert.Equal(t, "1800", view.Total)

	status = app.doJSON(t, http.MethodPost, "/checkout/next", nil, &view)
	require.Equal(t, 200, status)
	assert.Equal(t, "order_process", view.Stage)

	status = app.doJSON(t, http.MethodPost, "/checkout/next", nil, &view)
	require.Equal(t, 200, status)
	assert.Equal(t, "review", view.Stage)

	var placed struct {
		Order struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
	}
	status = app.doJSON(t, http.MethodPost, "/checkout/place-order", nil, &placed)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(100), placed.Order.ID)
	assert.Equal(t, 1, app.remote.placed)
	assert.NotEmpty(t, app.remote.lastIdem)

	//注文後はカートは空
	var cart struct {
		TotalItemCount int64 `json:"total_item_count"`
	}
	status = app.doJSON(t, http.MethodGet, "/cart", nil, &cart)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(0), cart.TotalItemCount)
}
