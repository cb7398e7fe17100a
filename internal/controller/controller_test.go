package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coreclad-be/internal/dto"
	"coreclad-be/internal/entity"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/pkg/serverutils"
	"coreclad-be/internal/repository/memory"
	"coreclad-be/internal/service"
	"coreclad-be/pkg/admin/account"
	"coreclad-be/pkg/admin/credential"
	adminEvents "coreclad-be/pkg/admin/events"
	"coreclad-be/pkg/catalog"
	"coreclad-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@coreclad.com"
	adminPassword = "panels-4-all"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
	roof   entity.Product
	wall   entity.Product
	draft  entity.Product
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNopLogger()

	factory := memory.NewRepositoryFactory(memory.NewStore())
	uow := factory.NewUnitOfWork(ctx)

	mgr := account.NewManager(log)
	_, err := mgr.Create(ctx, uow, adminEmail, adminPassword, entity.AccountRoleAdmin)
	require.NoError(t, err)
	_, err = mgr.Create(ctx, uow, "former@coreclad.com", adminPassword, entity.AccountRoleEditor)
	require.NoError(t, err)
	_, err = mgr.SetActive(ctx, uow, "former@coreclad.com", false)
	require.NoError(t, err)

	ta := &testApp{
		t:     t,
		roof:  entity.Product{Name: "Roof Panel 50", Type: entity.ProductTypeRoof, Status: entity.ProductStatusActive},
		wall:  entity.Product{Name: "Wall Panel 80", Type: entity.ProductTypeWall, Status: entity.ProductStatusActive},
		draft: entity.Product{Name: "Cold Room Panel 120", Type: entity.ProductTypeColdRoom, Status: entity.ProductStatusDraft},
	}
	for _, p := range []*entity.Product{&ta.roof, &ta.wall, &ta.draft} {
		require.NoError(t, uow.ProductRepository().Create(ctx, p))
	}

	verifier := credential.NewVerifier(uow.AccountRepository(), log)
	persister := session.NewMemoryPersister(0)
	remover := service.NewProductRemover(factory)
	registry := session.NewRegistry(session.RegistryConfig[*catalog.View]{
		IdleTTL: time.Minute,
		NewStore: func(id string) *session.Store {
			return session.NewStore(id, verifier, persister, log)
		},
		NewView: func(id string) *catalog.View {
			return catalog.NewView(nil, remover)
		},
	})

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	publisher := adminEvents.NewNatsPublisher(nil, log)
	sync := service.NewCatalogSyncService(pubSub, service.CatalogSyncTopic, registry, nil, log)
	authService := service.NewAuthService(publisher, log, time.Second)
	productService := service.NewProductService(factory, sync, publisher, log)
	adminService := service.NewAdminService(factory, log)

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
	app.Use(serverutils.ClientCookie(false, time.Hour))
	api := app.Group("/api")
	NewAuthController(authService, registry).RegisterRoutes(api)
	NewAdminController(adminService, productService, registry, time.Second).RegisterRoutes(api)
	NewProductController(productService).RegisterRoutes(api)

	ta.app = app
	return ta
}

func (ta *testApp) do(method, path string, body interface{}) (int, envelope) {
	ta.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ta.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ta.cookie != nil {
		req.AddCookie(ta.cookie)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(ta.t, err)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == serverutils.ClientCookieName {
			ta.cookie = c
		}
	}

	var env envelope
	require.NoError(ta.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (ta *testApp) login() {
	ta.t.Helper()
	code, _ := ta.do(http.MethodPost, "/api/admin/login", dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(ta.t, http.StatusOK, code)
}

func TestLoginFlow(t *testing.T) {
	ta := newTestApp(t)

	code, _ := ta.do(http.MethodGet, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, ta.cookie)

	code, env := ta.do(http.MethodPost, "/api/admin/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Data), "password")

	code, _ = ta.do(http.MethodPost, "/api/admin/login", dto.LoginRequest{Email: adminEmail, Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = ta.do(http.MethodPost, "/api/admin/login", dto.LoginRequest{Email: "former@coreclad.com", Password: adminPassword})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = ta.do(http.MethodPost, "/api/admin/login", dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, code)
	var id dto.IdentityResponse
	require.NoError(t, json.Unmarshal(env.Data, &id))
	assert.Equal(t, adminEmail, id.Email)

	code, env = ta.do(http.MethodGet, "/api/admin/session", nil)
	require.Equal(t, http.StatusOK, code)
	var sess dto.SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	assert.Equal(t, "authenticated", sess.State)

	code, env = ta.do(http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, code)
	var stats dto.AdminDashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalAdmins)
	assert.Equal(t, 1, stats.ActiveAdmins)

	code, _ = ta.do(http.MethodPost, "/api/admin/logout", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = ta.do(http.MethodGet, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminProductWorkflow(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	code, env := ta.do(http.MethodGet, "/api/admin/products?type=roof", nil)
	require.Equal(t, http.StatusOK, code)
	var list dto.AdminProductListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, ta.roof.Id, list.Items[0].Id)
	assert.Equal(t, 3, list.Counts.Total)

	code, _ = ta.do(http.MethodGet, "/api/admin/products?type=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ta.do(http.MethodPost, "/api/admin/products/"+ta.wall.Id.String()+"/select", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ta.do(http.MethodPost, "/api/admin/products/not-a-uuid/select", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ta.do(http.MethodPost, "/api/admin/products/bulk-delete", map[string]bool{"confirm": true})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = ta.do(http.MethodPost, "/api/admin/products/"+ta.roof.Id.String()+"/select", nil)
	require.Equal(t, http.StatusOK, code)
	var sel dto.SelectionResponse
	require.NoError(t, json.Unmarshal(env.Data, &sel))
	assert.Equal(t, []uuid.UUID{ta.roof.Id}, sel.Selected)

	code, _ = ta.do(http.MethodPost, "/api/admin/products/bulk-delete", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ta.do(http.MethodPost, "/api/admin/products/bulk-delete", map[string]bool{"confirm": false})
	assert.Equal(t, http.StatusPreconditionFailed, code)

	code, env = ta.do(http.MethodPost, "/api/admin/products/bulk-delete", map[string]bool{"confirm": true})
	require.Equal(t, http.StatusOK, code)
	var deleted dto.BulkDeleteResponse
	require.NoError(t, json.Unmarshal(env.Data, &deleted))
	assert.Equal(t, []uuid.UUID{ta.roof.Id}, deleted.Deleted)
	assert.Equal(t, 1, deleted.Removed)

	// type filter is kept, the roof panel is gone
	code, env = ta.do(http.MethodGet, "/api/admin/products", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, "roof", list.Type)
	assert.Empty(t, list.Items)
	assert.Equal(t, 2, list.Counts.Total)

	code, env = ta.do(http.MethodPost, "/api/admin/products/select-all", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &sel))
	assert.Empty(t, sel.Selected)
}

func TestPublicCatalog(t *testing.T) {
	ta := newTestApp(t)

	code, env := ta.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, code)
	var products []dto.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 2)

	code, env = ta.do(http.MethodGet, "/api/products/"+ta.wall.Id.String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, _ = ta.do(http.MethodGet, "/api/products/"+ta.draft.Id.String(), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ta.do(http.MethodGet, "/api/products/xyz", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ta.do(http.MethodGet, "/api/products?type=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
