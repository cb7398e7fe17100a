package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/repository/memory"
	"coreclad-be/internal/repository/unitofwork"
	"coreclad-be/pkg/admin/account"
	"coreclad-be/pkg/admin/credential"
	"coreclad-be/pkg/catalog"
	"coreclad-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "admin@coreclad.com"
	testPassword = "panels-4-all"
)

type recordingPublisher struct {
	mu      sync.Mutex
	logins  []session.Identity
	logouts []session.Identity
	deleted [][]uuid.UUID

	// contexts handed to the login and logout publishes, in call order
	eventCtxs []context.Context
}

func (p *recordingPublisher) PublishAdminLogin(ctx context.Context, identity session.Identity, clientID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logins = append(p.logins, identity)
	p.eventCtxs = append(p.eventCtxs, ctx)
}

func (p *recordingPublisher) PublishAdminLogout(ctx context.Context, identity session.Identity, clientID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logouts = append(p.logouts, identity)
	p.eventCtxs = append(p.eventCtxs, ctx)
}

func (p *recordingPublisher) PublishProductsDeleted(ctx context.Context, actor session.Identity, ids []uuid.UUID, removed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, ids)
}

type fixture struct {
	factory   unitofwork.RepositoryFactory
	registry  *ClientRegistry
	publisher *recordingPublisher
	sync      ICatalogSyncService
	auth      IAuthService
	products  IProductService
	admin     IAdminService

	roof, wall, draft entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNopLogger()

	factory := memory.NewRepositoryFactory(memory.NewStore())
	uow := factory.NewUnitOfWork(ctx)

	_, err := account.NewManager(log).Create(ctx, uow, testEmail, testPassword, entity.AccountRoleAdmin)
	require.NoError(t, err)

	f := &fixture{
		factory:   factory,
		publisher: &recordingPublisher{},
		roof: entity.Product{
			Name: "Roof Panel 50", Description: "PIR insulated roof sheet",
			Type: entity.ProductTypeRoof, Core: "PIR", Thickness: 50,
			Status: entity.ProductStatusActive, Features: []string{"Class B-s1,d0"},
		},
		wall: entity.Product{
			Name: "Wall Panel 80", Description: "Mineral wool facade panel",
			Type: entity.ProductTypeWall, Core: "Mineral wool", Thickness: 80,
			Status: entity.ProductStatusActive,
		},
		draft: entity.Product{
			Name: "Cold Room Panel 120", Description: "Food grade finish",
			Type: entity.ProductTypeColdRoom, Core: "PIR", Thickness: 120,
			Status: entity.ProductStatusDraft,
		},
	}
	for _, p := range []*entity.Product{&f.roof, &f.wall, &f.draft} {
		require.NoError(t, uow.ProductRepository().Create(ctx, p))
	}

	verifier := credential.NewVerifier(uow.AccountRepository(), log)
	persister := session.NewMemoryPersister(0)
	remover := NewProductRemover(factory)

	f.registry = session.NewRegistry(session.RegistryConfig[*catalog.View]{
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

	f.sync = NewCatalogSyncService(pubSub, CatalogSyncTopic, f.registry, nil, log)
	f.auth = NewAuthService(f.publisher, log, time.Second)
	f.products = NewProductService(factory, f.sync, f.publisher, log)
	f.admin = NewAdminService(factory, log)
	return f
}

// client returns a registry client whose background restore has finished.
func (f *fixture) client(t *testing.T, id string) *AdminClient {
	t.Helper()
	c := f.registry.Get(id)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.False(t, c.Store.Restore(ctx).Loading)
	return c
}

func strPtr(s string) *string { return &s }
