package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"streetqr/logger"
	"streetqr/shop-svc/internal/domain"
	"streetqr/shop-svc/internal/mocks"
	"streetqr/shop-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type menuFixture struct {
	repo   *mocks.AccountRepository
	cache  *mocks.MenuCache
	hasher *mocks.CredentialHasher
	qr     *mocks.QRGenerator
	svc    *MenuService
}

func newMenuFixture(t *testing.T) *menuFixture {
	f := &menuFixture{
		repo:   mocks.NewAccountRepository(t),
		cache:  mocks.NewMenuCache(t),
		hasher: mocks.NewCredentialHasher(t),
		qr:     mocks.NewQRGenerator(t),
	}
	f.svc = NewMenuService(f.repo, f.cache, f.hasher, f.qr, logger.Discard())
	f.svc.newID = sequentialIDs("id")
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestMenuService_CreateAccount(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		email         string
		credential    string
		prepareMocks  func()
		expectedID    string
		expectedError error
	}{
		{
			name:       "success",
			email:      "  Chai@Example.com ",
			credential: "secret",
			prepareMocks: func() {
				f.repo.On("GetAccountByEmail", mock.Anything, "chai@example.com").Return(nil, domain.ErrNotFound).Once()
				f.hasher.On("Hash", "secret").Return([]byte("hashed"), nil).Once()
				f.repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *domain.ShopAccount) bool {
					return a.ID == "id-1" && a.Email == "chai@example.com" &&
						string(a.PasswordHash) == "hashed" && a.Menu != nil && a.CreatedAt.Equal(fixedNow)
				})).Return(nil).Once()
			},
			expectedID: "id-1",
		},
		{
			name:       "duplicate_email",
			email:      "taken@example.com",
			credential: "secret",
			prepareMocks: func() {
				f.repo.On("GetAccountByEmail", mock.Anything, "taken@example.com").
					Return(&domain.ShopAccount{ID: "other"}, nil).Once()
			},
			expectedError: domain.ErrDuplicateAccount,
		},
		{
			name:       "duplicate_on_insert",
			email:      "race@example.com",
			credential: "secret",
			prepareMocks: func() {
				f.repo.On("GetAccountByEmail", mock.Anything, "race@example.com").Return(nil, domain.ErrNotFound).Once()
				f.hasher.On("Hash", "secret").Return([]byte("hashed"), nil).Once()
				f.repo.On("CreateAccount", mock.Anything, mock.Anything).Return(domain.ErrDuplicateAccount).Once()
			},
			expectedError: domain.ErrDuplicateAccount,
		},
		{
			name:          "missing_email",
			email:         " ",
			credential:    "secret",
			prepareMocks:  func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "missing_credential",
			email:         "a@example.com",
			prepareMocks:  func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "credential_too_long",
			email:         "a@example.com",
			credential:    strings.Repeat("x", 73),
			prepareMocks:  func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:       "store_down",
			email:      "down@example.com",
			credential: "secret",
			prepareMocks: func() {
				f.repo.On("GetAccountByEmail", mock.Anything, "down@example.com").
					Return(nil, errors.New("connection refused")).Once()
			},
			expectedError: domain.ErrStoreFault,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			id, err := f.svc.CreateAccount(ctx, testCase.email, testCase.credential)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedID, id)
		})
	}
}

func TestMenuService_VerifyCredential(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()

	account := &domain.ShopAccount{
		ID:           "S1",
		Email:        "chai@example.com",
		PasswordHash: []byte("hashed"),
		Metadata:     domain.ShopMetadata{ShopName: "Chai Point"},
	}

	t.Run("success", func(t *testing.T) {
		f.repo.On("GetAccountByEmail", mock.Anything, "chai@example.com").Return(account, nil).Once()
		f.hasher.On("Compare", []byte("hashed"), "secret").Return(nil).Once()

		shop, err := f.svc.VerifyCredential(ctx, "CHAI@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "S1", shop.ShopID)
		assert.Equal(t, "Chai Point", shop.Metadata.ShopName)
		assert.NotNil(t, shop.Menu)
	})

	t.Run("wrong_credential", func(t *testing.T) {
		f.repo.On("GetAccountByEmail", mock.Anything, "chai@example.com").Return(account, nil).Once()
		f.hasher.On("Compare", []byte("hashed"), "guess").Return(errors.New("mismatch")).Once()

		_, err := f.svc.VerifyCredential(ctx, "chai@example.com", "guess")
		assert.ErrorIs(t, err, domain.ErrAuthFailure)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown_email", func(t *testing.T) {
		f.repo.On("GetAccountByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound).Once()

		_, err := f.svc.VerifyCredential(ctx, "nobody@example.com", "secret")
		assert.ErrorIs(t, err, domain.ErrAuthFailure)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMenuService_ReplaceMenu(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	meta := domain.ShopMetadata{ShopName: "Chai Point", OpenHours: "8-20"}

	t.Run("assigns_missing_and_duplicate_ids", func(t *testing.T) {
		input := domain.Menu{
			"Drinks": {{ID: "keep", Name: " Tea ", Price: 20}, {Name: "Coffee", Price: 30}},
			"Snacks": {{ID: "keep", Name: "Samosa", Price: 15}},
		}
		f.repo.On("ReplaceMenu", mock.Anything, "S1", mock.Anything, meta).Return(nil).Once()
		f.cache.On("Set", mock.Anything, mock.MatchedBy(func(m *domain.ShopMenu) bool {
			return m.ShopID == "S1" && m.Metadata == meta
		})).Return(nil).Once()

		menu, err := f.svc.ReplaceMenu(ctx, "S1", input, meta)
		require.NoError(t, err)

		assert.Equal(t, "keep", menu["Drinks"][0].ID)
		assert.Equal(t, "Tea", menu["Drinks"][0].Name)
		assert.NotEmpty(t, menu["Drinks"][1].ID)
		assert.NotEqual(t, "keep", menu["Snacks"][0].ID)
		assert.Empty(t, input["Drinks"][1].ID, "caller's menu must not be modified")
	})

	t.Run("cache_write_failure_invalidates", func(t *testing.T) {
		f.repo.On("ReplaceMenu", mock.Anything, "S1", mock.Anything, meta).Return(nil).Once()
		f.cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis timeout")).Once()
		f.cache.On("Invalidate", mock.Anything, "S1").Return(nil).Once()

		menu, err := f.svc.ReplaceMenu(ctx, "S1", domain.Menu{}, meta)
		require.NoError(t, err)
		assert.Empty(t, menu)
	})

	t.Run("cache_unreachable_is_a_fault", func(t *testing.T) {
		f.repo.On("ReplaceMenu", mock.Anything, "S1", mock.Anything, meta).Return(nil).Once()
		f.cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
		f.cache.On("Invalidate", mock.Anything, "S1").Return(errors.New("redis down")).Once()

		_, err := f.svc.ReplaceMenu(ctx, "S1", domain.Menu{}, meta)
		assert.ErrorIs(t, err, domain.ErrStoreFault)
	})

	t.Run("unknown_shop", func(t *testing.T) {
		f.repo.On("ReplaceMenu", mock.Anything, "missing", mock.Anything, meta).Return(domain.ErrNotFound).Once()

		_, err := f.svc.ReplaceMenu(ctx, "missing", nil, meta)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid_menu_is_not_stored", func(t *testing.T) {
		_, err := f.svc.ReplaceMenu(ctx, "S1", domain.Menu{"Drinks": {{Name: "Tea", Price: -1}}}, meta)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMenuService_GetMenu(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	stored := &domain.ShopMenu{ShopID: "S1", Menu: domain.Menu{"Drinks": {{ID: "1", Name: "Tea", Price: 20}}}}

	t.Run("cache_hit", func(t *testing.T) {
		f.cache.On("Get", mock.Anything, "S1").Return(stored, nil).Once()

		menu, err := f.svc.GetMenu(ctx, "S1")
		require.NoError(t, err)
		assert.Equal(t, stored, menu)
	})

	t.Run("cache_miss_fills", func(t *testing.T) {
		f.cache.On("Get", mock.Anything, "S1").Return(nil, nil).Once()
		f.repo.On("GetMenu", mock.Anything, "S1").Return(stored, nil).Once()
		f.cache.On("Fill", mock.Anything, stored).Return(nil).Once()

		menu, err := f.svc.GetMenu(ctx, "S1")
		require.NoError(t, err)
		assert.Equal(t, "Tea", menu.Menu["Drinks"][0].Name)
	})

	t.Run("cache_error_falls_back", func(t *testing.T) {
		empty := &domain.ShopMenu{ShopID: "S2"}
		f.cache.On("Get", mock.Anything, "S2").Return(nil, errors.New("redis down")).Once()
		f.repo.On("GetMenu", mock.Anything, "S2").Return(empty, nil).Once()
		f.cache.On("Fill", mock.Anything, empty).Return(errors.New("redis down")).Once()

		menu, err := f.svc.GetMenu(ctx, "S2")
		require.NoError(t, err)
		assert.NotNil(t, menu.Menu)
	})

	t.Run("unknown_shop", func(t *testing.T) {
		f.cache.On("Get", mock.Anything, "nope").Return(nil, nil).Once()
		f.repo.On("GetMenu", mock.Anything, "nope").Return(nil, domain.ErrNotFound).Once()

		_, err := f.svc.GetMenu(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMenuService_MenuQRCode(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()

	f.cache.On("Get", mock.Anything, "S1").Return(&domain.ShopMenu{ShopID: "S1", Menu: domain.Menu{}}, nil).Once()
	f.qr.On("Generate", "S1").Return([]byte("png"), nil).Once()

	png, err := f.svc.MenuQRCode(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	f.cache.On("Get", mock.Anything, "nope").Return(nil, nil).Once()
	f.repo.On("GetMenu", mock.Anything, "nope").Return(nil, domain.ErrNotFound).Once()

	_, err = f.svc.MenuQRCode(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMenuService_WithoutCache(t *testing.T) {
	repo := mocks.NewAccountRepository(t)
	svc := NewMenuService(repo, nil, BcryptHasher{Cost: 4}, nil, logger.Discard())

	repo.On("GetMenu", mock.Anything, "S1").Return(&domain.ShopMenu{ShopID: "S1"}, nil).Once()
	menu, err := svc.GetMenu(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, domain.Menu{}, menu.Menu)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)
	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "secret"))
	assert.Error(t, h.Compare(hash, "Secret"))

	assert.Equal(t, 10, NewBcryptHasher(0).Cost)
}

func TestDefaultQRGenerator(t *testing.T) {
	g := DefaultQRGenerator{BaseURL: "https://menu.example.com/"}
	assert.Equal(t, "https://menu.example.com/menu/S%201", g.MenuURL("S 1"))

	png, err := g.Generate("S1")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

// flakyCache is an in-process MenuCache whose writes can be made to fail.
type flakyCache struct {
	mu      sync.Mutex
	entries map[string]*domain.ShopMenu
	failSet bool
}

func newFlakyCache() *flakyCache {
	return &flakyCache{entries: make(map[string]*domain.ShopMenu)}
}

func (c *flakyCache) Get(_ context.Context, shopID string) (*domain.ShopMenu, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	menu, ok := c.entries[shopID]
	if !ok {
		return nil, nil
	}
	return &domain.ShopMenu{ShopID: menu.ShopID, Menu: menu.Menu.Clone(), Metadata: menu.Metadata}, nil
}

func (c *flakyCache) Set(_ context.Context, menu *domain.ShopMenu) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errors.New("cache write timeout")
	}
	c.entries[menu.ShopID] = &domain.ShopMenu{ShopID: menu.ShopID, Menu: menu.Menu.Clone(), Metadata: menu.Metadata}
	return nil
}

func (c *flakyCache) Fill(ctx context.Context, menu *domain.ShopMenu) error {
	c.mu.Lock()
	_, exists := c.entries[menu.ShopID]
	c.mu.Unlock()
	if exists {
		return nil
	}
	return c.Set(ctx, menu)
}

func (c *flakyCache) Invalidate(_ context.Context, shopID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, shopID)
	return nil
}

func TestMenuService_ReplaceThenGetWithFailingCache(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	cache := newFlakyCache()
	svc := NewMenuService(repo, cache, BcryptHasher{Cost: 4}, nil, logger.Discard())

	shopID, err := svc.CreateAccount(ctx, "chai@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.ReplaceMenu(ctx, shopID, domain.Menu{"Drinks": {{Name: "Tea", Price: 20}}}, domain.ShopMetadata{})
	require.NoError(t, err)
	cached, err := cache.Get(ctx, shopID)
	require.NoError(t, err)
	require.NotNil(t, cached)

	cache.failSet = true
	_, err = svc.ReplaceMenu(ctx, shopID, domain.Menu{"Drinks": {{Name: "Tea", Price: 25}}}, domain.ShopMetadata{ShopName: "Chai Point"})
	require.NoError(t, err)

	menu, err := svc.GetMenu(ctx, shopID)
	require.NoError(t, err)
	assert.Equal(t, domain.Price(25), menu.Menu["Drinks"][0].Price)
	assert.Equal(t, "Chai Point", menu.Metadata.ShopName)
}

func TestMenuService_ConcurrentReplaceAndRead(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	svc := NewMenuService(repo, newFlakyCache(), BcryptHasher{Cost: 4}, nil, logger.Discard())

	shopID, err := svc.CreateAccount(ctx, "chai@example.com", "secret")
	require.NoError(t, err)

	version := func(i int) (domain.Menu, domain.ShopMetadata) {
		name := fmt.Sprintf("v%d", i)
		return domain.Menu{name: {{Name: name, Price: domain.Price(i)}}},
			domain.ShopMetadata{ShopName: name, OpenHours: name}
	}
	menu, meta := version(0)
	_, err = svc.ReplaceMenu(ctx, shopID, menu, meta)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			menu, meta := version(i)
			_, err := svc.ReplaceMenu(ctx, shopID, menu, meta)
			assert.NoError(t, err)
		}(i)
	}
	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 20; n++ {
				shop, err := svc.GetMenu(ctx, shopID)
				if !assert.NoError(t, err) {
					return
				}
				name := shop.Metadata.ShopName
				assert.Equal(t, name, shop.Metadata.OpenHours)
				if assert.Len(t, shop.Menu, 1) {
					assert.Equal(t, name, shop.Menu[name][0].Name, "menu and metadata come from different writes")
				}
			}
		}()
	}
	wg.Wait()
}
