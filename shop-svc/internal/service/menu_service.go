package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"streetqr/shop-svc/internal/domain"

	"github.com/google/uuid"
)

// bcrypt rejects longer inputs.
const maxCredentialBytes = 72

type MenuService struct {
	repo   AccountRepository
	cache  MenuCache
	hasher CredentialHasher
	qr     QRGenerator
	log    *slog.Logger

	newID func() string
	now   func() time.Time
}

// NewMenuService builds the Menu Store. cache and qr may be nil.
func NewMenuService(repo AccountRepository, cache MenuCache, hasher CredentialHasher, qr QRGenerator, log *slog.Logger) *MenuService {
	if log == nil {
		log = slog.Default()
	}
	return &MenuService{
		repo:   repo,
		cache:  cache,
		hasher: hasher,
		qr:     qr,
		log:    log,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MenuService) CreateAccount(ctx context.Context, email, credential string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", domain.Invalid("email", "is required")
	}
	if credential == "" {
		return "", domain.Invalid("credential", "is required")
	}
	if len(credential) > maxCredentialBytes {
		return "", domain.Invalid("credential", "is too long")
	}

	_, err := s.repo.GetAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return "", domain.ErrDuplicateAccount
	case !errors.Is(err, domain.ErrNotFound):
		return "", fault("get account", err)
	}

	hash, err := s.hasher.Hash(credential)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	account := &domain.ShopAccount{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		Menu:         domain.Menu{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return "", fault("create account", err)
	}

	s.log.Info("account created", slog.String("shop_id", account.ID))
	return account.ID, nil
}

func (s *MenuService) VerifyCredential(ctx context.Context, email, credential string) (*domain.ShopMenu, error) {
	account, err := s.repo.GetAccountByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownEmail
		}
		return nil, fault("get account", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, credential); err != nil {
		return nil, domain.ErrInvalidCredential
	}

	menu := account.Menu
	if menu == nil {
		menu = domain.Menu{}
	}
	return &domain.ShopMenu{
		ShopID:   account.ID,
		Menu:     menu,
		Metadata: account.Metadata,
	}, nil
}

// ReplaceMenu overwrites the whole menu and metadata of a shop. Concurrent
// replaces race with last writer wins.
func (s *MenuService) ReplaceMenu(ctx context.Context, shopID string, menu domain.Menu, meta domain.ShopMetadata) (domain.Menu, error) {
	if menu == nil {
		menu = domain.Menu{}
	}
	menu = menu.Clone()
	if err := menu.Validate(); err != nil {
		return nil, err
	}
	s.assignItemIDs(menu)

	if err := s.repo.ReplaceMenu(ctx, shopID, menu, meta); err != nil {
		return nil, fault("replace menu", err)
	}

	if err := s.refreshCache(ctx, &domain.ShopMenu{ShopID: shopID, Menu: menu, Metadata: meta}); err != nil {
		return nil, err
	}
	return menu, nil
}

// refreshCache writes the snapshot through and drops the entry when the
// write fails. A cache that can be neither written nor cleared is a fault.
func (s *MenuService) refreshCache(ctx context.Context, snapshot *domain.ShopMenu) error {
	if s.cache == nil {
		return nil
	}
	err := s.cache.Set(ctx, snapshot)
	if err == nil {
		return nil
	}
	s.log.Warn("menu cache write failed, invalidating", slog.String("shop_id", snapshot.ShopID), slog.Any("error", err))
	if err := s.cache.Invalidate(ctx, snapshot.ShopID); err != nil {
		s.log.Error("menu cache invalidation failed", slog.String("shop_id", snapshot.ShopID), slog.Any("error", err))
		return &domain.StoreFault{Op: "invalidate menu cache", Err: err}
	}
	return nil
}

func (s *MenuService) GetMenu(ctx context.Context, shopID string) (*domain.ShopMenu, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, shopID)
		if err != nil {
			s.log.Warn("menu cache read failed", slog.String("shop_id", shopID), slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	menu, err := s.repo.GetMenu(ctx, shopID)
	if err != nil {
		return nil, fault("get menu", err)
	}
	if menu.Menu == nil {
		menu.Menu = domain.Menu{}
	}

	if s.cache != nil {
		if err := s.cache.Fill(ctx, menu); err != nil {
			s.log.Warn("menu cache fill failed", slog.String("shop_id", shopID), slog.Any("error", err))
		}
	}
	return menu, nil
}

func (s *MenuService) MenuQRCode(ctx context.Context, shopID string) ([]byte, error) {
	if s.qr == nil {
		return nil, errors.New("qr generator not configured")
	}
	if _, err := s.GetMenu(ctx, shopID); err != nil {
		return nil, err
	}
	return s.qr.Generate(shopID)
}

// assignItemIDs keeps client-supplied item ids and mints one for items
// without an id or with an id already used elsewhere in the menu.
func (s *MenuService) assignItemIDs(menu domain.Menu) {
	categories := make([]string, 0, len(menu))
	for category := range menu {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	seen := make(map[string]bool)
	for _, category := range categories {
		items := menu[category]
		for i := range items {
			items[i].Name = strings.TrimSpace(items[i].Name)
			if items[i].ID == "" || seen[items[i].ID] {
				items[i].ID = s.newID()
			}
			seen[items[i].ID] = true
		}
	}
}

// fault passes business errors through and wraps everything else.
func fault(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicateAccount) ||
		errors.Is(err, domain.ErrValidation) {
		return err
	}
	return &domain.StoreFault{Op: op, Err: err}
}
