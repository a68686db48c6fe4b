package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"streetqr/shop-svc/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// shopDocument stores the menu as a list of categories so category names
// never become document keys.
type shopDocument struct {
	ID           string             `bson:"_id"`
	Email        string             `bson:"email"`
	PasswordHash []byte             `bson:"password_hash"`
	Menu         []categoryDocument `bson:"menu"`
	ShopName     string             `bson:"shop_name"`
	OpenHours    string             `bson:"open_hours"`
	Address      string             `bson:"address"`
	Logo         string             `bson:"logo"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type categoryDocument struct {
	Name  string            `bson:"name"`
	Items []domain.MenuItem `bson:"items"`
}

type MongoRepository struct {
	shops  *mongo.Collection
	orders *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		shops:  db.Collection("shopkeepers"),
		orders: db.Collection("orders"),
	}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.shops.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("cannot create shopkeepers index: %w", err)
	}
	_, err = r.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("cannot create orders index: %w", err)
	}
	return nil
}

func (r *MongoRepository) CreateAccount(ctx context.Context, account *domain.ShopAccount) error {
	doc := shopDocument{
		ID:           account.ID,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Menu:         menuToDocument(account.Menu),
		ShopName:     account.Metadata.ShopName,
		OpenHours:    account.Metadata.OpenHours,
		Address:      account.Metadata.Address,
		Logo:         account.Metadata.Logo,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
	if _, err := r.shops.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("cannot create account: %w", err)
	}
	return nil
}

func (r *MongoRepository) findShop(ctx context.Context, filter bson.M) (*shopDocument, error) {
	var doc shopDocument
	err := r.shops.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot get account: %w", err)
	}
	return &doc, nil
}

func (r *MongoRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.ShopAccount, error) {
	doc, err := r.findShop(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return &domain.ShopAccount{
		ID:           doc.ID,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Menu:         menuFromDocument(doc.Menu),
		Metadata:     doc.metadata(),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func (r *MongoRepository) ReplaceMenu(ctx context.Context, shopID string, menu domain.Menu, meta domain.ShopMetadata) error {
	update := bson.M{"$set": bson.M{
		"menu":       menuToDocument(menu),
		"shop_name":  meta.ShopName,
		"open_hours": meta.OpenHours,
		"address":    meta.Address,
		"logo":       meta.Logo,
		"updated_at": time.Now().UTC(),
	}}
	result, err := r.shops.UpdateOne(ctx, bson.M{"_id": shopID}, update)
	if err != nil {
		return fmt.Errorf("cannot replace menu: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) GetMenu(ctx context.Context, shopID string) (*domain.ShopMenu, error) {
	doc, err := r.findShop(ctx, bson.M{"_id": shopID})
	if err != nil {
		return nil, err
	}
	return &domain.ShopMenu{
		ShopID:   doc.ID,
		Menu:     menuFromDocument(doc.Menu),
		Metadata: doc.metadata(),
	}, nil
}

func (r *MongoRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("cannot create order: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot get order: %w", err)
	}
	return &order, nil
}

func (r *MongoRepository) ListOrders(ctx context.Context, shopID string) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.orders.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("cannot decode orders: %w", err)
	}
	return orders, nil
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, orderID string, from, next domain.OrderStatus) (bool, error) {
	result, err := r.orders.UpdateOne(ctx,
		bson.M{"_id": orderID, "status": from},
		bson.M{"$set": bson.M{"status": next}})
	if err != nil {
		return false, fmt.Errorf("cannot update order status: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (d *shopDocument) metadata() domain.ShopMetadata {
	return domain.ShopMetadata{
		ShopName:  d.ShopName,
		OpenHours: d.OpenHours,
		Address:   d.Address,
		Logo:      d.Logo,
	}
}

func menuToDocument(menu domain.Menu) []categoryDocument {
	categories := make([]categoryDocument, 0, len(menu))
	for name, items := range menu {
		categories = append(categories, categoryDocument{Name: name, Items: items})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories
}

func menuFromDocument(categories []categoryDocument) domain.Menu {
	menu := make(domain.Menu, len(categories))
	for _, category := range categories {
		items := category.Items
		if items == nil {
			items = []domain.MenuItem{}
		}
		menu[category.Name] = items
	}
	return menu
}
