package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ait/forum/internal/core/domain"
)

const collectionAccounts = "accounts"

// AccountRepository stores accounts keyed by login. The login is the
// document _id, so the store itself rejects duplicate registrations.
type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

type mongoAccount struct {
	Login          string   `bson:"_id"`
	PasswordDigest string   `bson:"password"`
	FirstName      string   `bson:"first_name"`
	LastName       string   `bson:"last_name"`
	Roles          []string `bson:"roles"`
}

func toMongoAccount(a *domain.Account) mongoAccount {
	return mongoAccount{
		Login:          a.Login,
		PasswordDigest: a.PasswordDigest,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Roles:          a.Roles.Strings(),
	}
}

func (m mongoAccount) toDomain() *domain.Account {
	roles := domain.NewRoleSet()
	for _, r := range m.Roles {
		if role, err := domain.ParseRole(r); err == nil {
			roles.Add(role)
		}
	}
	return &domain.Account{
		Login:          m.Login,
		PasswordDigest: m.PasswordDigest,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Roles:          roles,
	}
}

func (r *AccountRepository) Exists(ctx context.Context, login string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": login}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count account: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAccount
	if err := r.col.FindOne(ctx, bson.M{"_id": login}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts the account only when the login is free.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoAccount(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// Save replaces the stored account, inserting it when missing.
func (r *AccountRepository) Save(ctx context.Context, a *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.Login}, toMongoAccount(a), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, login string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": login}); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
