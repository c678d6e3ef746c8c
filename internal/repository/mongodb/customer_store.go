// internal/repository/mongodb/customer_store.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"customer-service/internal/domain/customer"
	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/pkg/validate"
	"customer-service/internal/repository"
)

var _ repository.CustomerStore = (*CustomerStore)(nil)

// CustomerStore persists customers in a MongoDB collection keyed by the
// customer id (_id).
type CustomerStore struct {
	coll *mongo.Collection
}

func NewCustomerStore(coll *mongo.Collection) *CustomerStore {
	return &CustomerStore{coll: coll}
}

func (s *CustomerStore) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, xerrors.ErrNotFound
		}
		return nil, storeErr("find customer", err)
	}
	return &c, nil
}

func (s *CustomerStore) Find(ctx context.Context, q repository.ListQuery) ([]customer.Customer, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Limit()))

	cursor, err := s.coll.Find(ctx, searchFilter(q.Search), opts)
	if err != nil {
		return nil, storeErr("list customers", err)
	}
	defer cursor.Close(ctx)

	// Drain the cursor so callers never touch a live session.
	customers := []customer.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, storeErr("decode customers", err)
	}
	return customers, nil
}

func (s *CustomerStore) Count(ctx context.Context, q repository.ListQuery) (int64, error) {
	total, err := s.coll.CountDocuments(ctx, searchFilter(q.Search))
	if err != nil {
		return 0, storeErr("count customers", err)
	}
	return total, nil
}

func (s *CustomerStore) Insert(ctx context.Context, c *customer.Customer) error {
	_, err := s.coll.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return xerrors.ErrDuplicateID
		}
		return storeErr("insert customer", err)
	}
	return nil
}

func (s *CustomerStore) Update(ctx context.Context, id string, fields repository.EditFields) (int64, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"name":      fields.Name,
			"phone":     fields.Phone,
			"address":   fields.Address,
			"model":     fields.Model,
			"updatedAt": fields.UpdatedAt,
			"updatedBy": fields.UpdatedBy,
		},
	})
	if err != nil {
		return 0, storeErr("update customer", err)
	}
	return res.MatchedCount, nil
}

func (s *CustomerStore) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storeErr("delete customer", err)
	}
	return res.DeletedCount, nil
}

// ApplyPayment runs the balance arithmetic server-side: the filter admits
// the document only while balanceAmount still covers the delta, and $inc
// applies both field changes in the same document-level atomic update.
// Concurrent payments therefore cannot both spend the same balance.
func (s *CustomerStore) ApplyPayment(ctx context.Context, id string, delta float64, updatedBy string, updatedAt time.Time) (*customer.Customer, error) {
	filter := bson.M{
		"_id":           id,
		"balanceAmount": bson.M{"$gte": delta},
	}
	update := bson.M{
		"$inc": bson.M{
			"amountReceived": delta,
			"balanceAmount":  -delta,
		},
		"$set": bson.M{
			"updatedAt": updatedAt,
			"updatedBy": updatedBy,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated customer.Customer
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storeErr("apply payment", err)
	}

	// The guarded update matched nothing: either the record is gone or
	// the balance no longer covers the delta.
	if _, ferr := s.FindByID(ctx, id); ferr != nil {
		return nil, ferr
	}
	return nil, xerrors.ErrOverpayment
}

// EnsureIndexes creates the supporting search index. The _id key is
// unique by definition, which is what enforces id uniqueness at creation.
func (s *CustomerStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	if err != nil {
		return storeErr("create indexes", err)
	}
	return nil
}

// searchFilter builds the case-insensitive contains filter over the
// searchable fields. The term is always regex-quoted first so
// metacharacters match literally.
func searchFilter(term string) bson.M {
	if term == "" {
		return bson.M{}
	}
	pattern := bson.M{"$regex": validate.EscapeSearch(term), "$options": "i"}
	return bson.M{"$or": []bson.M{
		{"name": pattern},
		{"_id": pattern},
		{"phone": pattern},
		{"model": pattern},
	}}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, xerrors.ErrStoreUnavailable)
}
