// internal/repository/mongodb/migrate.go
package mongodb

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// NormalizeLegacyBalances rewrites records whose amount fields were stored
// as strings by an earlier version of the system. The data model mandates
// numeric storage, so this runs once before serving; the read path never
// special-cases string-encoded amounts.
func (s *CustomerStore) NormalizeLegacyBalances(ctx context.Context) (int64, error) {
	filter := bson.M{"$or": []bson.M{
		{"balanceAmount": bson.M{"$type": "string"}},
		{"amountReceived": bson.M{"$type": "string"}},
	}}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return 0, storeErr("find legacy records", err)
	}
	defer cursor.Close(ctx)

	var fixed int64
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return fixed, storeErr("decode legacy record", err)
		}

		id, _ := doc["_id"].(string)
		set := bson.M{}
		for _, field := range []string{"balanceAmount", "amountReceived"} {
			raw, ok := doc[field].(string)
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 {
				return fixed, fmt.Errorf("record %q has unparseable %s %q", id, field, raw)
			}
			set[field] = v
		}
		if len(set) == 0 {
			continue
		}

		if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": doc["_id"]}, bson.M{"$set": set}); err != nil {
			return fixed, storeErr("normalize legacy record", err)
		}
		fixed++
	}
	if err := cursor.Err(); err != nil {
		return fixed, storeErr("iterate legacy records", err)
	}
	return fixed, nil
}
