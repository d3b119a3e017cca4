package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names match the existing storefront database.
const (
	reviewsCollection      = "reviews"
	productsCollection     = "products"
	ordersCollection       = "orders"
	businessInfoCollection = "businessinfos"
)

// documentID is an _id that may be stored as an ObjectID (legacy documents)
// or as a string (documents written by this service). A 24-hex id is written
// back as an ObjectID so filters match legacy documents.
type documentID string

// MarshalBSONValue implements bson.ValueMarshaler.
func (id documentID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if oid, err := primitive.ObjectIDFromHex(string(id)); err == nil {
		return bson.MarshalValue(oid)
	}
	return bson.MarshalValue(string(id))
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (id *documentID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		*id = documentID(rv.ObjectID().Hex())
	case bson.TypeString:
		*id = documentID(rv.StringValue())
	default:
		return fmt.Errorf("unsupported _id type %s", t)
	}
	return nil
}

// document pairs an _id with an entity whose own ID field is not persisted.
type document[T any] struct {
	ID   documentID `bson:"_id"`
	Data T          `bson:",inline"`
}

func byID(id string) bson.M {
	return bson.M{"_id": documentID(id)}
}
