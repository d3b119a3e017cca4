package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/database"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

// BusinessInfoRepository stores the single business info document in MongoDB.
type BusinessInfoRepository struct {
	coll *mongo.Collection
}

// NewBusinessInfoRepository creates a new MongoDB-backed business info repository.
func NewBusinessInfoRepository(db *mongo.Database) *BusinessInfoRepository {
	return &BusinessInfoRepository{coll: db.Collection(businessInfoCollection)}
}

// Get returns the first business info document.
func (r *BusinessInfoRepository) Get(ctx context.Context) (_ *domain.BusinessInfo, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "GetBusinessInfo", "businessinfos.findOne")
	defer func() { end(err) }()

	var doc document[domain.BusinessInfo]
	if err = r.coll.FindOne(ctx, bson.M{}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("business info", "default")
		}
		return nil, fmt.Errorf("find business info: %w", err)
	}

	info := doc.Data
	info.ID = string(doc.ID)
	return &info, nil
}

// Save replaces the document with info's ID, inserting it when absent.
func (r *BusinessInfoRepository) Save(ctx context.Context, info *domain.BusinessInfo) (err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "SaveBusinessInfo", "businessinfos.replaceOne")
	defer func() { end(err) }()

	doc := document[domain.BusinessInfo]{ID: documentID(info.ID), Data: *info}
	if _, err = r.coll.ReplaceOne(ctx, byID(info.ID), doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("save business info: %w", err)
	}
	return nil
}
