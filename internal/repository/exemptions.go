package repository

import (
	"context"
	"errors"

	"github.com/companieshouse/company-exemptions-api/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "company_exemptions"

// ExemptionsRepository defines persistence for the company_exemptions
// collection. One document per company number, keyed by _id.
type ExemptionsRepository interface {
	FindByCompanyNumber(ctx context.Context, companyNumber string) (*model.ExemptionsDocument, error)
	Save(ctx context.Context, doc *model.ExemptionsDocument) error
	DeleteByCompanyNumber(ctx context.Context, companyNumber string) error
}

type MongoExemptionsRepository struct {
	collection *mongo.Collection
}

func NewExemptionsRepository(db *mongo.Database) *MongoExemptionsRepository {
	return &MongoExemptionsRepository{collection: db.Collection(collectionName)}
}

// FindByCompanyNumber returns the stored document, or nil when there is none.
func (r *MongoExemptionsRepository) FindByCompanyNumber(ctx context.Context, companyNumber string) (*model.ExemptionsDocument, error) {
	var doc model.ExemptionsDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": companyNumber}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save replaces the whole document for the company number, inserting when
// absent.
func (r *MongoExemptionsRepository) Save(ctx context.Context, doc *model.ExemptionsDocument) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoExemptionsRepository) DeleteByCompanyNumber(ctx context.Context, companyNumber string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": companyNumber})
	return err
}
