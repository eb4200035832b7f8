/*
Package mongodataset stores sample rows in a MongoDB collection and
loads them back as dataset.Datasets.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/tushushu/smartcore/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const samplesCollectionName = "samples"

/*
DB gives access to the samples of a schema stored on a MongoDB
database.
*/
type DB struct {
	session *mgo.Session
	schema  *dataset.Schema
}

/*
Open takes a MongoDB database session and a schema and returns a DB
that works on the default database for that session, or an error if
the schema declares invalid column names or the per-column indexes
cannot be ensured.
*/
func Open(session *mgo.Session, schema *dataset.Schema) (*DB, error) {
	db := &DB{session, schema}
	if err := db.ensureIndexes(); err != nil {
		return nil, err
	}
	return db, nil
}

/*
Write takes a context and a dataset and inserts one document per
dataset row into the samples collection, with a field per feature
column and one for the label (the class dictionary entry for
classification schemas). It returns the number of inserted samples and
an error if the insertion fails or the context expires.
*/
func (db *DB) Write(ctx context.Context, ds *dataset.Dataset) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, ds.X.Rows())
	for i := 0; i < ds.X.Rows(); i++ {
		doc := make(bson.M)
		for j, name := range db.schema.Features {
			doc[name] = ds.X.At(i, j)
		}
		if db.schema.Task == dataset.Regression {
			doc[db.schema.Label] = ds.Y[i]
		} else {
			doc[db.schema.Label] = ds.ClassOf(ds.Y[i])
		}
		docs = append(docs, doc)
	}
	err := db.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("writing samples to mongodb: %v", err)
	}
	return len(docs), nil
}

/*
Read takes a context and returns a dataset with every sample stored in
the samples collection, in natural collection order so repeated reads
build identical datasets. It returns an error if a document lacks a
schema column, a value has the wrong type or the context expires.
*/
func (db *DB) Read(ctx context.Context) (*dataset.Dataset, error) {
	ds := &dataset.Dataset{}
	var rows [][]float64
	var y dataset.Vector
	iter := db.samplesCollection().Find(nil).Sort("$natural").Iter()
	defer iter.Close()
	var doc bson.M
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := make([]float64, len(db.schema.Features))
		for j, name := range db.schema.Features {
			v, err := floatValue(doc[name])
			if err != nil {
				return nil, fmt.Errorf("reading sample %d: feature %s: %v", len(rows), name, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
		if db.schema.Task == dataset.Regression {
			v, err := floatValue(doc[db.schema.Label])
			if err != nil {
				return nil, fmt.Errorf("reading sample %d: label %s: %v", len(rows)-1, db.schema.Label, err)
			}
			y = append(y, v)
		} else {
			label, ok := doc[db.schema.Label].(string)
			if !ok {
				label = fmt.Sprintf("%v", doc[db.schema.Label])
			}
			y = append(y, ds.EncodeClass(label))
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading samples from mongodb: %v", err)
	}
	x, err := dataset.NewDenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	return dataset.New(x, y, ds.Classes)
}

func (db *DB) ensureIndexes() error {
	for _, name := range append(append([]string{}, db.schema.Features...), db.schema.Label) {
		if name == "_id" {
			return fmt.Errorf("invalid column name %q: reserved collection field", name)
		}
		if strings.ContainsAny(name, ".$") {
			return fmt.Errorf("invalid column name %q: contains reserved characters %q or %q", name, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{name},
			Background: true,
			Sparse:     true,
		}
		if err := db.samplesCollection().EnsureIndex(index); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) samplesCollection() *mgo.Collection {
	return db.session.DB("").C(samplesCollectionName)
}

func floatValue(v interface{}) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	}
	return 0, fmt.Errorf("expected numeric value, got %T", v)
}
