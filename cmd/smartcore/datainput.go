package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tushushu/smartcore/dataset"
	"github.com/tushushu/smartcore/dataset/csv"
	"github.com/tushushu/smartcore/dataset/mongodataset"
	"github.com/tushushu/smartcore/dataset/sqldataset"
	"github.com/tushushu/smartcore/dataset/sqldataset/pgadapter"
	"github.com/tushushu/smartcore/dataset/sqldataset/sqlite3adapter"
	"github.com/tushushu/smartcore/tree"
	treejson "github.com/tushushu/smartcore/tree/json"
	"github.com/tushushu/smartcore/tree/redisstore"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"
)

const redisModelPrefix = "smartcore:models"

// readDataset dispatches on the input the same way for every command:
// a mongodb:// or postgresql:// URL, an SQLite3 .db file, or a CSV
// file path ("" reads CSV from STDIN).
func readDataset(ctx context.Context, input string, s *dataset.Schema, table string, maxDBConns int) (*dataset.Dataset, error) {
	switch {
	case strings.HasPrefix(input, "mongodb://"):
		logrus.WithField("url", input).Debug("reading dataset from MongoDB")
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("connecting to %s: %v", input, err)
		}
		defer session.Close()
		db, err := mongodataset.Open(session, s)
		if err != nil {
			return nil, err
		}
		return db.Read(ctx)
	case strings.HasPrefix(input, "postgresql://"):
		logrus.WithFields(logrus.Fields{"url": input, "table": table}).Debug("reading dataset from PostgreSQL")
		adapter, err := pgadapter.New(input, maxDBConns)
		if err != nil {
			return nil, err
		}
		defer adapter.DB().Close()
		return sqldataset.ReadDataset(ctx, adapter, table, s)
	case strings.HasSuffix(input, ".db"):
		logrus.WithFields(logrus.Fields{"file": input, "table": table}).Debug("reading dataset from SQLite3")
		adapter, err := sqlite3adapter.New(input, maxDBConns)
		if err != nil {
			return nil, err
		}
		defer adapter.DB().Close()
		return sqldataset.ReadDataset(ctx, adapter, table, s)
	}
	logrus.WithField("file", input).Debug("reading dataset from CSV")
	return csv.ReadDatasetFromFile(input, s)
}

func loadTree(ctx context.Context, input string) (*tree.Tree, error) {
	if strings.HasPrefix(input, "redis://") {
		store, name, closeStore, err := redisModel(input)
		if err != nil {
			return nil, err
		}
		defer closeStore()
		logrus.WithField("model", name).Debug("loading tree from redis")
		return store.Load(ctx, name)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("reading tree from %s: %v", input, err)
	}
	defer f.Close()
	return treejson.Read(f)
}

func saveTree(ctx context.Context, output string, t *tree.Tree) error {
	if strings.HasPrefix(output, "redis://") {
		store, name, closeStore, err := redisModel(output)
		if err != nil {
			return err
		}
		defer closeStore()
		logrus.WithField("model", name).Debug("saving tree to redis")
		return store.Save(ctx, name, t)
	}
	f := os.Stdout
	if output != "" {
		var err error
		f, err = os.Create(output)
		if err != nil {
			return fmt.Errorf("writing tree to %s: %v", output, err)
		}
		defer f.Close()
	}
	return treejson.Write(t, f)
}

// redisModel parses a redis://[:password@]host:port/[db/]name model URL
// and returns the store it points to, the model name and a function
// closing the underlying client.
func redisModel(raw string) (*redisstore.Store, string, func(), error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, "", nil, fmt.Errorf("parsing redis model URL %s: %v", raw, err)
	}
	opts := &redis.Options{Addr: u.Host}
	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			opts.Password = password
		}
	}
	var name string
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch len(segments) {
	case 1:
		name = segments[0]
	case 2:
		opts.DB, err = strconv.Atoi(segments[0])
		if err != nil {
			return nil, "", nil, fmt.Errorf("parsing redis model URL %s: invalid DB number %q", raw, segments[0])
		}
		name = segments[1]
	default:
		name = ""
	}
	if name == "" {
		return nil, "", nil, fmt.Errorf("parsing redis model URL %s: expected a path of the form /[db/]name", raw)
	}
	rc := redis.NewClient(opts)
	return redisstore.New(rc, redisModelPrefix), name, func() { rc.Close() }, nil
}
