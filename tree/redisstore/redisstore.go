/*
Package redisstore persists grown trees in a Redis database under
named, prefix-spaced keys, so models can be shared between the process
that grows them and the ones that predict with them.
*/
package redisstore

import (
	"context"
	"fmt"

	treejson "github.com/tushushu/smartcore/tree/json"

	"github.com/tushushu/smartcore/tree"
	redis "gopkg.in/redis.v5"
)

// StoreError represents an error related with the model store.
type StoreError string

func (se StoreError) Error() string {
	return string(se)
}

// ErrModelNotFound is the error returned by Load when no model is
// stored under the requested name.
const ErrModelNotFound = StoreError("no model stored under that name")

/*
Store is a model store backed by a Redis database. Models are stored
JSON-encoded under keys of the form prefix:name.
*/
type Store struct {
	rc     *redis.Client
	prefix string
}

// New builds a model Store backed by a redis DB.
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc, prefix}
}

/*
Save takes a context, a model name and a tree and stores the tree
under the name, overwriting any previously stored model. It returns an
error if the tree cannot be encoded or stored, or the context expires.
*/
func (s *Store) Save(ctx context.Context, name string, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := treejson.Marshal(t)
	if err != nil {
		return fmt.Errorf("saving model %q: encoding tree: %v", name, err)
	}
	err = s.rc.Set(s.keyFor(name), data, 0).Err()
	if err != nil {
		return fmt.Errorf("saving model %q in redis: %v", name, err)
	}
	return nil
}

/*
Load takes a context and a model name and returns the tree stored
under the name. It returns ErrModelNotFound if no model is stored
under it, or another error if the store cannot be queried or the
stored data cannot be decoded.
*/
func (s *Store) Load(ctx context.Context, name string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.rc.Get(s.keyFor(name)).Bytes()
	if err == redis.Nil {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading model %q from redis: %v", name, err)
	}
	t, err := treejson.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("loading model %q: decoding tree: %v", name, err)
	}
	return t, nil
}

/*
Delete takes a context and a model name and removes the model stored
under the name, returning an error if the deletion cannot be
performed. Deleting a name with no stored model is not an error.
*/
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.rc.Del(s.keyFor(name)).Err()
	if err != nil {
		return fmt.Errorf("deleting model %q from redis: %v", name, err)
	}
	return nil
}

func (s *Store) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}
