package persistence

import (
	"context"
	"fmt"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"gorm.io/gorm"
)

// collectionSchema binds an aggregate (parent P with children T) to its GORM
// models PM and CM.
type collectionSchema[ID any, P any, T any, PM any, CM any] struct {
	parentResource string
	childResource  string

	parentWhere   func(id ID) map[string]any
	childrenWhere func(id ID) map[string]any
	childOrder    string

	parentKey func(P) any
	childKey  func(T) any

	parentModel  func(P) *PM
	parentDomain func(*PM) P
	childModel   func(T) *CM
	childDomain  func(*CM) T
}

// CollectionStore implements reconcile.Store over GORM for one aggregate.
// Rows are addressed by the models' primary keys, so every child model must
// carry the full composite key.
type CollectionStore[ID any, P any, T any, PM any, CM any] struct {
	db     *gorm.DB
	schema collectionSchema[ID, P, T, PM, CM]
}

func newCollectionStore[ID any, P any, T any, PM any, CM any](
	db *gorm.DB,
	schema collectionSchema[ID, P, T, PM, CM],
) *CollectionStore[ID, P, T, PM, CM] {
	return &CollectionStore[ID, P, T, PM, CM]{db: db, schema: schema}
}

// Load reads the parent and its children ordered by key.
func (s *CollectionStore[ID, P, T, PM, CM]) Load(ctx context.Context, id ID) (P, []T, error) {
	var zero P
	db := s.db.WithContext(ctx)

	var pm PM
	if err := db.Where(s.schema.parentWhere(id)).First(&pm).Error; err != nil {
		return zero, nil, translateError(err, s.schema.parentResource, id)
	}

	var rows []CM
	if err := db.Where(s.schema.childrenWhere(id)).Order(s.schema.childOrder).Find(&rows).Error; err != nil {
		return zero, nil, translateError(err, s.schema.childResource, id)
	}

	children := make([]T, len(rows))
	for i := range rows {
		children[i] = s.schema.childDomain(&rows[i])
	}
	return s.schema.parentDomain(&pm), children, nil
}

// Create inserts a new parent and its children in one transaction. Children
// must already carry their keys. A parent key that is taken is a CONFLICT.
func (s *CollectionStore[ID, P, T, PM, CM]) Create(ctx context.Context, parent P, children []T) error {
	key := s.schema.parentKey(parent)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s.schema.parentModel(parent)).Error; err != nil {
			return translateError(err, s.schema.parentResource, key)
		}
		if len(children) == 0 {
			return nil
		}
		rows := make([]*CM, len(children))
		for i, c := range children {
			rows[i] = s.schema.childModel(c)
		}
		if err := tx.Create(rows).Error; err != nil {
			return translateError(err, s.schema.childResource, key)
		}
		return nil
	})
	if err != nil && shared.CodeOf(err) == "" {
		return shared.NewTransactionFailure(fmt.Sprintf("failed to create %s %v", s.schema.parentResource, key), err)
	}
	return err
}

// InTx runs fn inside one database transaction. GORM rolls back when fn
// returns an error or ctx is cancelled before commit.
func (s *CollectionStore[ID, P, T, PM, CM]) InTx(ctx context.Context, fn func(tx reconcile.Tx[P, T]) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&collectionTx[ID, P, T, PM, CM]{db: tx, schema: s.schema})
	})
	if err == nil || shared.CodeOf(err) != "" {
		return err
	}
	return fmt.Errorf("%s transaction: %w", s.schema.parentResource, err)
}

type collectionTx[ID any, P any, T any, PM any, CM any] struct {
	db     *gorm.DB
	schema collectionSchema[ID, P, T, PM, CM]
}

// UpdateParent writes every scalar column of the parent. Zero rows affected
// means the parent was deleted after it was loaded.
func (t *collectionTx[ID, P, T, PM, CM]) UpdateParent(ctx context.Context, parent P) error {
	m := t.schema.parentModel(parent)
	key := t.schema.parentKey(parent)

	res := t.db.WithContext(ctx).Model(m).Select("*").Omit("created_at").Updates(m)
	if res.Error != nil {
		return translateError(res.Error, t.schema.parentResource, key)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(t.schema.parentResource, key)
	}
	return nil
}

func (t *collectionTx[ID, P, T, PM, CM]) Insert(ctx context.Context, child T) error {
	if err := t.db.WithContext(ctx).Create(t.schema.childModel(child)).Error; err != nil {
		return translateError(err, t.schema.childResource, t.schema.childKey(child))
	}
	return nil
}

// Update writes every column of an existing child. A row removed by a
// concurrent writer surfaces as NOT_FOUND.
func (t *collectionTx[ID, P, T, PM, CM]) Update(ctx context.Context, child T) error {
	m := t.schema.childModel(child)
	key := t.schema.childKey(child)

	res := t.db.WithContext(ctx).Model(m).Select("*").Omit("created_at").Updates(m)
	if res.Error != nil {
		return translateError(res.Error, t.schema.childResource, key)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(t.schema.childResource, key)
	}
	return nil
}

// Delete removes a child by primary key. A row that is already gone is not an
// error: the collection ends up as requested either way.
func (t *collectionTx[ID, P, T, PM, CM]) Delete(ctx context.Context, child T) error {
	if err := t.db.WithContext(ctx).Delete(t.schema.childModel(child)).Error; err != nil {
		return translateError(err, t.schema.childResource, t.schema.childKey(child))
	}
	return nil
}
