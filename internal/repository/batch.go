package repository

import (
	"Folio/internal/domain"
	"Folio/internal/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// BatchWriter applies a Batch all-or-nothing.
type BatchWriter interface {
	Commit(ctx context.Context, batch *Batch) error
}

type batchOp interface {
	apply(tx *gorm.DB) error
}

// Batch is an ordered list of writes keyed by pre-known ids. There is no
// predicate-based read-modify-write: callers read first, then describe the
// writes they decided on.
type Batch struct {
	ops []batchOp
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) CreateFolder(folder *models.Folder) *Batch {
	b.ops = append(b.ops, createOp{value: folder})
	return b
}

func (b *Batch) UpdateFolder(id string, fields map[string]interface{}) *Batch {
	b.ops = append(b.ops, updateOp{model: &models.Folder{}, id: id, fields: fields})
	return b
}

func (b *Batch) DeleteFolder(id string) *Batch {
	b.ops = append(b.ops, deleteOp{model: &models.Folder{}, id: id})
	return b
}

func (b *Batch) UpdateFile(id string, fields map[string]interface{}) *Batch {
	b.ops = append(b.ops, updateOp{model: &models.File{}, id: id, fields: fields})
	return b
}

func (b *Batch) DeleteFile(id string) *Batch {
	b.ops = append(b.ops, deleteOp{model: &models.File{}, id: id})
	return b
}

func (b *Batch) CreateTombstone(tombstone *models.BlobTombstone) *Batch {
	b.ops = append(b.ops, createOp{value: tombstone})
	return b
}

func (b *Batch) Len() int {
	return len(b.ops)
}

func (b *Batch) Empty() bool {
	return len(b.ops) == 0
}

type createOp struct {
	value interface{}
}

func (o createOp) apply(tx *gorm.DB) error {
	return tx.Create(o.value).Error
}

type updateOp struct {
	model  interface{}
	id     string
	fields map[string]interface{}
}

func (o updateOp) apply(tx *gorm.DB) error {
	res := tx.Model(o.model).Where("id = ?", o.id).Updates(o.fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update %s: %w", o.id, domain.ErrNotFound)
	}
	return nil
}

type deleteOp struct {
	model interface{}
	id    string
}

func (o deleteOp) apply(tx *gorm.DB) error {
	return tx.Where("id = ?", o.id).Delete(o.model).Error
}

type batchWriterImpl struct {
	db *gorm.DB
}

func NewBatchWriter(db *gorm.DB) BatchWriter {
	return &batchWriterImpl{db: db}
}

func (w *batchWriterImpl) Commit(ctx context.Context, batch *Batch) error {
	if batch == nil || batch.Empty() {
		return nil
	}
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, op := range batch.ops {
			if err := op.apply(tx); err != nil {
				return fmt.Errorf("batch op %d: %w", i, err)
			}
		}
		return nil
	})
}
