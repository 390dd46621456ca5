package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type record struct {
	Namespace string `gorm:"primaryKey;size:128"`
	Key       string `gorm:"primaryKey;size:128"`
	Value     []byte `gorm:"type:jsonb"`
}

func (record) TableName() string { return "kv_records" }

// Postgres backs Store with a single JSONB key-value table.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(ctx context.Context, namespace, key string, dest any) error {
	var rec record
	err := p.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", namespace, key).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s/%s: %w", namespace, key, ErrKeyNotFound)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(rec.Value, dest)
}

func (p *Postgres) Set(ctx context.Context, namespace, key string, value any) error {
	return p.SetBatch(ctx, []Entry{{Namespace: namespace, Key: key, Value: value}})
}

func (p *Postgres) SetBatch(ctx context.Context, entries []Entry) error {
	recs := make([]record, len(entries))
	for i, e := range entries {
		raw, err := json.Marshal(e.Value)
		if err != nil {
			return err
		}
		recs[i] = record{Namespace: e.Namespace, Key: e.Key, Value: raw}
	}
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range recs {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&rec).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Postgres) Delete(ctx context.Context, namespace, key string) error {
	return p.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", namespace, key).
		Delete(&record{}).Error
}
