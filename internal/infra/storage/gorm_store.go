package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stored_values テーブルの1行。プロファイルIDとキーで一意。
type StoredValue struct {
	Profile   string    `gorm:"primaryKey;type:varchar(100)"`
	Key       string    `gorm:"primaryKey;type:varchar(100);column:key"`
	Value     []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (StoredValue) TableName() string { return "stored_values" }

// DBに状態を置くKVストア。ローカルディスクが永続でない環境向け。
type GormStore struct {
	db      *gorm.DB
	profile string
}

func NewGormStore(db *gorm.DB, profile string) *GormStore {
	return &GormStore{db: db, profile: profile}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row StoredValue

	err := s.db.WithContext(ctx).
		Where("profile = ? AND key = ?", s.profile, key).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Value, true, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	row := StoredValue{
		Profile:   s.profile,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	//同一(profile,key)は上書き
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("profile = ? AND key = ?", s.profile, key).
		Delete(&StoredValue{}).Error
}
