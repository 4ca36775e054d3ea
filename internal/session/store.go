package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type record struct {
	Key  string `gorm:"primaryKey"`
	Data string `gorm:"not null"`
}

func (record) TableName() string { return "sessions" }

// Store persists at most one Session under StorageKey, the browser
// localStorage analog.
type Store struct {
	DB *gorm.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &Store{DB: db}, nil
}

// Save replaces the stored session wholesale.
func (st *Store) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	rec := record{Key: StorageKey, Data: string(data)}
	return st.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// Load returns nil when no session is stored or the stored blob is
// malformed. Corruption means logged out, not a failure.
func (st *Store) Load(ctx context.Context) (*Session, error) {
	var rec record
	if err := st.DB.WithContext(ctx).Where("key = ?", StorageKey).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal([]byte(rec.Data), &s); err != nil {
		return nil, nil
	}
	return &s, nil
}

func (st *Store) Clear(ctx context.Context) error {
	return st.DB.WithContext(ctx).Where("key = ?", StorageKey).Delete(&record{}).Error
}

func (st *Store) Close() error {
	sqlDB, err := st.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
