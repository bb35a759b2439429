package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"keyshare/internal/crypto"
	"keyshare/internal/domain"
	"keyshare/internal/store"
)

type snapshotRow struct {
	Name        string `gorm:"primaryKey"`
	Fingerprint string `gorm:"index"`
	Body        []byte
	UpdatedAt   time.Time
}

func (snapshotRow) TableName() string { return "key_snapshots" }

// Store implements domain.SnapshotStore on a gorm database.
type Store struct{ DB *gorm.DB }

// Open connects to dsn, picking the driver from its scheme.
func Open(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		dial = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}
	return db, nil
}

// New wraps an open database. Call Migrate before first use.
func New(db *gorm.DB) *Store { return &Store{DB: db} }

// Migrate creates or updates the snapshot table.
func (s *Store) Migrate(ctx context.Context) error {
	return s.DB.WithContext(ctx).AutoMigrate(&snapshotRow{})
}

// SaveSnapshot upserts snapshot under name.
func (s *Store) SaveSnapshot(ctx context.Context, name string, snapshot domain.KeyQueryResponse) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	fp, err := crypto.SnapshotFingerprint(snapshot)
	if err != nil {
		return err
	}
	row := snapshotRow{Name: name, Fingerprint: fp.String(), Body: body, UpdatedAt: time.Now().UTC()}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"fingerprint", "body", "updated_at"}),
		}).
		Create(&row).Error
}

// LoadSnapshot returns the snapshot saved under name and whether it was present.
func (s *Store) LoadSnapshot(ctx context.Context, name string) (domain.KeyQueryResponse, bool, error) {
	if err := store.ValidateName(name); err != nil {
		return domain.KeyQueryResponse{}, false, err
	}
	var row snapshotRow
	if err := s.DB.WithContext(ctx).First(&row, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.KeyQueryResponse{}, false, nil
		}
		return domain.KeyQueryResponse{}, false, err
	}
	var snap domain.KeyQueryResponse
	if err := json.Unmarshal(row.Body, &snap); err != nil {
		return domain.KeyQueryResponse{}, false, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return snap, true, nil
}

// NamesByFingerprint lists the snapshots whose content has fingerprint fp.
func (s *Store) NamesByFingerprint(ctx context.Context, fp domain.Fingerprint) ([]string, error) {
	var names []string
	err := s.DB.WithContext(ctx).
		Model(&snapshotRow{}).
		Where("fingerprint = ?", fp.String()).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

var _ domain.SnapshotStore = (*Store)(nil)
