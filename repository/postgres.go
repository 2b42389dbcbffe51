package repository

import (
	"context"
	"errors"
	"fmt"

	"goshorturl/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewPGRepo opens the postgres database described by dsn (libpq key=value
// form without the password) and migrates table.
func NewPGRepo(dsn, password, table string) (Repository, error) {
	args := fmt.Sprintf("%s password=%s", dsn, password)
	db, err := gorm.Open(postgres.Open(args), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}

	if err := db.Table(table).AutoMigrate(&models.ShortLink{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", table, err)
	}
	return &postgresRepository{db: db, table: table}, nil
}

// NewPGRepoForTestWith is just for testing purposes (no calling AutoMigrate())
func NewPGRepoForTestWith(dial gorm.Dialector, cfg gorm.Config, table string) (Repository, error) {
	db, err := gorm.Open(dial, &cfg)
	return &postgresRepository{db: db, table: table}, err
}

type postgresRepository struct {
	db    *gorm.DB
	table string
}

func (p *postgresRepository) Upsert(ctx context.Context, link *models.ShortLink) error {
	return p.db.
		WithContext(ctx).
		Table(p.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(link).Error
}

func (p *postgresRepository) Get(ctx context.Context, id string) (*models.ShortLink, error) {
	var result models.ShortLink
	if err := p.db.
		WithContext(ctx).
		Table(p.table).
		Where("id = ?", id).
		Take(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (p *postgresRepository) IncrementClicks(ctx context.Context, id string) (*models.ShortLink, error) {
	res := p.db.
		WithContext(ctx).
		Table(p.table).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected != 1 {
		return nil, ErrRecordNotFound
	}
	return p.Get(ctx, id)
}
