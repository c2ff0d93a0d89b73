package repo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spentlog/importer/pkg/classifier"
	"github.com/spentlog/importer/pkg/common"
	"github.com/spentlog/importer/pkg/database"
)

const fallbackCategoryName = "Other"

// Postgres is the persistence collaborator. Idempotence rests on the unique
// index over (user_id, source, external_id); the store only surfaces the
// conflict, it never resolves it.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{
		db: db,
	}
}

// BulkInsert writes the whole batch in one statement. Postgres aborts the
// entire insert on a single conflicting row, so a batch with one duplicate
// fails as a whole and the caller falls back to InsertOne.
func (p *Postgres) BulkInsert(
	ctx context.Context,
	transactions []*database.Transaction,
) error {
	if len(transactions) == 0 {
		return nil
	}

	return p.db.WithContext(ctx).Create(transactions).Error
}

func (p *Postgres) InsertOne(
	ctx context.Context,
	transaction *database.Transaction,
) error {
	err := p.db.WithContext(ctx).Create(transaction).Error
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Mark(err, common.ErrDuplicate)
	}

	return err
}

// RatesBefore fetches the candidate rates; picking the most recent one is the
// resolver's job. The table holds one row per currency per day, the window
// stays small.
func (p *Postgres) RatesBefore(
	ctx context.Context,
	currency string,
	asOf time.Time,
) ([]database.ExchangeRate, error) {
	var rates []database.ExchangeRate

	err := p.db.WithContext(ctx).
		Where("currency = ? and effective_date <= ?", currency, asOf).
		Find(&rates).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch rates")
	}

	return rates, nil
}

func (p *Postgres) SaveRates(
	ctx context.Context,
	rates []database.ExchangeRate,
) error {
	if len(rates) == 0 {
		return nil
	}

	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "currency"}, {Name: "effective_date"}},
			UpdateAll: true,
		}).
		Create(&rates).Error
}

// GetRuleSet loads the user's ordered rules and top-level categories. The
// catch-all is the user's "Other" category; id 1 (seeded by migration) when
// the user has none.
func (p *Postgres) GetRuleSet(
	ctx context.Context,
	userID int64,
) (classifier.RuleSet, error) {
	var rules []database.CategoryRule

	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position asc").
		Find(&rules).Error
	if err != nil {
		return classifier.RuleSet{}, errors.Wrap(err, "failed to fetch rules")
	}

	var categories []database.Category

	err = p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&categories).Error
	if err != nil {
		return classifier.RuleSet{}, errors.Wrap(err, "failed to fetch categories")
	}

	set := classifier.RuleSet{
		Rules:              rules,
		Categories:         categories,
		FallbackCategoryID: 1,
	}

	for _, category := range categories {
		if category.ParentID == nil && category.Name == fallbackCategoryName {
			set.FallbackCategoryID = category.ID
			break
		}
	}

	return set, nil
}
