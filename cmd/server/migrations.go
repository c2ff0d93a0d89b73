package main

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2025_05_02_Initial",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists transactions
(
    id                text not null primary key,
    user_id           bigint not null,
    source            text not null,
    external_id       text not null,
    occurred_at       timestamp,
    category_id       bigint,
    description       text,
    amount_uah        decimal,
    original_currency text,
    original_amount   decimal,
    is_deleted        boolean default false,
    created_at        timestamp
);
create unique index if not exists transactions_identity_key
    on transactions (user_id, source, external_id);
`).Error
			},
		},
		{
			ID: "2025_05_02_ExchangeRates",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists exchange_rates
(
    id             bigserial primary key,
    currency       text not null,
    effective_date date not null,
    sale_rate      decimal,
    updated_at     timestamp
);
create unique index if not exists exchange_rates_currency_date
    on exchange_rates (currency, effective_date);
`).Error
			},
		},
		{
			ID: "2025_05_02_Categories",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists categories
(
    id        bigserial primary key,
    user_id   bigint not null,
    name      text not null,
    parent_id bigint
);
create table if not exists category_rules
(
    id                 bigserial primary key,
    user_id            bigint not null,
    position           integer not null,
    match_kind         text not null,
    pattern            text not null,
    target_category_id bigint,
    marks_deleted      boolean default false
);
`).Error
			},
		},
		{
			ID: "2025_05_09_SeedCatchAll",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`insert into categories (id, user_id, name)
values (1, 0, 'Other')
on conflict (id) do nothing;
`).Error
			},
		},
	}
}
