package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func OpenPostgres(user, password, dbName, host, port, sslMode string) (*gorm.DB, error) {
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC", host, user, password, dbName, port, sslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// OpenSQLite is the zero-setup default; a single file next to the daemon is
// plenty for one household's worth of lookups.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

func New(db *gorm.DB) (*Repo, error) {
	if err := db.AutoMigrate(&UsageRecord{}); err != nil {
		return nil, err
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Insert(ctx context.Context, rec *UsageRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.TS.IsZero() {
		rec.TS = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// Stats summarizes the usage records. RateLimited counts upstream 429s
// relayed through the forward handler; requests denied by tempyd's own
// limiter never reach it and show up in the http_requests_total metric
// instead.
type Stats struct {
	Total        int64           `json:"total"`
	CacheHits    int64           `json:"cache_hits"`
	RateLimited  int64           `json:"rate_limited"`
	TopLocations []LocationCount `json:"top_locations"`
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := r.db.WithContext(ctx).Model(&UsageRecord{}).Count(&s.Total).Error; err != nil {
		return Stats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&UsageRecord{}).Where("cache_hit = ?", true).Count(&s.CacheHits).Error; err != nil {
		return Stats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&UsageRecord{}).Where("status = ?", 429).Count(&s.RateLimited).Error; err != nil {
		return Stats{}, err
	}
	err := r.db.WithContext(ctx).Model(&UsageRecord{}).
		Select("location, count(*) as count").
		Group("location").
		Order("count DESC").
		Limit(5).
		Scan(&s.TopLocations).Error
	if err != nil {
		return Stats{}, err
	}
	return s, nil
}

// PurgeOlderThan deletes records with a timestamp before cutoff and reports
// how many rows went away.
func (r *Repo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("ts < ?", cutoff).Delete(&UsageRecord{})
	return res.RowsAffected, res.Error
}
