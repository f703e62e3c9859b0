package recommend

import (
	"database/sql"
	"encoding/json"
	"time"
)

// PostgresCacheRepository implements CacheRepository against the
// `recommendation_cache` table. Save runs delete-then-insert in one
// transaction so two concurrent computations for the same key resolve to
// last-write-wins with no duplicate rows.
type PostgresCacheRepository struct {
	db *sql.DB
}

const (
	getCacheQuery = `
        SELECT id, entries, algorithm, generated_at, expires_at, views, clicks, conversions
        FROM recommendation_cache
        WHERE subject_key = $1 AND rec_type = $2 AND source_book_id = $3 AND expires_at > $4
        ORDER BY generated_at DESC
        LIMIT 1
    `
	deleteCacheKeyQuery = `
        DELETE FROM recommendation_cache
        WHERE subject_key = $1 AND rec_type = $2 AND source_book_id = $3
    `
	insertCacheQuery = `
        INSERT INTO recommendation_cache
            (id, subject_key, rec_type, source_book_id, entries, algorithm, generated_at, expires_at, views, clicks, conversions)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0)
    `
	purgeExpiredQuery    = `DELETE FROM recommendation_cache WHERE expires_at <= $1`
	clearForSubjectQuery = `DELETE FROM recommendation_cache WHERE subject_key = $1`
)

func NewPostgresCacheRepository(db *sql.DB) *PostgresCacheRepository {
	return &PostgresCacheRepository{db: db}
}

func (r *PostgresCacheRepository) Get(subjectKey string, typ Type, sourceBookID int) (Cached, bool, error) {
	entry := Cached{
		SubjectKey:   subjectKey,
		Type:         typ,
		SourceBookID: sourceBookID,
	}
	var rawEntries []byte
	err := r.db.QueryRow(getCacheQuery, subjectKey, string(typ), sourceBookID, time.Now().UTC()).
		Scan(&entry.ID, &rawEntries, &entry.Algorithm, &entry.GeneratedAt, &entry.ExpiresAt,
			&entry.Views, &entry.Clicks, &entry.Conversions)
	if err == sql.ErrNoRows {
		return Cached{}, false, nil
	}
	if err != nil {
		return Cached{}, false, err
	}
	if err := json.Unmarshal(rawEntries, &entry.Entries); err != nil {
		return Cached{}, false, err
	}
	return entry, true, nil
}

func (r *PostgresCacheRepository) Save(entry Cached) error {
	if len(entry.Entries) == 0 {
		return nil
	}
	entry = prepareCached(entry)

	entriesJSON, err := json.Marshal(entry.Entries)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(deleteCacheKeyQuery, entry.SubjectKey, string(entry.Type), entry.SourceBookID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(insertCacheQuery,
		entry.ID, entry.SubjectKey, string(entry.Type), entry.SourceBookID,
		string(entriesJSON), entry.Algorithm, entry.GeneratedAt, entry.ExpiresAt); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *PostgresCacheRepository) PurgeExpired() (int64, error) {
	res, err := r.db.Exec(purgeExpiredQuery, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresCacheRepository) ClearForSubject(subjectKey string) error {
	_, err := r.db.Exec(clearForSubjectQuery, subjectKey)
	return err
}

// Track increments the counter server-side so concurrent tracking calls
// never lose updates.
func (r *PostgresCacheRepository) Track(subjectKey string, typ Type, sourceBookID int, event TrackEvent) error {
	var column string
	switch event {
	case EventView:
		column = "views"
	case EventClick:
		column = "clicks"
	case EventConversion:
		column = "conversions"
	default:
		return nil
	}
	query := `UPDATE recommendation_cache SET ` + column + ` = ` + column + ` + 1
        WHERE subject_key = $1 AND rec_type = $2 AND source_book_id = $3 AND expires_at > $4`
	_, err := r.db.Exec(query, subjectKey, string(typ), sourceBookID, time.Now().UTC())
	return err
}
