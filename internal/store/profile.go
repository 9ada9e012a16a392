package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/drishti/internal/engine"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile represents a named calibration profile stored in the database.
type Profile struct {
	ID          string
	Name        string
	Sensitivity float64
	Smoothing   float64
	DwellTimeMs int
	ClickMethod engine.ClickMethod
	Active      bool
	Samples     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Calibration converts the stored parameters into an engine calibration,
// clamped into the engine's documented bounds.
func (p *Profile) Calibration() engine.Calibration {
	return engine.Calibration{
		Sensitivity: p.Sensitivity,
		Smoothing:   p.Smoothing,
		DwellTimeMs: p.DwellTimeMs,
		ClickMethod: p.ClickMethod,
	}.Clamp()
}

// ProfileRepository provides CRUD operations for calibration profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, sensitivity, smoothing, dwell_time_ms, click_method, active, samples, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Sensitivity, p.Smoothing, p.DwellTimeMs, string(p.ClickMethod),
		boolToInt(p.Active), p.Samples, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, sensitivity, smoothing, dwell_time_ms, click_method, active, samples, created_at, updated_at
		 FROM profiles WHERE id = ?`,
		id,
	))
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, sensitivity, smoothing, dwell_time_ms, click_method, active, samples, created_at, updated_at
		 FROM profiles WHERE name = ?`,
		name,
	))
}

// GetActive retrieves the currently active profile.
// Returns nil, nil when no profile has been activated.
func (r *ProfileRepository) GetActive() (*Profile, error) {
	p, err := r.scanOne(r.db.QueryRow(
		`SELECT id, name, sensitivity, smoothing, dwell_time_ms, click_method, active, samples, created_at, updated_at
		 FROM profiles WHERE active = 1`,
	))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// List retrieves all profiles from the database.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, sensitivity, smoothing, dwell_time_ms, click_method, active, samples, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		var method string
		var active int

		err := rows.Scan(&p.ID, &p.Name, &p.Sensitivity, &p.Smoothing, &p.DwellTimeMs,
			&method, &active, &p.Samples, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}

		p.ClickMethod = engine.ClickMethod(method)
		p.Active = active != 0
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update updates an existing profile in the database.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, sensitivity = ?, smoothing = ?, dwell_time_ms = ?, click_method = ?, samples = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Sensitivity, p.Smoothing, p.DwellTimeMs, string(p.ClickMethod), p.Samples, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Activate marks the given profile active and deactivates every other
// profile in a single transaction.
func (r *ProfileRepository) Activate(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE profiles SET active = 0 WHERE active = 1`); err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE profiles SET active = 1, updated_at = ? WHERE id = ?`,
		time.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// Delete removes a profile from the database by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *ProfileRepository) scanOne(row *sql.Row) (*Profile, error) {
	p := &Profile{}
	var method string
	var active int

	err := row.Scan(&p.ID, &p.Name, &p.Sensitivity, &p.Smoothing, &p.DwellTimeMs,
		&method, &active, &p.Samples, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.ClickMethod = engine.ClickMethod(method)
	p.Active = active != 0
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
