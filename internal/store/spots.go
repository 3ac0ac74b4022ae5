package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fishinghit/fishhit/internal/domain"
	"github.com/google/uuid"
)

// AddSpot persists a new map spot and returns it with id and creation
// time filled in
func (s *Store) AddSpot(sp domain.FishingSpot) (*domain.FishingSpot, error) {
	sp.ID = uuid.New().String()
	sp.CreatedAt = time.Now()

	_, err := s.db.Exec(
		`INSERT INTO spots (id, latitude, longitude, fish_type, depth, gear, icon, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.Latitude, sp.Longitude, sp.FishType, sp.Depth, sp.Gear, sp.Icon, sp.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert spot: %w", err)
	}

	return &sp, nil
}

// ListSpots returns saved spots sorted by fish type, narrowed by the filter
func (s *Store) ListSpots(f domain.SpotFilter) ([]domain.FishingSpot, error) {
	rows, err := s.db.Query(
		`SELECT id, latitude, longitude, fish_type, depth, gear, icon, created_at
		 FROM spots ORDER BY fish_type ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list spots: %w", err)
	}
	defer rows.Close()

	var spots []domain.FishingSpot
	for rows.Next() {
		var sp domain.FishingSpot
		if err := rows.Scan(&sp.ID, &sp.Latitude, &sp.Longitude, &sp.FishType, &sp.Depth, &sp.Gear, &sp.Icon, &sp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan spot: %w", err)
		}
		if f.Matches(sp) {
			spots = append(spots, sp)
		}
	}

	return spots, rows.Err()
}

// DeleteAllSpots clears the spot table. Spots have no per-record delete
// flow; removal only happens through store-wide cleanup.
func (s *Store) DeleteAllSpots() error {
	if _, err := s.db.Exec("DELETE FROM spots"); err != nil {
		return fmt.Errorf("delete spots: %w", err)
	}
	return nil
}

// AddRoute persists a named ordered coordinate list
func (s *Store) AddRoute(r domain.FishingRoute) (*domain.FishingRoute, error) {
	r.ID = uuid.New().String()
	r.CreatedAt = time.Now()

	coords, err := json.Marshal(r.Spots)
	if err != nil {
		return nil, fmt.Errorf("marshal route spots: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO routes (id, name, spots, created_at) VALUES (?, ?, ?, ?)",
		r.ID, r.Name, string(coords), r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert route: %w", err)
	}

	return &r, nil
}

// ListRoutes returns all saved routes
func (s *Store) ListRoutes() ([]domain.FishingRoute, error) {
	rows, err := s.db.Query("SELECT id, name, spots, created_at FROM routes ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	var routes []domain.FishingRoute
	for rows.Next() {
		var r domain.FishingRoute
		var coords string
		if err := rows.Scan(&r.ID, &r.Name, &coords, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		if err := json.Unmarshal([]byte(coords), &r.Spots); err != nil {
			return nil, fmt.Errorf("unmarshal route spots: %w", err)
		}
		routes = append(routes, r)
	}

	return routes, rows.Err()
}
