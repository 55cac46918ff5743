package store

import (
	"fmt"

	"github.com/sadopc/dpclog/internal/visit"
)

// ListRetailers returns the retailer reference list ordered by name.
func (s *Store) ListRetailers() ([]visit.Retailer, error) {
	rows, err := s.db.Query(`SELECT code, name, city, state FROM retailers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list retailers: %w", err)
	}
	defer rows.Close()

	var retailers []visit.Retailer
	for rows.Next() {
		var r visit.Retailer
		if err := rows.Scan(&r.Code, &r.Name, &r.City, &r.State); err != nil {
			return nil, err
		}
		retailers = append(retailers, r)
	}
	return retailers, rows.Err()
}

// ListReps returns the DPC roster with monthly targets, ordered by name.
func (s *Store) ListReps() ([]visit.Rep, error) {
	rows, err := s.db.Query(`SELECT name, region, target FROM dpcs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list dpcs: %w", err)
	}
	defer rows.Close()

	var reps []visit.Rep
	for rows.Next() {
		var r visit.Rep
		if err := rows.Scan(&r.Name, &r.Region, &r.Target); err != nil {
			return nil, err
		}
		reps = append(reps, r)
	}
	return reps, rows.Err()
}

// Regions returns the distinct roster regions in order.
func (s *Store) Regions() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT region FROM dpcs ORDER BY region`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	var regions []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, rows.Err()
}
