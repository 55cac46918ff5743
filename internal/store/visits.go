package store

import (
	"fmt"

	"github.com/sadopc/dpclog/internal/visit"
)

const visitColumns = `id, dpc, region, created_by, date, retailer_code, retailer_name,
	city, state, visit_type, approved, approval_date, received_date, notes`

// CreateVisit inserts a new visit and returns it with its assigned id.
func (s *Store) CreateVisit(v visit.Visit) (*visit.Visit, error) {
	v = visit.Derive(v)
	res, err := s.db.Exec(
		`INSERT INTO visits (dpc, region, created_by, date, retailer_code, retailer_name,
			city, state, visit_type, approved, approval_date, received_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.DPC, v.Region, v.CreatedBy, v.Date, v.RetailerCode, v.RetailerName,
		v.City, v.State, string(v.VisitType), boolInt(v.Approved), v.ApprovalDate, v.ReceivedDate, v.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert visit: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetVisit(id)
}

// UpdateVisit replaces the record with v's id. The creator is part of the
// update payload; the form controller preserves the original one.
func (s *Store) UpdateVisit(v visit.Visit) (*visit.Visit, error) {
	v = visit.Derive(v)
	res, err := s.db.Exec(
		`UPDATE visits SET dpc = ?, region = ?, created_by = ?, date = ?, retailer_code = ?,
			retailer_name = ?, city = ?, state = ?, visit_type = ?, approved = ?,
			approval_date = ?, received_date = ?, notes = ?
		 WHERE id = ?`,
		v.DPC, v.Region, v.CreatedBy, v.Date, v.RetailerCode,
		v.RetailerName, v.City, v.State, string(v.VisitType), boolInt(v.Approved),
		v.ApprovalDate, v.ReceivedDate, v.Notes, v.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update visit %d: %w", v.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("update visit %d: no such visit", v.ID)
	}
	return s.GetVisit(v.ID)
}

// DeleteVisit removes exactly the record with the given id.
func (s *Store) DeleteVisit(id int64) error {
	res, err := s.db.Exec(`DELETE FROM visits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete visit %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete visit %d: no such visit", id)
	}
	return nil
}

func (s *Store) GetVisit(id int64) (*visit.Visit, error) {
	row := s.db.QueryRow(`SELECT `+visitColumns+` FROM visits WHERE id = ?`, id)
	v, err := scanVisit(row)
	if err != nil {
		return nil, fmt.Errorf("get visit %d: %w", id, err)
	}
	return v, nil
}

// ListVisits returns the full collection ordered by date then id.
func (s *Store) ListVisits() ([]visit.Visit, error) {
	rows, err := s.db.Query(`SELECT ` + visitColumns + ` FROM visits ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []visit.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, *v)
	}
	return visits, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisit(row rowScanner) (*visit.Visit, error) {
	v := &visit.Visit{}
	var visitType string
	var approved int
	err := row.Scan(
		&v.ID, &v.DPC, &v.Region, &v.CreatedBy, &v.Date, &v.RetailerCode, &v.RetailerName,
		&v.City, &v.State, &visitType, &approved, &v.ApprovalDate, &v.ReceivedDate, &v.Notes,
	)
	if err != nil {
		return nil, err
	}
	v.VisitType = visit.VisitType(visitType)
	v.Approved = approved == 1
	return v, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
