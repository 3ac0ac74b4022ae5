package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fishinghit/fishhit/internal/domain"
	"github.com/google/uuid"
)

// CreateChecklist persists a new empty checklist and returns it
func (s *Store) CreateChecklist(name string) (*domain.GearChecklist, error) {
	cl := domain.GearChecklist{ID: uuid.New().String(), Name: name}

	_, err := s.db.Exec(
		"INSERT INTO checklists (id, name, created_at) VALUES (?, ?, ?)",
		cl.ID, cl.Name, time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert checklist: %w", err)
	}

	return &cl, nil
}

// RenameChecklist updates a checklist's name
func (s *Store) RenameChecklist(id, name string) error {
	res, err := s.db.Exec("UPDATE checklists SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("rename checklist: %w", err)
	}
	return checkAffected(res)
}

// DeleteChecklist removes a checklist and, via the schema's cascade, its items
func (s *Store) DeleteChecklist(id string) error {
	res, err := s.db.Exec("DELETE FROM checklists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete checklist: %w", err)
	}
	return checkAffected(res)
}

// AddChecklistItem appends an unchecked item to the end of a checklist
func (s *Store) AddChecklistItem(checklistID, name string) (*domain.GearItem, error) {
	item := domain.GearItem{ID: uuid.New().String(), Name: name}

	var pos int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM checklist_items WHERE checklist_id = ?",
		checklistID,
	).Scan(&pos)
	if err != nil {
		return nil, fmt.Errorf("next item position: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO checklist_items (id, checklist_id, name, checked, position) VALUES (?, ?, ?, 0, ?)",
		item.ID, checklistID, item.Name, pos,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return &item, nil
}

// ToggleChecklistItem flips an item's checked flag in place and returns
// the new state
func (s *Store) ToggleChecklistItem(itemID string) (bool, error) {
	res, err := s.db.Exec("UPDATE checklist_items SET checked = 1 - checked WHERE id = ?", itemID)
	if err != nil {
		return false, fmt.Errorf("toggle item: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return false, err
	}

	var checked bool
	if err := s.db.QueryRow("SELECT checked FROM checklist_items WHERE id = ?", itemID).Scan(&checked); err != nil {
		return false, fmt.Errorf("read item state: %w", err)
	}
	return checked, nil
}

// RemoveChecklistItem deletes a single item
func (s *Store) RemoveChecklistItem(itemID string) error {
	res, err := s.db.Exec("DELETE FROM checklist_items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return checkAffected(res)
}

// GetChecklist retrieves one checklist with its items in order
func (s *Store) GetChecklist(id string) (*domain.GearChecklist, error) {
	var cl domain.GearChecklist
	err := s.db.QueryRow("SELECT id, name FROM checklists WHERE id = ?", id).Scan(&cl.ID, &cl.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get checklist: %w", err)
	}

	items, err := s.checklistItems(id)
	if err != nil {
		return nil, err
	}
	cl.Items = items

	return &cl, nil
}

// ListChecklists returns every checklist with its items in order
func (s *Store) ListChecklists() ([]domain.GearChecklist, error) {
	rows, err := s.db.Query("SELECT id, name FROM checklists ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	defer rows.Close()

	var lists []domain.GearChecklist
	for rows.Next() {
		var cl domain.GearChecklist
		if err := rows.Scan(&cl.ID, &cl.Name); err != nil {
			return nil, fmt.Errorf("scan checklist: %w", err)
		}
		lists = append(lists, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		items, err := s.checklistItems(lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
	}

	return lists, nil
}

func (s *Store) checklistItems(checklistID string) ([]domain.GearItem, error) {
	rows, err := s.db.Query(
		"SELECT id, name, checked FROM checklist_items WHERE checklist_id = ? ORDER BY position ASC",
		checklistID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.GearItem
	for rows.Next() {
		var it domain.GearItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Checked); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
