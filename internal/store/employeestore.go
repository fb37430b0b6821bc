package store

import (
	"path/filepath"
	"strings"
	"time"

	"auction-ledger/internal/models"
)

var employeeHeader = []string{"id", "employeeId", "name", "department", "admin", "pwd"}

// EmployeeStore reads the employee reference dataset. It is read-only to
// this system: employees are managed externally and consumed here only to
// resolve bidder ids to display names.
type EmployeeStore struct {
	fs *fileStore
}

// NewEmployeeStore opens (creating if absent) the employee dataset.
func NewEmployeeStore(dataDir string, lockTimeout time.Duration) (*EmployeeStore, error) {
	fs, err := newFileStore(filepath.Join(dataDir, "employees.csv"), employeeHeader, lockTimeout)
	if err != nil {
		return nil, err
	}
	return &EmployeeStore{fs: fs}, nil
}

// Load reads all employee rows. Short or blank rows are skipped.
func (s *EmployeeStore) Load() ([]models.Employee, error) {
	rows, err := s.fs.read()
	if err != nil {
		return nil, err
	}
	employees := make([]models.Employee, 0, len(rows))
	for _, row := range rows {
		if len(row) < 4 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		admin := false
		if len(row) > 4 {
			v := strings.ToLower(strings.TrimSpace(row[4]))
			admin = v == "1" || v == "true" || v == "yes"
		}
		employees = append(employees, models.Employee{
			ID:         strings.TrimSpace(row[0]),
			EmployeeID: strings.TrimSpace(row[1]),
			Name:       strings.TrimSpace(row[2]),
			Department: strings.TrimSpace(row[3]),
			Admin:      admin,
		})
	}
	return employees, nil
}
