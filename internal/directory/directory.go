// Package directory resolves bidder ids to display names from the
// read-only employee reference dataset.
package directory

import (
	"auction-ledger/internal/models"
	"auction-ledger/internal/store"
)

// Directory looks up employees by their employee id.
type Directory struct {
	employees *store.EmployeeStore
}

// New creates a Directory over the employee store.
func New(employees *store.EmployeeStore) *Directory {
	return &Directory{employees: employees}
}

// Lookup returns the employee with the given employee id, or nil.
func (d *Directory) Lookup(employeeID string) (*models.Employee, error) {
	employees, err := d.employees.Load()
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].EmployeeID == employeeID {
			return &employees[i], nil
		}
	}
	return nil, nil
}

// ResolveName returns the display name for a bidder id, falling back to
// the id itself when the employee is unknown or the dataset is unreadable.
func (d *Directory) ResolveName(employeeID string) string {
	emp, err := d.Lookup(employeeID)
	if err != nil || emp == nil {
		return employeeID
	}
	return emp.Name
}
