package inmemdb

import "github.com/VarunPasupunuri/mind-sprouts/core/assignment"

type assignmentRepository struct {
	db *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

// SetAssignmentCatalog seeds the fixed assignment catalog.
func (db *DB) SetAssignmentCatalog(catalog []assignment.Assignment) {
	db.assignment.Lock()
	defer db.assignment.Unlock()
	db.assignment.catalog = catalog
}

func submissionKey(userID, assignmentID string) string {
	return userID + "/" + assignmentID
}

func (repo *assignmentRepository) QueryAllAssignments() ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	catalog := make([]assignment.Assignment, len(repo.db.catalog))
	copy(catalog, repo.db.catalog)
	return catalog, nil
}

func (repo *assignmentRepository) GetAssignmentByID(id string) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, a := range repo.db.catalog {
		if a.ID == id {
			return a, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) GetSubmission(userID, assignmentID string) (assignment.Submission, bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sub, ok := repo.db.submissions[submissionKey(userID, assignmentID)]; ok {
		return *sub, true, nil
	}
	return assignment.Submission{}, false, nil
}

func (repo *assignmentRepository) SaveSubmission(sub assignment.Submission) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.submissions[submissionKey(sub.UserID, sub.AssignmentID)] = &sub
	return nil
}
