package assignment

import (
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

// reviewDelay simulates the teacher review turnaround before a submission
// auto-approves.
const reviewDelay = 3 * time.Second

var (
	// errors
	ErrNotFound         = errors.New("assignment not found")
	ErrAlreadySubmitted = errors.New("assignment already submitted and pending review")
	ErrAlreadyApproved  = errors.New("assignment already approved")
	ErrNotSubmitted     = errors.New("assignment has no pending submission")
)

type (
	Repository interface {
		QueryAllAssignments() ([]Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		GetSubmission(userID, assignmentID string) (Submission, bool, error)
		SaveSubmission(sub Submission) error
	}

	Service struct {
		repo  Repository
		usrs  *user.Service
		sched core.Scheduler
		log   core.Logger

		mutex   sync.Mutex
		pending map[string]core.TaskHandle // userID+assignmentID -> auto-approval
	}
)

func NewService(repo Repository, usrSvc *user.Service, sched core.Scheduler, logger core.Logger) *Service {
	return &Service{
		repo:    repo,
		usrs:    usrSvc,
		sched:   sched,
		log:     logger,
		pending: make(map[string]core.TaskHandle),
	}
}

// QueryAll returns the catalog decorated with the user's submission states.
func (svc *Service) QueryAll(userID string) ([]UserAssignment, error) {
	catalog, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return nil, err
	}
	all := make([]UserAssignment, 0, len(catalog))
	for _, a := range catalog {
		ua := UserAssignment{Assignment: a, Status: StatusNotStarted}
		if sub, ok, err := svc.repo.GetSubmission(userID, a.ID); err != nil {
			return nil, err
		} else if ok {
			ua.Status = sub.Status
			ua.Attempt = sub.Attempt
			ua.SubmittedAt = sub.SubmittedAt
		}
		all = append(all, ua)
	}
	return all, nil
}

// Submit moves the submission to SUBMITTED synchronously and schedules the
// deferred auto-approval. Allowed from NOT_STARTED or REJECTED only.
func (svc *Service) Submit(userID, assignmentID string, sa SubmitAssignment) (Submission, error) {
	asg, err := svc.repo.GetAssignmentByID(assignmentID)
	if err != nil {
		return Submission{}, err
	}

	sub, ok, err := svc.repo.GetSubmission(userID, assignmentID)
	if err != nil {
		return Submission{}, err
	}
	if ok {
		switch sub.Status {
		case StatusSubmitted:
			return Submission{}, ErrAlreadySubmitted
		case StatusApproved:
			return Submission{}, ErrAlreadyApproved
		}
	} else {
		sub = Submission{AssignmentID: assignmentID, UserID: userID}
	}

	sub.Status = StatusSubmitted
	sub.Content = sa.Content
	sub.Attempt++
	sub.SubmittedAt = time.Now().UTC()
	sub.ReviewedAt = time.Time{}
	if err = svc.repo.SaveSubmission(sub); err != nil {
		return Submission{}, err
	}

	svc.scheduleAutoApproval(userID, asg, sub.Attempt)
	return sub, nil
}

// scheduleAutoApproval defers approval of the given attempt; any pending
// timer for the same submission is replaced.
func (svc *Service) scheduleAutoApproval(userID string, asg Assignment, attempt int) {
	key := userID + "/" + asg.ID

	svc.mutex.Lock()
	if h, ok := svc.pending[key]; ok {
		h.Cancel()
	}
	svc.pending[key] = svc.sched.After(reviewDelay, func() {
		svc.mutex.Lock()
		delete(svc.pending, key)
		svc.mutex.Unlock()

		if err := svc.approve(userID, asg, attempt); err != nil {
			svc.log.Error("auto-approving submission", err)
		}
	})
	svc.mutex.Unlock()
}

// approve finalizes the submission and awards points, but only when it is
// still the SUBMITTED attempt the approval was scheduled for; this guards
// against double awards from rapid re-submission.
func (svc *Service) approve(userID string, asg Assignment, attempt int) error {
	sub, ok, err := svc.repo.GetSubmission(userID, asg.ID)
	if err != nil {
		return err
	}
	if !ok || sub.Status != StatusSubmitted || sub.Attempt != attempt {
		return nil
	}

	sub.Status = StatusApproved
	sub.ReviewedAt = time.Now().UTC()
	if err = svc.repo.SaveSubmission(sub); err != nil {
		return err
	}
	_, err = svc.usrs.AwardPoints(userID, asg.Points)
	return pkgerrors.Wrap(err, "awarding assignment points")
}

// Review is a teacher's explicit verdict on a pending submission; it
// cancels the deferred auto-approval.
func (svc *Service) Review(userID, assignmentID string, rv ReviewAssignment) (Submission, error) {
	asg, err := svc.repo.GetAssignmentByID(assignmentID)
	if err != nil {
		return Submission{}, err
	}
	sub, ok, err := svc.repo.GetSubmission(userID, assignmentID)
	if err != nil {
		return Submission{}, err
	}
	if !ok || sub.Status != StatusSubmitted {
		return Submission{}, ErrNotSubmitted
	}

	key := userID + "/" + assignmentID
	svc.mutex.Lock()
	if h, found := svc.pending[key]; found {
		h.Cancel()
		delete(svc.pending, key)
	}
	svc.mutex.Unlock()

	if rv.Approve {
		sub.Status = StatusApproved
	} else {
		sub.Status = StatusRejected
	}
	sub.ReviewedAt = time.Now().UTC()
	if err = svc.repo.SaveSubmission(sub); err != nil {
		return Submission{}, err
	}
	if rv.Approve {
		if _, err = svc.usrs.AwardPoints(userID, asg.Points); err != nil {
			return Submission{}, pkgerrors.Wrap(err, "awarding assignment points")
		}
	}
	return sub, nil
}

// Shutdown cancels every pending auto-approval timer.
func (svc *Service) Shutdown() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	for key, h := range svc.pending {
		h.Cancel()
		delete(svc.pending, key)
	}
}
