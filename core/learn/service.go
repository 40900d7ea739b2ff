package learn

import (
	"time"

	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

// ErrPointsOutOfRange rejects awards outside [0, MaxContentPoints].
var ErrPointsOutOfRange = errors.New("content points out of range")

type (
	Repository interface {
		IsContentCompleted(userID, topicID, contentID string) (bool, error)
		SaveCompletion(c Completion) error
		QueryUserCompletions(userID string) ([]Completion, error)
	}

	Service struct {
		repo Repository
		usrs *user.Service
	}
)

func NewService(repo Repository, usrSvc *user.Service) *Service {
	return &Service{repo: repo, usrs: usrSvc}
}

// CompleteContent records the completion and awards its points exactly
// once; a repeat call for the same (topicID, contentID) is a no-op.
func (svc *Service) CompleteContent(userID, topicID, contentID string, points int) (bool, error) {
	if points < 0 || points > MaxContentPoints {
		return false, ErrPointsOutOfRange
	}
	done, err := svc.repo.IsContentCompleted(userID, topicID, contentID)
	if err != nil {
		return false, err
	}
	if done {
		return false, nil
	}

	if err = svc.repo.SaveCompletion(Completion{
		UserID:      userID,
		TopicID:     topicID,
		ContentID:   contentID,
		Points:      points,
		CompletedAt: time.Now().UTC(),
	}); err != nil {
		return false, err
	}
	if _, err = svc.usrs.AwardPoints(userID, points); err != nil {
		return false, errors.Wrap(err, "awarding learning points")
	}
	return true, nil
}

// Completions returns everything the user has finished.
func (svc *Service) Completions(userID string) ([]Completion, error) {
	return svc.repo.QueryUserCompletions(userID)
}
