package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"opmatch/internal/domain"
)

// Bookmark marks an existing match as bookmarked. Returns false when no match
// record exists for the pair, which is an expected outcome rather than an
// error. Re-bookmarking an already bookmarked match succeeds silently.
func (s *MatchService) Bookmark(ctx context.Context, userID, opportunityID uuid.UUID) (bool, error) {
	updated, err := s.matches.SetBookmarked(ctx, userID, opportunityID, true)
	if err != nil {
		return false, fmt.Errorf("bookmark match: %w", err)
	}
	return updated, nil
}

// Dismiss marks an existing match as dismissed. Same contract as Bookmark.
func (s *MatchService) Dismiss(ctx context.Context, userID, opportunityID uuid.UUID) (bool, error) {
	updated, err := s.matches.SetDismissed(ctx, userID, opportunityID, true)
	if err != nil {
		return false, fmt.Errorf("dismiss match: %w", err)
	}
	return updated, nil
}

// RecordFeedback applies a user action to an existing match. "apply" is
// treated as an implicit bookmark; "view" only logs, reserved for future
// scoring feedback loops.
func (s *MatchService) RecordFeedback(ctx context.Context, userID, opportunityID uuid.UUID, action string) (bool, error) {
	switch action {
	case domain.FeedbackActionBookmark, domain.FeedbackActionApply:
		return s.Bookmark(ctx, userID, opportunityID)
	case domain.FeedbackActionDismiss:
		return s.Dismiss(ctx, userID, opportunityID)
	case domain.FeedbackActionView:
		_, found, err := s.matches.Get(ctx, userID, opportunityID)
		if err != nil {
			return false, fmt.Errorf("get match: %w", err)
		}
		if found {
			s.logger.Info("match viewed",
				zap.String("user_id", userID.String()),
				zap.String("opportunity_id", opportunityID.String()),
			)
		}
		return found, nil
	default:
		return false, fmt.Errorf("unknown feedback action %q", action)
	}
}
