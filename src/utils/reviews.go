package utils

import (
	"errors"
	"lingua/src/db"
	"lingua/src/models"
	"lingua/src/models/scopes"
	"lingua/src/types"
	"log"

	"gorm.io/gorm"
)

func reviewTargetExists(tx *gorm.DB, targetType types.ReviewTarget, targetID uint) (bool, error) {
	var count int64
	var err error
	switch targetType {
	case types.REVIEW_TARGET_SCHOOL:
		err = tx.Model(&models.School{}).Scopes(scopes.WithID(targetID)).Count(&count).Error
	case types.REVIEW_TARGET_TUTOR:
		err = tx.Model(&models.Tutor{}).Scopes(scopes.WithID(targetID)).Count(&count).Error
	case types.REVIEW_TARGET_COURSE:
		err = tx.Model(&models.Course{}).Scopes(scopes.WithID(targetID)).Count(&count).Error
	default:
		return false, &ValidationError{Field: "target_type", Reason: "must be school, tutor or course"}
	}
	return count > 0, err
}

// completedBookingFor finds a completed booking linking the reviewer to the
// target, which is what makes a tutor or course review eligible.
func completedBookingFor(tx *gorm.DB, reviewerID uint, targetType types.ReviewTarget, targetID uint) (*models.Booking, error) {
	cond := "course_id = ?"
	if targetType == types.REVIEW_TARGET_TUTOR {
		cond = "tutor_id = ?"
	}
	var booking models.Booking
	err := tx.
		Model(&models.Booking{}).
		Scopes(scopes.ForStudent(reviewerID)).
		Where("status = ?", types.BOOKING_COMPLETED).
		Where(cond, targetID).
		First(&booking).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func AddReview(reviewerID uint, params *types.CreateReviewRequestBody) (*models.Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	var review models.Review
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		exists, err := reviewTargetExists(tx, params.TargetType, params.TargetID)
		if err != nil {
			return err
		}
		if !exists {
			return &NotFoundError{Entity: string(params.TargetType), ID: params.TargetID}
		}

		var linked *models.Booking
		if params.TargetType != types.REVIEW_TARGET_SCHOOL {
			linked, err = completedBookingFor(tx, reviewerID, params.TargetType, params.TargetID)
			if err != nil {
				return err
			}
			if linked == nil {
				return &AuthorizationError{
					Reason: "reviews require a completed booking with this " + string(params.TargetType),
				}
			}
		}

		var count int64
		if err := tx.
			Model(&models.Review{}).
			Where(&models.Review{
				ReviewerID: reviewerID,
				TargetType: params.TargetType,
				TargetID:   params.TargetID,
			}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Reason: "you have already reviewed this " + string(params.TargetType)}
		}

		// School reviews have no booking edge to verify against, so they
		// count as verified by policy; the aggregates only see verified rows.
		verified := linked != nil || params.TargetType == types.REVIEW_TARGET_SCHOOL
		review = models.Review{
			ReviewerID: reviewerID,
			TargetType: params.TargetType,
			TargetID:   params.TargetID,
			Rating:     params.Rating,
			Comment:    params.Comment,
			Verified:   verified,
			Public:     true,
		}
		if linked != nil {
			review.BookingID = &linked.ID
		} else if params.BookingID != nil {
			review.BookingID = params.BookingID
		}
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &ConflictError{Reason: "you have already reviewed this " + string(params.TargetType)}
			}
			return err
		}
		return recomputeTargetRating(tx, params.TargetType, params.TargetID)
	})
	if err != nil {
		log.Printf("AddReview failed for reviewer [%d]: %s\n", reviewerID, err.Error())
		return nil, err
	}
	return &review, nil
}

// recomputeTargetRating rebuilds the denormalized aggregates from scratch in
// the same transaction as the insert. Full recomputation is O(reviews) per
// write; acceptable at current volumes.
func recomputeTargetRating(tx *gorm.DB, targetType types.ReviewTarget, targetID uint) error {
	var agg struct {
		Rating float64
		Total  int64
	}
	if err := tx.
		Model(&models.Review{}).
		Scopes(scopes.PublicVerifiedReviews).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Select("COALESCE(AVG(rating), 0) AS rating, COUNT(id) AS total").
		Scan(&agg).
		Error; err != nil {
		return err
	}
	updates := map[string]any{
		"rating":       agg.Rating,
		"review_count": agg.Total,
	}
	switch targetType {
	case types.REVIEW_TARGET_SCHOOL:
		return tx.Model(&models.School{}).Scopes(scopes.WithID(targetID)).Updates(updates).Error
	case types.REVIEW_TARGET_TUTOR:
		return tx.Model(&models.Tutor{}).Scopes(scopes.WithID(targetID)).Updates(updates).Error
	case types.REVIEW_TARGET_COURSE:
		return tx.Model(&models.Course{}).Scopes(scopes.WithID(targetID)).Updates(updates).Error
	}
	return nil
}

func GetReviewsForTarget(targetType types.ReviewTarget, targetID uint) ([]models.Review, error) {
	var reviews []models.Review
	db := db.GetDb()
	err := db.
		Model(&models.Review{}).
		Where("target_type = ? AND target_id = ? AND public = ?", targetType, targetID, true).
		Order("created_at DESC").
		Limit(100).
		Find(&reviews).
		Error
	return reviews, err
}
