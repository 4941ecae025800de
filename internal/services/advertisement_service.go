package services

import (
	"context"
	"errors"
	"log"

	"avidoBack/internal/lifecycle"
	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
)

var (
	ErrUnchangeable = errors.New(models.MsgUnchangeable)
	ErrNotActiveAd  = errors.New(models.MsgNotActiveAd)
)

// AdvertisementStore is the persistence surface the service needs;
// *repositories.AdvertisementRepository implements it.
type AdvertisementStore interface {
	CreateAdvertisement(ctx context.Context, ad models.Advertisement) (models.Advertisement, error)
	GetAdvertisements(ctx context.Context, staff bool, filter models.AdvertisementFilter) ([]models.Advertisement, error)
	GetAdvertisementByID(ctx context.Context, id int) (models.Advertisement, error)
	GetAdvertisementsByUserID(ctx context.Context, userID int) ([]models.Advertisement, error)
	UpdateAdvertisement(ctx context.Context, id int, upd models.AdvertisementUpdate) (models.Advertisement, error)
	IncrementViews(ctx context.Context, id int) error
	Transition(ctx context.Context, adID int, from, action, capability string) (string, error)
}

// SearchIndex is the text-search surface; *search.Client implements it.
// A nil index means every text query takes the store fallback.
type SearchIndex interface {
	IndexAdvertisements(ctx context.Context, ads []models.Advertisement) error
	Search(ctx context.Context, nameQuery, descriptionQuery string) ([]int, error)
}

type AdvertisementService struct {
	AdRepo      AdvertisementStore
	ViewTracker *repositories.ViewTracker
	Search      SearchIndex
	ErrorLog    *log.Logger
}

func (s *AdvertisementService) CreateAdvertisement(ctx context.Context, ad models.Advertisement) (models.Advertisement, error) {
	ad.Status = lifecycle.StatusDraft
	ad.Views = 0
	return s.AdRepo.CreateAdvertisement(ctx, ad)
}

// GetAdvertisements returns the caller-visible listing, synchronizing the
// search index first. When the index is unreachable the text query degrades
// to substring matching at the store.
func (s *AdvertisementService) GetAdvertisements(ctx context.Context, staff bool, filter models.AdvertisementFilter) ([]models.Advertisement, error) {
	ads, err := s.AdRepo.GetAdvertisements(ctx, staff, filter)
	if err != nil {
		return nil, err
	}

	hasTextQuery := filter.Name != "" || filter.Description != ""

	// Нетерпеливая синхронизация: весь видимый queryset переиндексируется
	// на каждом запросе списка, last-write-wins.
	indexed := false
	if s.Search != nil {
		if err := s.Search.IndexAdvertisements(ctx, ads); err != nil {
			s.ErrorLog.Printf("reindex advertisements: %v", err)
		} else {
			indexed = true
		}
	}

	if !hasTextQuery {
		return ads, nil
	}

	if indexed {
		ids, err := s.Search.Search(ctx, filter.Name, filter.Description)
		if err == nil {
			return intersectByID(ads, ids), nil
		}
		s.ErrorLog.Printf("search query failed, falling back to store: %v", err)
	}

	filter.TextFallback = true
	return s.AdRepo.GetAdvertisements(ctx, staff, filter)
}

// intersectByID keeps only the advertisements whose ids were matched by the
// search index, preserving the store ordering.
func intersectByID(ads []models.Advertisement, ids []int) []models.Advertisement {
	matched := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		matched[id] = struct{}{}
	}
	result := make([]models.Advertisement, 0, len(ads))
	for _, ad := range ads {
		if _, ok := matched[ad.ID]; ok {
			result = append(result, ad)
		}
	}
	return result
}

// GetDetail returns an active advertisement and counts the view when the
// viewer is not the owner and has not seen this ad in the current session.
func (s *AdvertisementService) GetDetail(ctx context.Context, adID, viewerID int, sessionID string) (models.Advertisement, error) {
	ad, err := s.AdRepo.GetAdvertisementByID(ctx, adID)
	if err != nil {
		return models.Advertisement{}, err
	}
	if !lifecycle.Visible(ad.Status) {
		return models.Advertisement{}, repositories.ErrAdvertisementNotFound
	}

	if viewerID != ad.UserID && sessionID != "" {
		first, err := s.ViewTracker.MarkViewed(ctx, sessionID, adID)
		if err != nil {
			// счётчик просмотров не должен ломать выдачу
			s.ErrorLog.Printf("mark viewed: %v", err)
			return ad, nil
		}
		if first {
			if err := s.AdRepo.IncrementViews(ctx, adID); err != nil {
				s.ErrorLog.Printf("increment views: %v", err)
				return ad, nil
			}
			ad.Views++
		}
	}
	return ad, nil
}

func (s *AdvertisementService) GetCabinet(ctx context.Context, userID int) ([]models.Advertisement, error) {
	return s.AdRepo.GetAdvertisementsByUserID(ctx, userID)
}

// GetOwned loads an advertisement scoped to its owner; someone else's ad is
// reported as not found, not as forbidden.
func (s *AdvertisementService) GetOwned(ctx context.Context, adID, userID int) (models.Advertisement, error) {
	ad, err := s.AdRepo.GetAdvertisementByID(ctx, adID)
	if err != nil {
		return models.Advertisement{}, err
	}
	if ad.UserID != userID {
		return models.Advertisement{}, repositories.ErrAdvertisementNotFound
	}
	return ad, nil
}

// UpdateOwn overwrites the mutable fields of an owned advertisement while
// it is still editable (draft or rejected).
func (s *AdvertisementService) UpdateOwn(ctx context.Context, adID, userID int, upd models.AdvertisementUpdate) (models.Advertisement, error) {
	ad, err := s.GetOwned(ctx, adID, userID)
	if err != nil {
		return models.Advertisement{}, err
	}
	if !lifecycle.Editable(ad.Status) {
		return models.Advertisement{}, ErrUnchangeable
	}
	return s.AdRepo.UpdateAdvertisement(ctx, adID, upd)
}

// Withdraw is the owner soft delete: the row is kept and the status becomes
// sold no matter what it was before.
func (s *AdvertisementService) Withdraw(ctx context.Context, adID, userID int) error {
	ad, err := s.GetOwned(ctx, adID, userID)
	if err != nil {
		return err
	}
	_, err = s.AdRepo.Transition(ctx, adID, ad.Status, lifecycle.ActionWithdraw, lifecycle.CapabilityOwner)
	return err
}

// Submit sends a draft or rejected advertisement to moderation.
func (s *AdvertisementService) Submit(ctx context.Context, adID, userID int) (models.Advertisement, error) {
	ad, err := s.GetOwned(ctx, adID, userID)
	if err != nil {
		return models.Advertisement{}, err
	}
	to, err := s.AdRepo.Transition(ctx, adID, ad.Status, lifecycle.ActionSubmit, lifecycle.CapabilityOwner)
	if err != nil {
		return models.Advertisement{}, err
	}
	ad.Status = to
	return ad, nil
}

// Unlist takes an active advertisement off the listing.
func (s *AdvertisementService) Unlist(ctx context.Context, adID, userID int) error {
	ad, err := s.GetOwned(ctx, adID, userID)
	if err != nil {
		return err
	}
	if ad.Status != lifecycle.StatusActive {
		return ErrNotActiveAd
	}
	_, err = s.AdRepo.Transition(ctx, adID, ad.Status, lifecycle.ActionUnlist, lifecycle.CapabilityOwner)
	return err
}
