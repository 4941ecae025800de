package services

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
)

func TestIntersectByID(t *testing.T) {
	ads := []models.Advertisement{
		{ID: 1, Name: "bike"},
		{ID: 2, Name: "sofa"},
		{ID: 3, Name: "phone"},
	}

	result := intersectByID(ads, []int{3, 1, 99})
	if len(result) != 2 {
		t.Fatalf("expected 2 advertisements, got %d", len(result))
	}
	// порядок выдачи хранилища сохраняется
	if result[0].ID != 1 || result[1].ID != 3 {
		t.Fatalf("unexpected order: %d, %d", result[0].ID, result[1].ID)
	}
}

func TestIntersectByIDEmptyMatches(t *testing.T) {
	ads := []models.Advertisement{{ID: 1}, {ID: 2}}

	result := intersectByID(ads, nil)
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %d items", len(result))
	}
}

type fakeAdStore struct {
	ads     []models.Advertisement
	filters []models.AdvertisementFilter
}

func (f *fakeAdStore) CreateAdvertisement(ctx context.Context, ad models.Advertisement) (models.Advertisement, error) {
	return ad, nil
}

func (f *fakeAdStore) GetAdvertisements(ctx context.Context, staff bool, filter models.AdvertisementFilter) ([]models.Advertisement, error) {
	f.filters = append(f.filters, filter)
	if filter.TextFallback {
		var matched []models.Advertisement
		for _, ad := range f.ads {
			if filter.Name != "" && strings.Contains(ad.Name, filter.Name) {
				matched = append(matched, ad)
			}
		}
		return matched, nil
	}
	return f.ads, nil
}

func (f *fakeAdStore) GetAdvertisementByID(ctx context.Context, id int) (models.Advertisement, error) {
	for _, ad := range f.ads {
		if ad.ID == id {
			return ad, nil
		}
	}
	return models.Advertisement{}, repositories.ErrAdvertisementNotFound
}

func (f *fakeAdStore) GetAdvertisementsByUserID(ctx context.Context, userID int) ([]models.Advertisement, error) {
	return nil, nil
}

func (f *fakeAdStore) UpdateAdvertisement(ctx context.Context, id int, upd models.AdvertisementUpdate) (models.Advertisement, error) {
	return models.Advertisement{}, nil
}

func (f *fakeAdStore) IncrementViews(ctx context.Context, id int) error { return nil }

func (f *fakeAdStore) Transition(ctx context.Context, adID int, from, action, capability string) (string, error) {
	return from, nil
}

type fakeSearchIndex struct {
	indexErr  error
	searchErr error
	ids       []int
	indexed   int
	queried   int
}

func (f *fakeSearchIndex) IndexAdvertisements(ctx context.Context, ads []models.Advertisement) error {
	f.indexed++
	return f.indexErr
}

func (f *fakeSearchIndex) Search(ctx context.Context, nameQuery, descriptionQuery string) ([]int, error) {
	f.queried++
	return f.ids, f.searchErr
}

func listingService(store *fakeAdStore, index SearchIndex) *AdvertisementService {
	return &AdvertisementService{
		AdRepo:   store,
		Search:   index,
		ErrorLog: log.New(io.Discard, "", 0),
	}
}

func TestGetAdvertisementsUsesIndexWhenHealthy(t *testing.T) {
	store := &fakeAdStore{ads: []models.Advertisement{
		{ID: 1, Name: "bike"},
		{ID: 2, Name: "sofa"},
		{ID: 3, Name: "mountain bike"},
	}}
	index := &fakeSearchIndex{ids: []int{3, 1}}
	svc := listingService(store, index)

	ads, err := svc.GetAdvertisements(context.Background(), false, models.AdvertisementFilter{Name: "bike"})
	if err != nil {
		t.Fatalf("GetAdvertisements returned error: %v", err)
	}

	if index.indexed != 1 {
		t.Errorf("expected one reindex pass, got %d", index.indexed)
	}
	if len(ads) != 2 || ads[0].ID != 1 || ads[1].ID != 3 {
		t.Fatalf("expected intersected ids [1 3], got %+v", ads)
	}
	if len(store.filters) != 1 {
		t.Fatalf("expected a single store query, got %d", len(store.filters))
	}
	if store.filters[0].TextFallback {
		t.Error("healthy index must not trigger the store fallback")
	}
}

func TestGetAdvertisementsFallsBackWhenReindexFails(t *testing.T) {
	store := &fakeAdStore{ads: []models.Advertisement{
		{ID: 1, Name: "bike"},
		{ID: 2, Name: "sofa"},
	}}
	index := &fakeSearchIndex{indexErr: errors.New("connection refused")}
	svc := listingService(store, index)

	ads, err := svc.GetAdvertisements(context.Background(), false, models.AdvertisementFilter{Name: "bike"})
	if err != nil {
		t.Fatalf("GetAdvertisements returned error: %v", err)
	}

	if index.queried != 0 {
		t.Error("a failed reindex must not be followed by an index query")
	}
	if len(store.filters) != 2 || !store.filters[1].TextFallback {
		t.Fatalf("expected a second store query with the text fallback, got %+v", store.filters)
	}
	if len(ads) != 1 || ads[0].ID != 1 {
		t.Fatalf("expected the substring match only, got %+v", ads)
	}
}

func TestGetAdvertisementsFallsBackWhenQueryFails(t *testing.T) {
	store := &fakeAdStore{ads: []models.Advertisement{
		{ID: 1, Name: "bike"},
		{ID: 2, Name: "sofa"},
	}}
	index := &fakeSearchIndex{searchErr: errors.New("search_phase_execution_exception")}
	svc := listingService(store, index)

	ads, err := svc.GetAdvertisements(context.Background(), false, models.AdvertisementFilter{Name: "sofa"})
	if err != nil {
		t.Fatalf("GetAdvertisements returned error: %v", err)
	}

	if index.indexed != 1 || index.queried != 1 {
		t.Errorf("expected reindex and query to be attempted, got %d/%d", index.indexed, index.queried)
	}
	if len(store.filters) != 2 || !store.filters[1].TextFallback {
		t.Fatalf("expected the store fallback after the failed query, got %+v", store.filters)
	}
	if len(ads) != 1 || ads[0].ID != 2 {
		t.Fatalf("expected the substring match only, got %+v", ads)
	}
}

func TestGetAdvertisementsWithoutIndexOrTextQuery(t *testing.T) {
	store := &fakeAdStore{ads: []models.Advertisement{{ID: 1}, {ID: 2}}}
	svc := listingService(store, nil)

	ads, err := svc.GetAdvertisements(context.Background(), false, models.AdvertisementFilter{})
	if err != nil {
		t.Fatalf("GetAdvertisements returned error: %v", err)
	}
	if len(ads) != 2 {
		t.Fatalf("expected the full store listing, got %d items", len(ads))
	}

	// текстовый запрос без индекса уходит в fallback сразу
	_, err = svc.GetAdvertisements(context.Background(), false, models.AdvertisementFilter{Name: "bike"})
	if err != nil {
		t.Fatalf("GetAdvertisements returned error: %v", err)
	}
	last := store.filters[len(store.filters)-1]
	if !last.TextFallback {
		t.Error("a nil index must route text queries to the store fallback")
	}
}
