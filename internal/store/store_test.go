package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fishinghit/fishhit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "fishhit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return &d
}

func TestAddAndGetCatch(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.AddCatch(domain.CatchRecord{
		FishType: "Pike",
		Weight:   3.2,
		Length:   74,
		Photo:    []byte{0x1, 0x2},
		Note:     "near the reeds",
		Date:     date(2024, 6, 1),
		AudioRef: "catch_abc.m4a",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.GetCatch(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pike", got.FishType)
	assert.Equal(t, 3.2, got.Weight)
	assert.Equal(t, 74.0, got.Length)
	assert.Equal(t, []byte{0x1, 0x2}, got.Photo)
	assert.Equal(t, "near the reeds", got.Note)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2024", got.Year())
	assert.Equal(t, "catch_abc.m4a", got.AudioRef)
}

func TestGetCatchNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetCatch("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCatchesFiltering(t *testing.T) {
	s := openTestStore(t)

	_, err := s.AddCatch(domain.CatchRecord{FishType: "Pike", Date: date(2023, 5, 1)})
	require.NoError(t, err)
	_, err = s.AddCatch(domain.CatchRecord{FishType: "Pike", Date: date(2024, 5, 1)})
	require.NoError(t, err)
	_, err = s.AddCatch(domain.CatchRecord{FishType: "Brown Trout", Date: date(2024, 8, 1)})
	require.NoError(t, err)

	all, err := s.ListCatches(domain.CatchFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	assert.Equal(t, "Brown Trout", all[0].FishType)
	assert.Equal(t, "2023", all[2].Year())

	pike, err := s.ListCatches(domain.CatchFilter{FishType: "pike"})
	require.NoError(t, err)
	assert.Len(t, pike, 2)

	y2024, err := s.ListCatches(domain.CatchFilter{Year: "2024"})
	require.NoError(t, err)
	assert.Len(t, y2024, 2)

	none, err := s.ListCatches(domain.CatchFilter{FishType: "salmon"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateCatchNote(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.AddCatch(domain.CatchRecord{FishType: "Perch"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateCatchNote(saved.ID, "released"))
	got, err := s.GetCatch(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "released", got.Note)

	assert.ErrorIs(t, s.UpdateCatchNote("missing", "x"), ErrNotFound)
}

func TestDeleteCatch(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.AddCatch(domain.CatchRecord{FishType: "Perch"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCatch(saved.ID))
	_, err = s.GetCatch(saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteCatch(saved.ID), ErrNotFound)
}

func TestTopFishTypes(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.AddCatch(domain.CatchRecord{FishType: "Pike", Date: date(2024, 5, 1)})
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := s.AddCatch(domain.CatchRecord{FishType: "Perch", Date: date(2024, 6, 1)})
		require.NoError(t, err)
	}
	_, err := s.AddCatch(domain.CatchRecord{FishType: "Trout", Date: date(2023, 6, 1)})
	require.NoError(t, err)
	_, err = s.AddCatch(domain.CatchRecord{Date: date(2024, 6, 2)})
	require.NoError(t, err)

	top, err := s.TopFishTypes(domain.CatchFilter{}, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, domain.FishTypeCount{FishType: "Pike", Count: 3}, top[0])
	assert.Equal(t, domain.FishTypeCount{FishType: "Perch", Count: 2}, top[1])

	all, err := s.TopFishTypes(domain.CatchFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Contains(t, all, domain.FishTypeCount{FishType: "Unknown", Count: 1})

	y2024, err := s.TopFishTypes(domain.CatchFilter{Year: "2024"}, 10)
	require.NoError(t, err)
	for _, tc := range y2024 {
		assert.NotEqual(t, "Trout", tc.FishType)
	}
}

func TestCleanupInvalidCatches(t *testing.T) {
	s := openTestStore(t)

	ok, err := s.AddCatch(domain.CatchRecord{FishType: "Pike", Photo: []byte{0x1}})
	require.NoError(t, err)
	noPhoto, err := s.AddCatch(domain.CatchRecord{FishType: "Perch"})
	require.NoError(t, err)
	broken, err := s.AddCatch(domain.CatchRecord{FishType: "Trout", Photo: []byte{}})
	require.NoError(t, err)

	n, err := s.CleanupInvalidCatches()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.GetCatch(ok.ID)
	assert.NoError(t, err)
	_, err = s.GetCatch(noPhoto.ID)
	assert.NoError(t, err, "a catch without any photo is valid")
	_, err = s.GetCatch(broken.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSpots(t *testing.T) {
	s := openTestStore(t)

	_, err := s.AddSpot(domain.FishingSpot{Latitude: 59.3, Longitude: 18.1, FishType: "Pike (Freshwater)", Depth: 3.5, Gear: "spinner"})
	require.NoError(t, err)
	_, err = s.AddSpot(domain.FishingSpot{Latitude: 57.7, Longitude: 11.9, FishType: "Cod (Saltwater)"})
	require.NoError(t, err)

	all, err := s.ListSpots(domain.SpotFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// sorted by fish type
	assert.Equal(t, "Cod (Saltwater)", all[0].FishType)

	fresh, err := s.ListSpots(domain.SpotFilter{Water: domain.WaterFresh})
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, 3.5, fresh[0].Depth)

	require.NoError(t, s.DeleteAllSpots())
	none, err := s.ListSpots(domain.SpotFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRoutes(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.AddRoute(domain.FishingRoute{
		Name: "Morning loop",
		Spots: []domain.Coordinate{
			{Latitude: 59.30, Longitude: 18.10},
			{Latitude: 59.31, Longitude: 18.12},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	routes, err := s.ListRoutes()
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "Morning loop", routes[0].Name)
	require.Len(t, routes[0].Spots, 2)
	assert.Equal(t, 59.31, routes[0].Spots[1].Latitude)
}

func TestChecklists(t *testing.T) {
	s := openTestStore(t)

	cl, err := s.CreateChecklist("Lake trip")
	require.NoError(t, err)

	rod, err := s.AddChecklistItem(cl.ID, "Rod")
	require.NoError(t, err)
	_, err = s.AddChecklistItem(cl.ID, "Bait box")
	require.NoError(t, err)

	got, err := s.GetChecklist(cl.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Rod", got.Items[0].Name, "items keep insertion order")
	assert.False(t, got.Items[0].Checked)

	checked, err := s.ToggleChecklistItem(rod.ID)
	require.NoError(t, err)
	assert.True(t, checked)
	checked, err = s.ToggleChecklistItem(rod.ID)
	require.NoError(t, err)
	assert.False(t, checked, "toggling twice restores the original state")

	require.NoError(t, s.RenameChecklist(cl.ID, "River trip"))
	got, err = s.GetChecklist(cl.ID)
	require.NoError(t, err)
	assert.Equal(t, "River trip", got.Name)

	require.NoError(t, s.RemoveChecklistItem(rod.ID))
	got, err = s.GetChecklist(cl.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Bait box", got.Items[0].Name)

	require.NoError(t, s.DeleteChecklist(cl.ID))
	_, err = s.GetChecklist(cl.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	lists, err := s.ListChecklists()
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestChecklistNotFound(t *testing.T) {
	s := openTestStore(t)

	assert.ErrorIs(t, s.RenameChecklist("missing", "x"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteChecklist("missing"), ErrNotFound)
	_, err := s.ToggleChecklistItem("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.RemoveChecklistItem("missing"), ErrNotFound)
}
