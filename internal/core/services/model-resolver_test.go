package services

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpm-integrator/internal/core/domain"
)

func version(id, modelID, created string) domain.DataModelVersionInfo {
	return domain.DataModelVersionInfo{Type: "DataModelVersion", ID: id, DataModelID: modelID, CreationDate: created, Name: id}
}

func salesCatalog() []domain.DataModelInfo {
	return []domain.DataModelInfo{
		{ID: "m1", Name: "Sales", DataModelVersions: []domain.DataModelVersionInfo{
			version("v1", "m1", "2023-01-01"),
			version("v2", "m1", "2023-06-01"),
		}},
		{ID: "m2", Name: "Finance", DataModelVersions: []domain.DataModelVersionInfo{
			version("v3", "m2", "2024-01-01"),
		}},
	}
}

func TestSelectVersion_PicksNewest(t *testing.T) {
	got, err := SelectVersion(salesCatalog(), "Sales")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.ID)
	assert.Equal(t, "m1", got.DataModelID)
}

func TestSelectVersion_NameIsExact(t *testing.T) {
	_, err := SelectVersion(salesCatalog(), "sales")
	assert.ErrorIs(t, err, domain.ErrNoModelFound)
}

func TestSelectVersion_NoModel(t *testing.T) {
	_, err := SelectVersion(salesCatalog(), "Inventory")
	require.Error(t, err)

	var resErr *domain.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "Inventory", resErr.Name)
	assert.ErrorIs(t, err, domain.ErrNoModelFound)
	assert.Contains(t, err.Error(), "Inventory")
}

func TestSelectVersion_EmptyCatalog(t *testing.T) {
	_, err := SelectVersion(nil, "Sales")
	assert.ErrorIs(t, err, domain.ErrNoModelFound)
}

func TestSelectVersion_Ambiguous(t *testing.T) {
	catalog := append(salesCatalog(), domain.DataModelInfo{
		ID: "m9", Name: "Sales", DataModelVersions: []domain.DataModelVersionInfo{version("v9", "m9", "2025-01-01")},
	})

	_, err := SelectVersion(catalog, "Sales")
	assert.ErrorIs(t, err, domain.ErrAmbiguousModel)
}

func TestSelectVersion_NoVersions(t *testing.T) {
	catalog := []domain.DataModelInfo{{ID: "m1", Name: "Sales"}}

	_, err := SelectVersion(catalog, "Sales")
	assert.ErrorIs(t, err, domain.ErrModelHasNoVersion)
}

func TestSelectVersion_OwnerMismatch(t *testing.T) {
	catalog := []domain.DataModelInfo{{ID: "m1", Name: "Sales", DataModelVersions: []domain.DataModelVersionInfo{
		version("v1", "m1", "2023-01-01"),
		version("v2", "other", "2023-06-01"),
	}}}

	_, err := SelectVersion(catalog, "Sales")
	assert.ErrorIs(t, err, domain.ErrModelVersionMismatch)
}

func TestSelectVersion_TieLastWins(t *testing.T) {
	catalog := []domain.DataModelInfo{{ID: "m1", Name: "Sales", DataModelVersions: []domain.DataModelVersionInfo{
		version("a", "m1", "2023-06-01T10:00:00Z"),
		version("b", "m1", "2023-06-01T10:00:00Z"),
		version("c", "m1", "2023-01-01T10:00:00Z"),
	}}}

	got, err := SelectVersion(catalog, "Sales")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestSelectVersion_MixedLayoutsCompareAsTimes(t *testing.T) {
	// Lexicographically "2023-06-01" sorts before "2023-06-01T09:00:00", but
	// "2023-06-01 23:00:00" is the latest instant.
	catalog := []domain.DataModelInfo{{ID: "m1", Name: "Sales", DataModelVersions: []domain.DataModelVersionInfo{
		version("a", "m1", "2023-06-01 23:00:00"),
		version("b", "m1", "2023-06-01T09:00:00"),
		version("c", "m1", "2023-06-01"),
	}}}

	got, err := SelectVersion(catalog, "Sales")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
}

func TestSelectVersion_UnparsableFallsBackToStrings(t *testing.T) {
	catalog := []domain.DataModelInfo{{ID: "m1", Name: "Sales", DataModelVersions: []domain.DataModelVersionInfo{
		version("a", "m1", "build-0002"),
		version("b", "m1", "build-0010"),
		version("c", "m1", "build-0003"),
	}}}

	got, err := SelectVersion(catalog, "Sales")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestSelectVersion_PropertyMaxTimestamp(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(8)
		versions := make([]domain.DataModelVersionInfo, n)
		for i := range versions {
			// A small range forces frequent ties.
			created := base.Add(time.Duration(rng.Intn(5)) * time.Hour)
			versions[i] = version(fmt.Sprintf("v%d", i), "m1", created.Format(time.RFC3339))
		}
		catalog := []domain.DataModelInfo{
			{ID: "m0", Name: "Other", DataModelVersions: []domain.DataModelVersionInfo{version("x", "m0", "2030-01-01")}},
			{ID: "m1", Name: "Target", DataModelVersions: versions},
		}

		got, err := SelectVersion(catalog, "Target")
		require.NoError(t, err)

		want := 0
		for i := range versions {
			if versions[i].CreationDate >= versions[want].CreationDate {
				want = i
			}
		}
		assert.Equal(t, versions[want].ID, got.ID, "round %d", round)

		gotTime, _ := got.CreatedAt()
		for _, v := range versions {
			vt, _ := v.CreatedAt()
			assert.False(t, vt.After(gotTime), "round %d: %s is newer than the selection", round, v.ID)
		}
	}
}
