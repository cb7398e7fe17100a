package catalog

import (
	"context"
	"errors"
	"testing"

	"coreclad-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRemover struct {
	calls [][]uuid.UUID
	err   error
}

func (r *recordingRemover) RemoveProducts(ctx context.Context, ids []uuid.UUID) (int, error) {
	r.calls = append(r.calls, append([]uuid.UUID(nil), ids...))
	if r.err != nil {
		return 0, r.err
	}
	return len(ids), nil
}

var (
	roofPanel = entity.Product{Id: uuid.New(), Name: "PIR Roof Panel", Description: "Insulated trapezoidal roof sheet", Type: entity.ProductTypeRoof, Thickness: 100}
	door      = entity.Product{Id: uuid.New(), Name: "Door", Description: "Hinged personnel door", Type: entity.ProductTypeDoors, Thickness: 50}
	wallPanel = entity.Product{Id: uuid.New(), Name: "Wall Panel Micro-Rib", Description: "Flat wall cladding", Type: entity.ProductTypeWall, Thickness: 80}
	coldRoom  = entity.Product{Id: uuid.New(), Name: "Cold Room PIR", Description: "Panel for chilled storage", Type: entity.ProductTypeColdRoom, Thickness: 150}
)

func names(products []entity.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func newTestView(r Remover, products ...entity.Product) *View {
	return NewView(products, r)
}

func TestSearchTermMatchesNameOrDescriptionCaseInsensitive(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel, door)

	v.SetSearchTerm("panel")
	assert.Equal(t, []string{"PIR Roof Panel"}, names(v.Filtered()))

	v.SetSearchTerm("")
	assert.Equal(t, []string{"PIR Roof Panel", "Door"}, names(v.Filtered()))

	v.SetSearchTerm("HINGED")
	assert.Equal(t, []string{"Door"}, names(v.Filtered()))
}

func TestFiltersComposeWithAnd(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel, door, wallPanel, coldRoom)

	v.SetTypeFilter("roof")
	v.SetSearchTerm("panel")
	assert.Equal(t, []string{"PIR Roof Panel"}, names(v.Filtered()))

	v.SetTypeFilter("wall")
	assert.Equal(t, []string{"Wall Panel Micro-Rib"}, names(v.Filtered()))

	v.SetTypeFilter(AllTypes)
	assert.Equal(t, []string{"PIR Roof Panel", "Wall Panel Micro-Rib", "Cold Room PIR"}, names(v.Filtered()))

	v.SetTypeFilter("Roof")
	assert.Empty(t, v.Filtered(), "type match is exact")
}

func TestToggleSelect(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel, door)

	on, err := v.ToggleSelect(door.Id)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []uuid.UUID{door.Id}, v.Selected())

	on, err = v.ToggleSelect(door.Id)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, v.Selected())

	_, err = v.ToggleSelect(uuid.New())
	assert.ErrorIs(t, err, ErrNotInView)
}

func TestToggleSelectAllTwiceReturnsToEmpty(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel, door, wallPanel)

	assert.Equal(t, 3, v.ToggleSelectAll())
	assert.Equal(t, 0, v.ToggleSelectAll())
	assert.Empty(t, v.Selected())
}

func TestToggleSelectAllWithPartialSelectionSelectsExactlyFiltered(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel, door, wallPanel)
	_, err := v.ToggleSelect(door.Id)
	require.NoError(t, err)

	v.SetSearchTerm("panel")
	assert.Empty(t, v.Selected(), "door fell out of view")

	assert.Equal(t, 2, v.ToggleSelectAll())
	assert.ElementsMatch(t, []uuid.UUID{roofPanel.Id, wallPanel.Id}, v.Selected())
}

func TestFilterChangeIntersectsSelection(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel, door, wallPanel)
	v.ToggleSelectAll()

	v.SetTypeFilter("roof")
	assert.Equal(t, []uuid.UUID{roofPanel.Id}, v.Selected())

	v.SetTypeFilter(AllTypes)
	assert.Equal(t, []uuid.UUID{roofPanel.Id}, v.Selected(), "hidden selections do not come back")
	assert.Equal(t, Counts{Total: 3, Filtered: 3, Selected: 1}, v.Counts())
}

func TestBulkDeleteWithoutConfirmationChangesNothing(t *testing.T) {
	for name, c := range map[string]Confirmer{"nil": nil, "declined": Confirmed(false)} {
		t.Run(name, func(t *testing.T) {
			r := &recordingRemover{}
			v := newTestView(r, roofPanel, door)
			v.ToggleSelectAll()

			_, err := v.BulkDelete(context.Background(), c)
			assert.ErrorIs(t, err, ErrNotConfirmed)
			assert.Empty(t, r.calls)
			assert.Len(t, v.Filtered(), 2)
			assert.Len(t, v.Selected(), 2)
		})
	}
}

func TestBulkDeleteEmptySelection(t *testing.T) {
	r := &recordingRemover{}
	v := newTestView(r, roofPanel)

	asked := false
	_, err := v.BulkDelete(context.Background(), ConfirmFunc(func(context.Context, int) bool {
		asked = true
		return true
	}))
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.False(t, asked)
	assert.Empty(t, r.calls)
}

func TestBulkDeleteRemovesSelectedOnce(t *testing.T) {
	r := &recordingRemover{}
	v := newTestView(r, roofPanel, door, wallPanel)
	_, _ = v.ToggleSelect(roofPanel.Id)
	_, _ = v.ToggleSelect(wallPanel.Id)

	var askedFor int
	res, err := v.BulkDelete(context.Background(), ConfirmFunc(func(_ context.Context, n int) bool {
		askedFor = n
		return true
	}))
	require.NoError(t, err)

	assert.Equal(t, 2, askedFor)
	require.Len(t, r.calls, 1)
	assert.Equal(t, []uuid.UUID{roofPanel.Id, wallPanel.Id}, r.calls[0])
	assert.Equal(t, 2, res.Removed)
	assert.Equal(t, []string{"Door"}, names(v.Filtered()))
	assert.Empty(t, v.Selected())
	assert.Equal(t, 1, v.Counts().Total)
}

func TestBulkDeleteRemoverFailureKeepsState(t *testing.T) {
	r := &recordingRemover{err: errors.New("db down")}
	v := newTestView(r, roofPanel, door)
	v.ToggleSelectAll()

	_, err := v.BulkDelete(context.Background(), Confirmed(true))
	assert.Error(t, err)
	assert.Len(t, v.Filtered(), 2)
	assert.Len(t, v.Selected(), 2)
}

func TestForgetDropsProductsAndSelections(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel, door)
	v.ToggleSelectAll()

	v.Forget(door.Id, uuid.New())

	assert.Equal(t, []string{"PIR Roof Panel"}, names(v.Filtered()))
	assert.Equal(t, []uuid.UUID{roofPanel.Id}, v.Selected())
}

func TestReplaceKeepsFilters(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel)
	v.SetSearchTerm("panel")

	v.Replace([]entity.Product{roofPanel, door, wallPanel})

	assert.Equal(t, "panel", v.SearchTerm())
	assert.Equal(t, []string{"PIR Roof Panel", "Wall Panel Micro-Rib"}, names(v.Filtered()))
}

func TestTypes(t *testing.T) {
	assert.Equal(t, []string{"roof", "wall", "cold-room", "fire-rated", "doors", "accessories"}, Types())
}

func TestResetClearsFiltersAndSelection(t *testing.T) {
	v := newTestView(&recordingRemover{}, roofPanel, door)
	v.SetTypeFilter("doors")
	v.ToggleSelectAll()

	v.Reset()

	assert.Equal(t, AllTypes, v.TypeFilter())
	assert.Empty(t, v.Selected())
	assert.Len(t, v.Filtered(), 2)
}
