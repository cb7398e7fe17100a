// Package catalog implements the admin product list: search and type filters
// over a catalog snapshot, a selection set, and confirmed bulk deletion.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"coreclad-be/internal/entity"

	"github.com/google/uuid"
)

// AllTypes disables the type filter.
const AllTypes = "all"

var (
	ErrNotConfirmed   = errors.New("bulk delete was not confirmed")
	ErrEmptySelection = errors.New("no products selected")
	ErrNotInView      = errors.New("product is not in the current view")
)

// Remover deletes products from the backing store and reports how many rows went away.
type Remover interface {
	RemoveProducts(ctx context.Context, ids []uuid.UUID) (int, error)
}

// Confirmer is asked before anything is deleted.
type Confirmer interface {
	Confirm(ctx context.Context, count int) bool
}

type ConfirmFunc func(ctx context.Context, count int) bool

func (f ConfirmFunc) Confirm(ctx context.Context, count int) bool {
	return f(ctx, count)
}

// Confirmed is a Confirmer that returns a decision already taken by the user.
func Confirmed(yes bool) Confirmer {
	return ConfirmFunc(func(context.Context, int) bool { return yes })
}

type Counts struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
	Selected int `json:"selected"`
}

type Deleted struct {
	IDs     []uuid.UUID
	Removed int
}

// Types returns the product categories offered by the type filter, in display order.
func Types() []string {
	types := make([]string, len(entity.ProductTypes))
	for i, t := range entity.ProductTypes {
		types[i] = string(t)
	}
	return types
}

// View is safe for concurrent use. Every member of the selection is always
// present in the current filtered list.
type View struct {
	mu       sync.Mutex
	remover  Remover
	snapshot []entity.Product
	filtered []entity.Product
	selected map[uuid.UUID]struct{}
	term     string
	typ      string
}

func NewView(products []entity.Product, remover Remover) *View {
	v := &View{
		remover:  remover,
		selected: make(map[uuid.UUID]struct{}),
		typ:      AllTypes,
	}
	v.snapshot = append([]entity.Product(nil), products...)
	v.recompute()
	return v
}

// Replace swaps in a fresh catalog snapshot, keeping the filters.
func (v *View) Replace(products []entity.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snapshot = append([]entity.Product(nil), products...)
	v.recompute()
}

func (v *View) SetSearchTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.term = term
	v.recompute()
}

// SetTypeFilter restricts the list to one product type. An empty value means AllTypes.
func (v *View) SetTypeFilter(typ string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if typ == "" {
		typ = AllTypes
	}
	v.typ = typ
	v.recompute()
}

// Reset clears both filters and the selection.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.term = ""
	v.typ = AllTypes
	v.selected = make(map[uuid.UUID]struct{})
	v.recompute()
}

func (v *View) SearchTerm() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.term
}

func (v *View) TypeFilter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.typ
}

// recompute rebuilds the filtered list and drops selections that fell out of it.
// Caller holds mu.
func (v *View) recompute() {
	needle := strings.ToLower(v.term)

	filtered := make([]entity.Product, 0, len(v.snapshot))
	visible := make(map[uuid.UUID]struct{}, len(v.snapshot))
	for _, p := range v.snapshot {
		if !matchesTerm(p, needle) || !matchesType(p, v.typ) {
			continue
		}
		filtered = append(filtered, p)
		visible[p.Id] = struct{}{}
	}
	v.filtered = filtered

	for id := range v.selected {
		if _, ok := visible[id]; !ok {
			delete(v.selected, id)
		}
	}
}

func matchesTerm(p entity.Product, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

func matchesType(p entity.Product, typ string) bool {
	return typ == AllTypes || string(p.Type) == typ
}

func (v *View) Filtered() []entity.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entity.Product(nil), v.filtered...)
}

// Selected returns the selected ids in list order.
func (v *View) Selected() []uuid.UUID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedLocked()
}

func (v *View) selectedLocked() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(v.selected))
	for _, p := range v.filtered {
		if _, ok := v.selected[p.Id]; ok {
			ids = append(ids, p.Id)
		}
	}
	return ids
}

func (v *View) IsSelected(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.selected[id]
	return ok
}

func (v *View) Counts() Counts {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Counts{
		Total:    len(v.snapshot),
		Filtered: len(v.filtered),
		Selected: len(v.selected),
	}
}

// ToggleSelect flips id in the selection and reports whether it is now selected.
func (v *View) ToggleSelect(id uuid.UUID) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.selected[id]; ok {
		delete(v.selected, id)
		return false, nil
	}
	for _, p := range v.filtered {
		if p.Id == id {
			v.selected[id] = struct{}{}
			return true, nil
		}
	}
	return false, ErrNotInView
}

// ToggleSelectAll clears the selection when everything visible is selected,
// otherwise selects exactly the visible products. Returns the new selection size.
func (v *View) ToggleSelectAll() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.selected) == len(v.filtered) {
		v.selected = make(map[uuid.UUID]struct{})
		return 0
	}

	v.selected = make(map[uuid.UUID]struct{}, len(v.filtered))
	for _, p := range v.filtered {
		v.selected[p.Id] = struct{}{}
	}
	return len(v.selected)
}

// BulkDelete removes every selected product once the confirmer agrees. A nil
// or declining confirmer leaves the view untouched.
func (v *View) BulkDelete(ctx context.Context, confirm Confirmer) (Deleted, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ids := v.selectedLocked()
	if len(ids) == 0 {
		return Deleted{}, ErrEmptySelection
	}
	if confirm == nil || !confirm.Confirm(ctx, len(ids)) {
		return Deleted{}, ErrNotConfirmed
	}

	removed, err := v.remover.RemoveProducts(ctx, ids)
	if err != nil {
		return Deleted{}, fmt.Errorf("remove products: %w", err)
	}

	v.forgetLocked(ids)
	v.selected = make(map[uuid.UUID]struct{})

	return Deleted{IDs: ids, Removed: removed}, nil
}

// Forget drops products that were deleted elsewhere.
func (v *View) Forget(ids ...uuid.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.forgetLocked(ids)
}

func (v *View) forgetLocked(ids []uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	gone := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}

	kept := v.snapshot[:0:0]
	for _, p := range v.snapshot {
		if _, ok := gone[p.Id]; !ok {
			kept = append(kept, p)
		}
	}
	v.snapshot = kept
	v.recompute()
}
