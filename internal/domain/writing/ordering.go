package writing

import (
	"fmt"

	"gorm.io/gorm"
)

/*
	Ordered-list helpers
	--------------------
	Scenes (per story) and plot points (per plot) keep a dense, 1-based
	sort_order. Every caller must already hold the parent row FOR UPDATE
	inside a transaction; these helpers only do the row arithmetic.

	The (parent, sort_order) unique indexes are checked immediately by
	Postgres, so multi-row shuffles go through staging values (0 for a
	swap, negatives for a renumber) that never collide with live
	positions.
*/

// NextOrder returns the order value for a new child: max + 1, or 1 when
// the parent has no children yet.
func NextOrder(tx *gorm.DB, model interface{}, parentCol string, parentID uint) (int, error) {
	var next int
	err := tx.Model(model).
		Where(parentCol+" = ?", parentID).
		Select("COALESCE(MAX(sort_order), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// MoveUp swaps the child at order with its predecessor. Returns false
// (and no error) when the child is already first.
func MoveUp(tx *gorm.DB, model interface{}, parentCol string, parentID uint, order int) (bool, error) {
	var neighbor int
	err := tx.Model(model).
		Where(parentCol+" = ? AND sort_order < ?", parentID, order).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&neighbor).Error
	if err != nil {
		return false, err
	}
	if neighbor == 0 {
		return false, nil
	}
	return true, swapOrders(tx, model, parentCol, parentID, order, neighbor)
}

// MoveDown swaps the child at order with its successor. Returns false
// when the child is already last.
func MoveDown(tx *gorm.DB, model interface{}, parentCol string, parentID uint, order int) (bool, error) {
	var neighbor int
	err := tx.Model(model).
		Where(parentCol+" = ? AND sort_order > ?", parentID, order).
		Select("COALESCE(MIN(sort_order), 0)").
		Scan(&neighbor).Error
	if err != nil {
		return false, err
	}
	if neighbor == 0 {
		return false, nil
	}
	return true, swapOrders(tx, model, parentCol, parentID, order, neighbor)
}

// swapOrders exchanges two live positions via the unused 0 slot so the
// unique index holds at every step.
func swapOrders(tx *gorm.DB, model interface{}, parentCol string, parentID uint, a, b int) error {
	steps := []struct{ from, to int }{
		{a, 0},
		{b, a},
		{0, b},
	}
	for _, s := range steps {
		res := tx.Model(model).
			Where(parentCol+" = ? AND sort_order = ?", parentID, s.from).
			Update("sort_order", s.to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %d not found", s.from)
		}
	}
	return nil
}

// CloseGap shifts every sibling above the deleted position down by one,
// restoring density. Run in the same transaction as the delete.
func CloseGap(tx *gorm.DB, model interface{}, parentCol string, parentID uint, deletedOrder int) error {
	// negative staging: k+1..n -> -(k..n-1), then flip the sign
	err := tx.Model(model).
		Where(parentCol+" = ? AND sort_order > ?", parentID, deletedOrder).
		Update("sort_order", gorm.Expr("-(sort_order - 1)")).Error
	if err != nil {
		return err
	}
	return tx.Model(model).
		Where(parentCol+" = ? AND sort_order < 0", parentID).
		Update("sort_order", gorm.Expr("-sort_order")).Error
}
