package specification

import "gorm.io/gorm"

// Specification narrows a gorm query. Implementations are composable; a
// repository applies them in order.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

type Limit struct {
	Count int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Count)
}

type Offset struct {
	Count int
}

func (s Offset) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(s.Count)
}

type OrderBy struct {
	Clause string
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(s.Clause)
}
