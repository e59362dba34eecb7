// Package gormstore persists relationship tuples through GORM, giving the
// relation graph a durable backend on any database GORM supports.
package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/getverdict/verdict/relations"
)

// relationTuple is the storage model. Columns are indexed for the graph's
// two query patterns: exact tuple lookup by id and reverse lookup by
// (relation, object).
type relationTuple struct {
	ID              string    `gorm:"primaryKey"`
	SubjectType     string    `gorm:"size:64;index:idx_subject,priority:1"`
	SubjectID       string    `gorm:"size:255;index:idx_subject,priority:2"`
	SubjectRelation string    `gorm:"size:64"`
	Relation        string    `gorm:"size:64;index:idx_object,priority:1"`
	ObjectType      string    `gorm:"size:64;index:idx_object,priority:2"`
	ObjectID        string    `gorm:"size:255;index:idx_object,priority:3"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (relationTuple) TableName() string {
	return "relation_tuples"
}

func toTuple(rt *relationTuple) relations.Tuple {
	return relations.Tuple{
		Subject: relations.SubjectRef{
			Object:   relations.ObjectRef{Type: rt.SubjectType, ID: rt.SubjectID},
			Relation: rt.SubjectRelation,
		},
		Relation: rt.Relation,
		Object:   relations.ObjectRef{Type: rt.ObjectType, ID: rt.ObjectID},
	}
}

func fromTuple(t relations.Tuple) *relationTuple {
	return &relationTuple{
		// The canonical string form doubles as the primary key, so the
		// same tuple cannot be stored twice.
		ID:              t.String(),
		SubjectType:     t.Subject.Object.Type,
		SubjectID:       t.Subject.Object.ID,
		SubjectRelation: t.Subject.Relation,
		Relation:        t.Relation,
		ObjectType:      t.Object.Type,
		ObjectID:        t.Object.ID,
	}
}

// Store implements relations.TupleStore on a GORM database handle.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates the tuple table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&relationTuple{})
}

func (s *Store) Write(ctx context.Context, tuple relations.Tuple) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(fromTuple(tuple)).Error
}

func (s *Store) WriteBatch(ctx context.Context, tuples []relations.Tuple) error {
	if len(tuples) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tuples {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoNothing: true,
			}).Create(fromTuple(t)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Delete(ctx context.Context, tuple relations.Tuple) error {
	return s.db.WithContext(ctx).Delete(&relationTuple{}, "id = ?", tuple.String()).Error
}

func (s *Store) DeleteMatching(ctx context.Context, filter relations.Filter) error {
	query := applyFilter(s.db.WithContext(ctx), filter)
	if filter == (relations.Filter{}) {
		// An empty filter matches every tuple; GORM refuses a DELETE
		// without conditions unless the wipe is made explicit.
		query = query.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	return query.Delete(&relationTuple{}).Error
}

func (s *Store) Read(ctx context.Context, filter relations.Filter) ([]relations.Tuple, error) {
	query := applyFilter(s.db.WithContext(ctx), filter)

	var rows []relationTuple
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]relations.Tuple, len(rows))
	for i := range rows {
		result[i] = toTuple(&rows[i])
	}
	return result, nil
}

func (s *Store) Exists(ctx context.Context, tuple relations.Tuple) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&relationTuple{}).
		Where("id = ?", tuple.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyFilter(query *gorm.DB, filter relations.Filter) *gorm.DB {
	if filter.SubjectType != "" {
		query = query.Where("subject_type = ?", filter.SubjectType)
	}
	if filter.SubjectID != "" {
		query = query.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.SubjectRelation != "" {
		query = query.Where("subject_relation = ?", filter.SubjectRelation)
	}
	if filter.Relation != "" {
		query = query.Where("relation = ?", filter.Relation)
	}
	if filter.ObjectType != "" {
		query = query.Where("object_type = ?", filter.ObjectType)
	}
	if filter.ObjectID != "" {
		query = query.Where("object_id = ?", filter.ObjectID)
	}
	return query
}

var _ relations.TupleStore = (*Store)(nil)
