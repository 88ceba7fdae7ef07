package store

import "github.com/focusflow/focusflow-server/models"

// Storages aggregates every repository backed by the shared database handle.
type Storages struct {
	UserRepository UserRepository
	Notes          EntityRepository
	Tasks          EntityRepository
	Habits         EntityRepository
}

func NewStorages(db *DB) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db),
		Notes:          newEntityRepository(db, notesTable),
		Tasks:          newEntityRepository(db, tasksTable),
		Habits:         newEntityRepository(db, habitsTable),
	}
}

// Entities returns the entity repositories keyed by kind, the shape the sync
// orchestrator iterates over.
func (s *Storages) Entities() map[models.EntityType]EntityRepository {
	return map[models.EntityType]EntityRepository{
		models.EntityTypeNote:  s.Notes,
		models.EntityTypeTask:  s.Tasks,
		models.EntityTypeHabit: s.Habits,
	}
}
