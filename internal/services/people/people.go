package people

import (
	"context"
	"errors"
	"log/slog"

	"movielib/proj/internal/domain/filters"
	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
)

type PeopleStorage interface {
	Get(ctx context.Context, id int64) (*models.Person, error)
	List(ctx context.Context, filters filters.Filters) ([]models.Person, error)
	Insert(ctx context.Context, p *models.Person) (*models.Person, error)
	Update(ctx context.Context, p *models.Person) (*models.Person, error)
	Delete(ctx context.Context, id int64) error
}

type PersonService struct {
	log     *slog.Logger
	storage PeopleStorage
}

func New(log *slog.Logger, storage PeopleStorage) *PersonService {
	return &PersonService{
		log:     log,
		storage: storage,
	}
}

func (s *PersonService) Get(ctx context.Context, id int64) (*models.Person, error) {
	const op = "people.PersonService.Get"
	log := s.log.With("op", op, "id", id)
	person, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("person not found")
			return nil, ErrPersonNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return person, nil
}

func (s *PersonService) List(ctx context.Context, filters filters.Filters) ([]models.Person, error) {
	const op = "people.PersonService.List"
	people, err := s.storage.List(ctx, filters)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return people, nil
}

func (s *PersonService) Create(ctx context.Context, p *models.Person) (*models.Person, error) {
	const op = "people.PersonService.Create"
	person, err := s.storage.Insert(ctx, p)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return person, nil
}

func (s *PersonService) Update(ctx context.Context, p *models.Person) (*models.Person, error) {
	const op = "people.PersonService.Update"
	log := s.log.With("op", op, "id", p.ID)
	person, err := s.storage.Update(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("person not found")
			return nil, ErrPersonNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return person, nil
}

func (s *PersonService) Delete(ctx context.Context, id int64) error {
	const op = "people.PersonService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("person not found")
			return ErrPersonNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
