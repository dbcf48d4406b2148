package zone

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=zone
type Repository interface {
	CreateZone(ctx context.Context, z *Zone) error
	GetZone(ctx context.Context, id int64) (*Zone, error)
	ListZones(ctx context.Context) ([]*Zone, error)
	UpdateZone(ctx context.Context, z *Zone) error
	DeleteZone(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Zone, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	z := &Zone{Name: name}
	if err := s.repo.CreateZone(ctx, z); err != nil {
		return nil, err
	}

	return z, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Zone, error) {
	return s.repo.GetZone(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Zone, error) {
	return s.repo.ListZones(ctx)
}

func (s *Service) Rename(ctx context.Context, id int64, name string) (*Zone, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	z := &Zone{ID: id, Name: name}
	if err := s.repo.UpdateZone(ctx, z); err != nil {
		return nil, err
	}

	return z, nil
}

// Delete removes a zone; its jobs are kept and become unzoned.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteZone(ctx, id)
}

type nameParams struct {
	Name string `json:"name" validate:"required,max=45"`
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)

	return name, validation.Struct(nameParams{Name: name}).Err()
}
