package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/apperr"
)

type LocationInput struct {
	Name        string `json:"name" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

type ResponsibleInput struct {
	Name  string `json:"name" validate:"required,min=3,max=255"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

type AssetNameInput struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

// LookupService manages a named reference entity. Names are unique.
type LookupService[T any, In any] interface {
	Create(ctx context.Context, in In) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, id uint, in In) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type (
	LocationService    = LookupService[model.Location, LocationInput]
	ResponsibleService = LookupService[model.Responsible, ResponsibleInput]
)

type lookupService[T any, In any] struct {
	r     repo.LookupRepo[T]
	kind  string
	clean func(*In) string
	apply func(*T, In)
}

func NewLocationService(r repo.LocationRepo) LocationService {
	return &lookupService[model.Location, LocationInput]{
		r:    r,
		kind: "location",
		clean: func(in *LocationInput) string {
			in.Name = strings.TrimSpace(in.Name)
			in.Description = strings.TrimSpace(in.Description)
			return in.Name
		},
		apply: func(l *model.Location, in LocationInput) {
			l.Name, l.Description = in.Name, in.Description
		},
	}
}

func NewResponsibleService(r repo.ResponsibleRepo) ResponsibleService {
	return &lookupService[model.Responsible, ResponsibleInput]{
		r:    r,
		kind: "responsible",
		clean: func(in *ResponsibleInput) string {
			in.Name = strings.TrimSpace(in.Name)
			in.Email = strings.TrimSpace(in.Email)
			in.Phone = strings.TrimSpace(in.Phone)
			return in.Name
		},
		apply: func(p *model.Responsible, in ResponsibleInput) {
			p.Name, p.Email, p.Phone = in.Name, in.Email, in.Phone
		},
	}
}

func (s *lookupService[T, In]) Create(ctx context.Context, in In) (*T, error) {
	name := s.clean(&in)
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	exists, err := s.r.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check %s name: %w", s.kind, err)
	}
	if exists {
		return nil, apperr.Conflict("%s %q already exists", s.kind, name)
	}

	v := new(T)
	s.apply(v, in)
	if err := s.r.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}
	return v, nil
}

func (s *lookupService[T, In]) List(ctx context.Context) ([]*T, error) {
	out, err := s.r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", s.kind, err)
	}
	return out, nil
}

func (s *lookupService[T, In]) Update(ctx context.Context, id uint, in In) (*T, error) {
	s.clean(&in)
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	v, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, fmt.Sprintf("%s %d", s.kind, id))
	}
	s.apply(v, in)
	if err := s.r.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("update %s %d: %w", s.kind, id, err)
	}
	return v, nil
}

func (s *lookupService[T, In]) Delete(ctx context.Context, id uint) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return lookupErr(err, fmt.Sprintf("%s %d", s.kind, id))
	}
	return nil
}

type AssetNameService interface {
	Create(ctx context.Context, in AssetNameInput) (*model.AssetName, error)
	List(ctx context.Context) ([]*model.AssetName, error)
}

type assetNameService struct {
	r repo.AssetNameRepo
}

func NewAssetNameService(r repo.AssetNameRepo) AssetNameService {
	return &assetNameService{r: r}
}

func (s *assetNameService) Create(ctx context.Context, in AssetNameInput) (*model.AssetName, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	n := &model.AssetName{Name: in.Name, Description: in.Description}
	if err := s.r.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create asset name: %w", err)
	}
	return n, nil
}

func (s *assetNameService) List(ctx context.Context) ([]*model.AssetName, error) {
	names, err := s.r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list asset names: %w", err)
	}
	return names, nil
}
