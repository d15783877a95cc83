package studio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/forms"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/reports"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

// ErrBadPayload is returned when a mutation body is not valid JSON for the
// entity's input type.
var ErrBadPayload = errors.New("invalid request body")

// dependents lists the collections whose rows change when an entity is
// mutated: movements move stock, category renames show up on products.
var dependents = map[types.Entity][]types.Entity{
	types.EntityProducts:   {types.EntityProducts, types.EntityMovements},
	types.EntityCategories: {types.EntityCategories, types.EntityProducts},
	types.EntityMovements:  {types.EntityMovements, types.EntityProducts},
}

// Backend is the slice of the API client the studio needs.
type Backend interface {
	listview.Getter
	Dashboard(ctx context.Context) (*types.Dashboard, error)
	CreateProduct(ctx context.Context, in types.ProductInput) (*types.Product, error)
	UpdateProduct(ctx context.Context, id int64, in types.ProductInput) (*types.Product, error)
	CreateCategory(ctx context.Context, in types.CategoryInput) (*types.Category, error)
	UpdateCategory(ctx context.Context, id int64, in types.CategoryInput) (*types.Category, error)
	CreateMovement(ctx context.Context, in types.MovementInput) (*types.Movement, error)
	UpdateMovement(ctx context.Context, id int64, in types.MovementInput) (*types.Movement, error)
	DeleteEntity(ctx context.Context, entity types.Entity, id int64) error
}

// Service runs mutations against the backend and owns the reload tokens that
// every session's views are bound to.
type Service struct {
	backend Backend
	reports *reports.Adapter
	tokens  map[types.Entity]*listview.ReloadToken
	log     logrus.FieldLogger
}

func NewService(b Backend, log logrus.FieldLogger) *Service {
	return &Service{
		backend: b,
		reports: reports.NewAdapter(b),
		tokens: map[types.Entity]*listview.ReloadToken{
			types.EntityProducts:   listview.NewReloadToken(),
			types.EntityCategories: listview.NewReloadToken(),
			types.EntityMovements:  listview.NewReloadToken(),
		},
		log: log,
	}
}

func (s *Service) Token(e types.Entity) *listview.ReloadToken {
	return s.tokens[e]
}

func (s *Service) Dashboard(ctx context.Context) (*types.Dashboard, error) {
	return s.backend.Dashboard(ctx)
}

// Save creates (id == 0) or updates a record from a raw JSON body. The body
// is validated first; a validation failure never reaches the backend.
func (s *Service) Save(ctx context.Context, entity types.Entity, id int64, body []byte) (any, error) {
	var (
		out any
		err error
	)
	switch entity {
	case types.EntityProducts:
		var in types.ProductInput
		if err := decode(body, &in); err != nil {
			return nil, err
		}
		if err := forms.ValidateProduct(in); err != nil {
			return nil, err
		}
		if id == 0 {
			out, err = s.backend.CreateProduct(ctx, in)
		} else {
			out, err = s.backend.UpdateProduct(ctx, id, in)
		}
	case types.EntityCategories:
		var in types.CategoryInput
		if err := decode(body, &in); err != nil {
			return nil, err
		}
		if err := forms.ValidateCategory(in); err != nil {
			return nil, err
		}
		if id == 0 {
			out, err = s.backend.CreateCategory(ctx, in)
		} else {
			out, err = s.backend.UpdateCategory(ctx, id, in)
		}
	case types.EntityMovements:
		var in types.MovementInput
		if err := decode(body, &in); err != nil {
			return nil, err
		}
		if err := forms.ValidateMovement(in); err != nil {
			return nil, err
		}
		if id == 0 {
			out, err = s.backend.CreateMovement(ctx, in)
		} else {
			out, err = s.backend.UpdateMovement(ctx, id, in)
		}
	default:
		return nil, fmt.Errorf("unknown entity %q", entity)
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(entity)
	return out, nil
}

func (s *Service) Delete(ctx context.Context, entity types.Entity, id int64) error {
	if err := s.backend.DeleteEntity(ctx, entity, id); err != nil {
		return err
	}
	s.invalidate(entity)
	return nil
}

func (s *Service) invalidate(entity types.Entity) {
	for _, e := range dependents[entity] {
		v := s.tokens[e].Bump()
		s.log.WithFields(logrus.Fields{"entity": e, "token": v}).Debug("reload token bumped")
	}
}

func decode(body []byte, into any) error {
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}
