package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/varta-media/newsdesk/internal/logger"
	"github.com/varta-media/newsdesk/internal/models"
)

// GeoLookup resolves administrative hierarchy entities by id.
type GeoLookup interface {
	VillageByID(ctx context.Context, id uuid.UUID) (*models.Village, error)
	MandalByID(ctx context.Context, id uuid.UUID) (*models.Mandal, error)
	DistrictByID(ctx context.Context, id uuid.UUID) (*models.District, error)
	StateByID(ctx context.Context, id uuid.UUID) (*models.State, error)
}

// LocationResolver resolves a loosely-shaped location payload into a
// canonical LocationRef. Resolution never fails: every lookup degrades to
// nil on error, and the worst case is an all-nil ref.
type LocationResolver struct {
	geo GeoLookup
	log logger.Logger
}

// NewLocationResolver creates a resolver backed by the given lookup.
func NewLocationResolver(geo GeoLookup, log logger.Logger) *LocationResolver {
	return &LocationResolver{geo: geo, log: log}
}

// Resolve walks the hierarchy most-specific-first. A resolved village fills
// ancestor ids (mandal → district → state) that the caller did not supply;
// caller-supplied ids are never overwritten by the chain.
func (r *LocationResolver) Resolve(ctx context.Context, in models.LocationInput) models.LocationRef {
	ref := models.LocationRef{}

	villageID := in.VillageID
	mandalID := in.MandalID
	districtID := in.DistrictID
	stateID := in.StateID

	if villageID != nil {
		if village := r.lookupVillage(ctx, *villageID, &ref); village != nil {
			ref.VillageID = &village.ID
			ref.VillageName = &village.Name
			if mandalID == nil {
				mandalID = &village.MandalID
			}
		}
	}

	if mandalID != nil {
		if mandal := r.lookupMandal(ctx, *mandalID, &ref); mandal != nil {
			ref.MandalID = &mandal.ID
			ref.MandalName = &mandal.Name
			if districtID == nil {
				districtID = &mandal.DistrictID
			}
		}
	}

	if districtID != nil {
		if district := r.lookupDistrict(ctx, *districtID, &ref); district != nil {
			ref.DistrictID = &district.ID
			ref.DistrictName = &district.Name
			if stateID == nil {
				stateID = &district.StateID
			}
		}
	}

	if stateID != nil {
		if state := r.lookupState(ctx, *stateID, &ref); state != nil {
			ref.StateID = &state.ID
			ref.StateName = &state.Name
		}
	}

	ref.DisplayName = firstNonNil(ref.VillageName, ref.MandalName, ref.DistrictName, ref.StateName, optional(in.City))
	ref.Address = joinAddress(ref.DistrictName, ref.StateName)
	ref.PlaceID = firstNonNil(ref.VillageID, ref.MandalID, ref.DistrictID, ref.StateID)

	return ref
}

func (r *LocationResolver) lookupVillage(ctx context.Context, id uuid.UUID, ref *models.LocationRef) *models.Village {
	village, err := r.geo.VillageByID(ctx, id)
	if err != nil {
		r.degrade(ref, "village", id, err)
		return nil
	}
	return village
}

func (r *LocationResolver) lookupMandal(ctx context.Context, id uuid.UUID, ref *models.LocationRef) *models.Mandal {
	mandal, err := r.geo.MandalByID(ctx, id)
	if err != nil {
		r.degrade(ref, "mandal", id, err)
		return nil
	}
	return mandal
}

func (r *LocationResolver) lookupDistrict(ctx context.Context, id uuid.UUID, ref *models.LocationRef) *models.District {
	district, err := r.geo.DistrictByID(ctx, id)
	if err != nil {
		r.degrade(ref, "district", id, err)
		return nil
	}
	return district
}

func (r *LocationResolver) lookupState(ctx context.Context, id uuid.UUID, ref *models.LocationRef) *models.State {
	state, err := r.geo.StateByID(ctx, id)
	if err != nil {
		r.degrade(ref, "state", id, err)
		return nil
	}
	return state
}

// degrade records a failed lookup: the level stays nil and the ref is
// flagged so the audit trail can see the degradation.
func (r *LocationResolver) degrade(ref *models.LocationRef, level string, id uuid.UUID, err error) {
	ref.Degraded = true
	r.log.Warn("location lookup degraded to null",
		logger.String("level", level),
		logger.String("id", id.String()),
		logger.Error(err),
	)
}

func firstNonNil[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func joinAddress(district, state *string) *string {
	if district == nil || state == nil {
		return nil
	}
	addr := *district + ", " + *state
	return &addr
}
