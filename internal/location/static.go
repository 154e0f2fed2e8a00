package location

import "context"

// StaticProvider reports a fixed position, for hosts without a positioning source.
type StaticProvider struct {
	permission Permission
	coords     Coordinates
}

// NewStaticProvider creates a provider that always returns coords.
func NewStaticProvider(permission Permission, coords Coordinates) (*StaticProvider, error) {
	if err := validate(coords); err != nil {
		return nil, err
	}
	return &StaticProvider{permission: permission, coords: coords}, nil
}

func (p *StaticProvider) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return Denied, err
	}
	return p.permission, nil
}

func (p *StaticProvider) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	return p.coords, nil
}
