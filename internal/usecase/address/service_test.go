package address

import (
	"context"
	"testing"

	domainAddress "casillero-backend/internal/domain/address"
	appErrors "casillero-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAddressRepo struct {
	addresses map[uuid.UUID]*domainAddress.Address
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[uuid.UUID]*domainAddress.Address)}
}

func (r *fakeAddressRepo) Create(_ context.Context, a *domainAddress.Address) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	stored := *a
	r.addresses[a.ID] = &stored
	return nil
}

func (r *fakeAddressRepo) GetByID(_ context.Context, addressID uuid.UUID) (*domainAddress.Address, error) {
	a, ok := r.addresses[addressID]
	if !ok {
		return nil, domainAddress.ErrAddressNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAddressRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domainAddress.Address, error) {
	var result []*domainAddress.Address
	for _, a := range r.addresses {
		if a.UserID == ownerID {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeAddressRepo) Delete(_ context.Context, addressID uuid.UUID) error {
	if _, ok := r.addresses[addressID]; !ok {
		return domainAddress.ErrAddressNotFound
	}
	delete(r.addresses, addressID)
	return nil
}

func validCreateRequest() *CreateAddressRequest {
	return &CreateAddressRequest{
		Country:    "Colombia",
		City:       "Medellín",
		StreetLine: "Cra 43A #1-50",
		Name:       "Casa",
	}
}

func TestCreateAndList(t *testing.T) {
	svc := NewService(newFakeAddressRepo())
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, ownerID, created.UserID)

	listed, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	other, err := svc.ListByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteForbiddenForNonOwner(t *testing.T) {
	repo := newFakeAddressRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), false, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.NoError(t, err, "the address must survive a forbidden delete")
}

func TestDeleteByOwnerAndAdmin(t *testing.T) {
	repo := newFakeAddressRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	first, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), ownerID, &CreateAddressRequest{
		Country:    "Colombia",
		City:       "Bogotá",
		StreetLine: "Cl 100 #19-61",
		Name:       "Oficina",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), ownerID, false, first.ID))

	// An admin may remove any user's address
	require.NoError(t, svc.Delete(context.Background(), uuid.New(), true, second.ID))

	err = svc.Delete(context.Background(), ownerID, false, first.ID)
	assert.ErrorIs(t, err, domainAddress.ErrAddressNotFound)
}
