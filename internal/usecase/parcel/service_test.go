package parcel

import (
	"context"
	"testing"

	domainParcel "casillero-backend/internal/domain/parcel"
	domainUser "casillero-backend/internal/domain/user"
	appErrors "casillero-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParcelRepo struct {
	parcels   map[uuid.UUID]*domainParcel.Parcel
	updateErr error
}

func newFakeParcelRepo() *fakeParcelRepo {
	return &fakeParcelRepo{parcels: make(map[uuid.UUID]*domainParcel.Parcel)}
}

func (r *fakeParcelRepo) Create(_ context.Context, p *domainParcel.Parcel) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	r.parcels[p.ID] = &stored
	return nil
}

func (r *fakeParcelRepo) GetByID(_ context.Context, parcelID uuid.UUID) (*domainParcel.Parcel, error) {
	p, ok := r.parcels[parcelID]
	if !ok {
		return nil, domainParcel.ErrParcelNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeParcelRepo) GetByTrackingNumber(_ context.Context, trackingNumber string) (*domainParcel.Parcel, error) {
	for _, p := range r.parcels {
		if p.TrackingNumber == trackingNumber {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domainParcel.ErrParcelNotFound
}

func (r *fakeParcelRepo) GetByTrackingAndOwner(_ context.Context, trackingNumber string, ownerID uuid.UUID) (*domainParcel.Parcel, error) {
	for _, p := range r.parcels {
		if p.TrackingNumber == trackingNumber && p.OwnerID == ownerID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domainParcel.ErrParcelNotFound
}

func (r *fakeParcelRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domainParcel.Parcel, error) {
	var result []*domainParcel.Parcel
	for _, p := range r.parcels {
		if p.OwnerID == ownerID {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeParcelRepo) List(_ context.Context) ([]*domainParcel.Parcel, error) {
	var result []*domainParcel.Parcel
	for _, p := range r.parcels {
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeParcelRepo) Update(_ context.Context, p *domainParcel.Parcel) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.parcels[p.ID]; !ok {
		return domainParcel.ErrParcelNotFound
	}
	stored := *p
	r.parcels[p.ID] = &stored
	return nil
}

func (r *fakeParcelRepo) UpdateConsolidate(_ context.Context, parcelID uuid.UUID, consolidate bool) error {
	p, ok := r.parcels[parcelID]
	if !ok {
		return domainParcel.ErrParcelNotFound
	}
	p.Consolidate = consolidate
	return nil
}

func (r *fakeParcelRepo) Delete(_ context.Context, parcelID uuid.UUID) error {
	if _, ok := r.parcels[parcelID]; !ok {
		return domainParcel.ErrParcelNotFound
	}
	delete(r.parcels, parcelID)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo(users ...*domainUser.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByPhoneNumber(_ context.Context, phoneNumber string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.PhoneNumber == phoneNumber {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*domainUser.User, error) {
	var result []*domainUser.User
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domainUser.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID uuid.UUID) error {
	delete(r.users, userID)
	return nil
}

type sentMail struct {
	subject   string
	recipient string
	body      string
	html      bool
}

type fakeDispatcher struct {
	delivered  bool
	diagnostic string
	sends      []sentMail
}

func (d *fakeDispatcher) Send(_ context.Context, subject, recipient, body string, html bool) (bool, string) {
	d.sends = append(d.sends, sentMail{subject: subject, recipient: recipient, body: body, html: html})
	return d.delivered, d.diagnostic
}

const opsMailbox = "logistica@porencargo.co"

func newTestService(enforceOrder bool) (*Service, *fakeParcelRepo, *fakeUserRepo, *fakeDispatcher, *domainUser.User) {
	owner := &domainUser.User{
		ID:        uuid.New(),
		FirstName: "Laura",
		LastName:  "Gomez",
		Email:     "laura@example.com",
	}
	parcelRepo := newFakeParcelRepo()
	userRepo := newFakeUserRepo(owner)
	dispatcher := &fakeDispatcher{delivered: true}
	svc := NewService(parcelRepo, userRepo, dispatcher, opsMailbox, enforceOrder)
	return svc, parcelRepo, userRepo, dispatcher, owner
}

func TestCreateByAdmin(t *testing.T) {
	svc, _, _, _, owner := newTestService(false)

	resp, err := svc.CreateByAdmin(context.Background(), &CreateByAdminRequest{
		OwnerID:        owner.ID,
		Name:           "Zapatos",
		Price:          "120.00",
		TrackingNumber: "1Z999AA10123456784",
		Weight:         "2.5",
		Status:         "EN_BODEGA_MIAMI",
	})
	require.NoError(t, err)

	assert.Equal(t, owner.ID, resp.OwnerID)
	assert.Equal(t, "EN_BODEGA_MIAMI", resp.Status)
	assert.Equal(t, "Llegó a Bodega Miami", resp.StatusLabel)
	assert.False(t, resp.PreAlert)
	assert.False(t, resp.Consolidate)
}

func TestCreateByAdminUnknownOwner(t *testing.T) {
	svc, _, _, _, _ := newTestService(false)

	_, err := svc.CreateByAdmin(context.Background(), &CreateByAdminRequest{
		OwnerID:        uuid.New(),
		Name:           "Zapatos",
		Price:          "120.00",
		TrackingNumber: "1Z999AA10123456784",
		Weight:         "2.5",
		Status:         "EN_ENVIO",
	})
	assert.ErrorIs(t, err, domainParcel.ErrUnknownOwner)
}

func TestCreateByAdminDuplicateTracking(t *testing.T) {
	svc, _, _, _, owner := newTestService(false)

	req := &CreateByAdminRequest{
		OwnerID:        owner.ID,
		Name:           "Zapatos",
		Price:          "120.00",
		TrackingNumber: "1Z999AA10123456784",
		Weight:         "2.5",
		Status:         "EN_ENVIO",
	}
	_, err := svc.CreateByAdmin(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateByAdmin(context.Background(), req)
	assert.ErrorIs(t, err, domainParcel.ErrDuplicateTrackingNumber)
}

func TestCreatePreAlertDefaults(t *testing.T) {
	svc, _, _, dispatcher, owner := newTestService(false)

	resp, warning, err := svc.CreatePreAlert(context.Background(), owner.ID, &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	})
	require.NoError(t, err)
	assert.Empty(t, warning)

	assert.True(t, resp.PreAlert)
	assert.False(t, resp.Consolidate)
	assert.Equal(t, string(domainParcel.DefaultStatus), resp.Status)

	// The operational mailbox is told about the self-reported package
	require.Len(t, dispatcher.sends, 1)
	assert.Equal(t, opsMailbox, dispatcher.sends[0].recipient)
	assert.Contains(t, dispatcher.sends[0].body, "TBA123456789")
	assert.Contains(t, dispatcher.sends[0].body, owner.Email)
}

func TestCreatePreAlertDuplicateTracking(t *testing.T) {
	svc, _, _, _, owner := newTestService(false)

	req := &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	}
	_, _, err := svc.CreatePreAlert(context.Background(), owner.ID, req)
	require.NoError(t, err)

	// Duplicate even against the same owner's existing parcel
	_, _, err = svc.CreatePreAlert(context.Background(), owner.ID, req)
	assert.ErrorIs(t, err, domainParcel.ErrDuplicateTrackingNumber)
}

func TestCreatePreAlertNotificationFailureWarns(t *testing.T) {
	svc, parcelRepo, _, dispatcher, owner := newTestService(false)
	dispatcher.delivered = false
	dispatcher.diagnostic = "connection refused"

	resp, warning, err := svc.CreatePreAlert(context.Background(), owner.ID, &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, warning)

	// The record stands even though the notification failed
	_, getErr := parcelRepo.GetByID(context.Background(), resp.ID)
	assert.NoError(t, getErr)
}

func TestUpdateStatusAndDetails(t *testing.T) {
	svc, parcelRepo, _, dispatcher, owner := newTestService(false)

	created, _, err := svc.CreatePreAlert(context.Background(), owner.ID, &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	})
	require.NoError(t, err)
	dispatcher.sends = nil

	resp, warning, err := svc.UpdateStatusAndDetails(context.Background(), created.ID, &UpdateStatusAndDetailsRequest{
		NewStatus:      "EN_BODEGA_MIAMI",
		Name:           "Libros",
		Price:          "45.00",
		TrackingNumber: "TBA123456789",
		Weight:         "1.4",
		ClearPreAlert:  true,
	})
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, "EN_BODEGA_MIAMI", resp.Status)
	assert.False(t, resp.PreAlert)
	assert.Equal(t, "1.4", resp.Weight)

	stored, err := parcelRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domainParcel.StatusEnBodegaMiami, stored.Status)

	// The owner hears about the change; the body carries the previous
	// status name and the new status label
	require.Len(t, dispatcher.sends, 1)
	mail := dispatcher.sends[0]
	assert.Equal(t, owner.Email, mail.recipient)
	assert.True(t, mail.html)
	assert.Contains(t, mail.body, "EN_ENVIO")
	assert.Contains(t, mail.body, "Llegó a Bodega Miami")
}

func TestUpdateStatusNotificationFailureKeepsUpdate(t *testing.T) {
	svc, parcelRepo, _, dispatcher, owner := newTestService(false)

	created, _, err := svc.CreatePreAlert(context.Background(), owner.ID, &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	})
	require.NoError(t, err)
	dispatcher.delivered = false
	dispatcher.sends = nil

	_, warning, err := svc.UpdateStatusAndDetails(context.Background(), created.ID, &UpdateStatusAndDetailsRequest{
		NewStatus:      "EN_COLOMBIA",
		Name:           "Libros",
		Price:          "45.00",
		TrackingNumber: "TBA123456789",
		Weight:         "1.2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, warning)

	stored, err := parcelRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domainParcel.StatusEnColombia, stored.Status)
}

func TestUpdateStatusStrictOrderRejectsBackwardMove(t *testing.T) {
	svc, parcelRepo, _, _, owner := newTestService(true)

	created, _, err := svc.CreatePreAlert(context.Background(), owner.ID, &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	})
	require.NoError(t, err)

	_, _, err = svc.UpdateStatusAndDetails(context.Background(), created.ID, &UpdateStatusAndDetailsRequest{
		NewStatus:      "COMPRADO",
		Name:           "Libros",
		Price:          "45.00",
		TrackingNumber: "TBA123456789",
		Weight:         "1.2",
	})
	assert.ErrorIs(t, err, domainParcel.ErrInvalidStatusTransition)

	stored, err := parcelRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domainParcel.DefaultStatus, stored.Status)
}

func TestSetConsolidateForbiddenForNonOwner(t *testing.T) {
	svc, parcelRepo, _, _, owner := newTestService(false)

	created, _, err := svc.CreatePreAlert(context.Background(), owner.ID, &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	})
	require.NoError(t, err)

	_, err = svc.SetConsolidate(context.Background(), created.ID, uuid.New(), true)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	stored, err := parcelRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Consolidate)
}

func TestSetConsolidate(t *testing.T) {
	svc, _, _, _, owner := newTestService(false)

	created, _, err := svc.CreatePreAlert(context.Background(), owner.ID, &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	})
	require.NoError(t, err)

	resp, err := svc.SetConsolidate(context.Background(), created.ID, owner.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.Consolidate)
}

func TestTrack(t *testing.T) {
	svc, _, userRepo, _, owner := newTestService(false)

	other := &domainUser.User{ID: uuid.New(), Email: "other@example.com"}
	require.NoError(t, userRepo.Create(context.Background(), other))

	_, _, err := svc.CreatePreAlert(context.Background(), owner.ID, &CreatePreAlertRequest{
		Name:           "Libros",
		TrackingNumber: "TBA123456789",
		Price:          "45.00",
		Weight:         "1.2",
	})
	require.NoError(t, err)

	t.Run("matching pair", func(t *testing.T) {
		resp, err := svc.Track(context.Background(), &TrackRequest{
			Email:          owner.Email,
			TrackingNumber: "TBA123456789",
		})
		require.NoError(t, err)
		assert.Equal(t, "TBA123456789", resp.TrackingNumber)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Track(context.Background(), &TrackRequest{
			Email:          "nobody@example.com",
			TrackingNumber: "TBA123456789",
		})
		assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
	})

	t.Run("unknown tracking number", func(t *testing.T) {
		_, err := svc.Track(context.Background(), &TrackRequest{
			Email:          owner.Email,
			TrackingNumber: "TBA000000000",
		})
		assert.ErrorIs(t, err, domainParcel.ErrParcelNotFound)
	})

	t.Run("tracking number owned by someone else", func(t *testing.T) {
		_, err := svc.Track(context.Background(), &TrackRequest{
			Email:          other.Email,
			TrackingNumber: "TBA123456789",
		})
		assert.ErrorIs(t, err, domainParcel.ErrParcelNotFound)
	})
}
