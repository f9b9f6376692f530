package user

import (
	"context"
	"regexp"
	"testing"

	"casillero-backend/internal/config"
	domainUser "casillero-backend/internal/domain/user"
	appErrors "casillero-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func newTestService(users ...*domainUser.User) (*Service, *fakeUserRepo, *fakeDispatcher) {
	repo := newFakeUserRepo(users...)
	dispatcher := &fakeDispatcher{delivered: true}
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			ExpiryHours:        1,
			RefreshExpiryHours: 24,
		},
		Brevo: config.BrevoConfig{OpsMailbox: opsMailbox},
	}
	return NewService(repo, dispatcher, cfg), repo, dispatcher
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		FirstName:   "Laura",
		LastName:    "Gomez",
		Email:       "laura@example.com",
		PhoneNumber: "+573001234567",
		Password:    "Secreto123",
	}
}

func TestRegister(t *testing.T) {
	svc, repo, dispatcher := newTestService()

	resp, warning, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	assert.Empty(t, warning)

	assert.Equal(t, "laura@example.com", resp.User.Email)
	assert.False(t, resp.User.IsAdmin)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Mailbox code is stamped on inbound boxes; format is fixed
	assert.Regexp(t, regexp.MustCompile(`^CO[A-Z]{3}\d{4}$`), resp.User.CasilleroCode)

	stored, err := repo.GetByEmail(context.Background(), "laura@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Secreto123", stored.PasswordHashed, "password must be stored hashed")

	// One mail to the operational mailbox, one welcome mail to the user
	require.Len(t, dispatcher.sends, 2)
	assert.Equal(t, opsMailbox, dispatcher.sends[0].recipient)
	assert.Equal(t, "laura@example.com", dispatcher.sends[1].recipient)
	assert.Contains(t, dispatcher.sends[1].body, resp.User.CasilleroCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(&domainUser.User{
		ID:          uuid.New(),
		Email:       "laura@example.com",
		PhoneNumber: "+573009999999",
	})

	_, _, err := svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, domainUser.ErrDuplicateEmail)
}

func TestRegisterDuplicatePhoneNumber(t *testing.T) {
	svc, _, _ := newTestService(&domainUser.User{
		ID:          uuid.New(),
		Email:       "otra@example.com",
		PhoneNumber: "+573001234567",
	})

	_, _, err := svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, domainUser.ErrDuplicatePhoneNumber)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newTestService()

	req := validRegisterRequest()
	req.Password = "contraseña"

	_, _, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WEAK_PASSWORD", appErr.Code)
}

func TestRegisterMailFailureDoesNotRollBack(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	dispatcher.delivered = false
	dispatcher.diagnostic = "brevo api key not configured"

	resp, warning, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, warning)
	assert.NotNil(t, resp)

	_, err = repo.GetByEmail(context.Background(), "laura@example.com")
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "laura@example.com",
		Password: "Secreto123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "laura@example.com",
		Password: "EquivocadaX1",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "Secreto123",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials,
		"an unknown email is indistinguishable from a wrong password")
}

func TestRefresh(t *testing.T) {
	svc, _, _ := newTestService()

	registered, _, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), &RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	_, err = svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestUpdateProfileDuplicateChecksSkipSelf(t *testing.T) {
	svc, _, _ := newTestService()

	registered, _, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	// Keeping one's own email and phone is not a conflict
	resp, err := svc.UpdateProfile(context.Background(), registered.User.ID, &UpdateProfileRequest{
		FirstName:   "Laura",
		LastName:    "Gomez Arias",
		Email:       "laura@example.com",
		PhoneNumber: "+573001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Gomez Arias", resp.LastName)
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	other := &domainUser.User{
		ID:          uuid.New(),
		Email:       "otra@example.com",
		PhoneNumber: "+573009999999",
	}
	svc, _, _ := newTestService(other)

	registered, _, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), registered.User.ID, &UpdateProfileRequest{
		FirstName:   "Laura",
		LastName:    "Gomez",
		Email:       "otra@example.com",
		PhoneNumber: "+573001234567",
	})
	assert.ErrorIs(t, err, domainUser.ErrDuplicateEmail)
}

func TestDeleteUser(t *testing.T) {
	svc, repo, _ := newTestService()

	registered, _, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), registered.User.ID))

	_, err = repo.GetByID(context.Background(), registered.User.ID)
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
}
