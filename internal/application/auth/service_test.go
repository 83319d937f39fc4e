package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type welcomeRecorder struct {
	sent []string
	err  error
}

func (w *welcomeRecorder) SendWelcome(ctx context.Context, toEmail, name string) error {
	w.sent = append(w.sent, toEmail+"|"+name)
	return w.err
}

func (w *welcomeRecorder) SendNewConversation(ctx context.Context, toEmail, ownerName, buyerName, listingTitle string) error {
	return nil
}

func setupAuthTest(t *testing.T) (*Service, *welcomeRecorder) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	rec := &welcomeRecorder{}
	return &Service{DB: db, Emails: rec}, rec
}

func TestSignUp_CreatesAccountAndProfile(t *testing.T) {
	s, rec := setupAuthTest(t)
	ctx := context.Background()

	acc, err := s.SignUp(ctx, SignUpInput{Name: " Ana Souza ", Email: "Ana@Example.com", Password: "secret1", ProfileType: "buyer"})
	require.NoError(t, err)
	assert.NotEmpty(t, acc.UserID)
	assert.Equal(t, "ana@example.com", acc.Email)
	assert.NotEqual(t, "secret1", acc.PasswordHash)

	var p domain.UserProfile
	require.NoError(t, s.DB.Where("user_id = ?", acc.UserID).First(&p).Error)
	assert.Equal(t, "Ana Souza", p.Name)
	assert.Equal(t, "buyer", p.ProfileType)

	assert.Equal(t, []string{"ana@example.com|Ana Souza"}, rec.sent)

	_, err = s.SignUp(ctx, SignUpInput{Name: "Other", Email: "ANA@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_EmailFailureDoesNotFail(t *testing.T) {
	s, rec := setupAuthTest(t)
	rec.err = errors.New("brevo down")
	_, err := s.SignUp(context.Background(), SignUpInput{Name: "Rui", Email: "rui@x.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestSignUp_Validation(t *testing.T) {
	s, _ := setupAuthTest(t)
	ctx := context.Background()
	cases := []struct {
		in   SignUpInput
		want error
	}{
		{SignUpInput{Email: "a@b.com", Password: "secret1"}, ErrNameRequired},
		{SignUpInput{Name: "A", Email: "nope", Password: "secret1"}, ErrInvalidEmailFormat},
		{SignUpInput{Name: "A", Email: "a@b.com", Password: "123"}, ErrWeakPassword},
		{SignUpInput{Name: "A", Email: "a@b.com", Password: "secret1", ProfileType: "admin"}, ErrInvalidProfileType},
	}
	for _, tc := range cases {
		_, err := s.SignUp(ctx, tc.in)
		assert.ErrorIs(t, err, tc.want)
	}
}

func TestLogin(t *testing.T) {
	s, _ := setupAuthTest(t)
	ctx := context.Background()
	_, err := s.SignUp(ctx, SignUpInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	finder := &GormUserFinder{DB: s.DB}
	u, err := finder.FindByEmailAndPassword(ctx, " ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = finder.FindByEmailAndPassword(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
	_, err = finder.FindByEmailAndPassword(ctx, "who@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = finder.FindByEmailAndPassword(ctx, "", "")
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}
