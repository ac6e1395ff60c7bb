package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storybuilder-app/database"
	"storybuilder-app/internal/api/auth"
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AuthIntegrationSuite exercises the password-reset flow against a real
// postgres. The token table's constraints only exist there, and the reset
// flow depends on them: a pending email verification must never block a
// password reset.
type AuthIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *tcpostgres.PostgresContainer
	router      *gin.Engine
}

func (s *AuthIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.pgContainer, err = tcpostgres.Run(s.ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("test_db"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	dsn, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	database.DB, err = gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	err = database.DB.AutoMigrate(
		&plans.Plan{},
		&authors.Author{},
		&authors.VerificationToken{},
	)
	require.NoError(s.T(), err, "Failed to migrate schema")

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.POST("/request-password-reset", auth.RequestPasswordReset)
	s.router.POST("/reset-password", auth.ResetPassword)
}

func (s *AuthIntegrationSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func TestAuthIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode.")
	}
	suite.Run(t, new(AuthIntegrationSuite))
}

func (s *AuthIntegrationSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthIntegrationSuite) newAuthor(username, email, password string, verified bool) authors.Author {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(s.T(), err)
	pw := string(hashed)

	author := authors.Author{
		Username:   username,
		Email:      email,
		Password:   &pw,
		Role:       "author",
		IsVerified: verified,
	}
	require.NoError(s.T(), database.DB.Create(&author).Error)
	return author
}

// An author who never clicked their verification link still has the
// email_verification row in the tokens table. Requesting a password
// reset must persist a reset token alongside it and hand out a token
// that ResetPassword accepts.
func (s *AuthIntegrationSuite) TestUnverifiedAuthorCanResetPassword() {
	t := s.T()
	author := s.newAuthor("pending-reader", "pending@example.com", "OldSecret123", false)

	pendingVerification := authors.VerificationToken{
		AuthorID:  author.ID,
		Token:     "pending-email-token",
		Type:      "email_verification",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, database.DB.Create(&pendingVerification).Error)

	w := s.postJSON("/request-password-reset", gin.H{"email": author.Email})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reset authors.VerificationToken
	require.NoError(t, database.DB.
		Where("author_id = ? AND type = ?", author.ID, "password_reset").
		First(&reset).Error,
		"the reset token must be stored even while an email verification is pending")

	w = s.postJSON("/reset-password", gin.H{
		"token":        reset.Token,
		"new_password": "NewSecret456",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded authors.Author
	require.NoError(t, database.DB.First(&reloaded, author.ID).Error)
	require.NotNil(t, reloaded.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(*reloaded.Password), []byte("NewSecret456")))

	// the used reset token is gone, the pending verification is not
	err := database.DB.
		Where("author_id = ? AND type = ?", author.ID, "password_reset").
		First(&authors.VerificationToken{}).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, database.DB.
		Where("author_id = ? AND type = ?", author.ID, "email_verification").
		First(&authors.VerificationToken{}).Error)
}

func (s *AuthIntegrationSuite) TestTokenUniquePerAuthorAndType() {
	t := s.T()
	author := s.newAuthor("token-holder", "tokens@example.com", "Secret123", true)

	first := authors.VerificationToken{
		AuthorID:  author.ID,
		Token:     "holder-verify",
		Type:      "email_verification",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, database.DB.Create(&first).Error)

	// a different type for the same author is allowed
	second := authors.VerificationToken{
		AuthorID:  author.ID,
		Token:     "holder-reset",
		Type:      "password_reset",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, database.DB.Create(&second).Error)

	// a second row of the same type is not
	dup := authors.VerificationToken{
		AuthorID:  author.ID,
		Token:     "holder-verify-again",
		Type:      "email_verification",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.ErrorIs(t, database.DB.Create(&dup).Error, gorm.ErrDuplicatedKey)
}

func (s *AuthIntegrationSuite) TestRepeatedResetRequestReplacesToken() {
	t := s.T()
	author := s.newAuthor("eager-reader", "eager@example.com", "Secret123", true)

	w := s.postJSON("/request-password-reset", gin.H{"email": author.Email})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var firstToken authors.VerificationToken
	require.NoError(t, database.DB.
		Where("author_id = ? AND type = ?", author.ID, "password_reset").
		First(&firstToken).Error)

	w = s.postJSON("/request-password-reset", gin.H{"email": author.Email})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tokens []authors.VerificationToken
	require.NoError(t, database.DB.
		Where("author_id = ? AND type = ?", author.ID, "password_reset").
		Find(&tokens).Error)
	require.Len(t, tokens, 1, "a new request replaces the old reset token")
	require.NotEqual(t, firstToken.Token, tokens[0].Token)
}
