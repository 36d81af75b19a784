package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	usersByUsername map[string]*userDatamodel.User
	usersByID       map[int64]*userDatamodel.User
	emails          map[string]bool
	createErr       error
	created         []*userDatamodel.User
	nextID          int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByUsername: make(map[string]*userDatamodel.User),
		usersByID:       make(map[int64]*userDatamodel.User),
		emails:          make(map[string]bool),
		nextID:          1,
	}
}

func (m *mockUserRepository) addUser(username, password, role string) *userDatamodel.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &userDatamodel.User{
		ID:           m.nextID,
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@mail.com",
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	m.nextID++
	m.usersByUsername[username] = u
	m.usersByID[u.ID] = u
	m.emails[u.Email] = true
	return u
}

func (m *mockUserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	u, ok := m.usersByUsername[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) UsernameExists(username string) (bool, error) {
	_, ok := m.usersByUsername[username]
	return ok, nil
}

func (m *mockUserRepository) EmailExists(email string) (bool, error) {
	return m.emails[email], nil
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = m.nextID
	m.nextID++
	m.usersByUsername[u.Username] = u
	m.usersByID[u.ID] = u
	m.emails[u.Email] = true
	m.created = append(m.created, u)
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcde",
			15*time.Minute,
		)
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.BeforeEach(func() {
			mockRepo.addUser("alice", "correct_password", "admin")
		})

		ginkgo.It("returns tokens and the user summary on valid credentials", func() {
			result, err := service.Authenticate(LoginDTO{
				Username: "alice",
				Password: "correct_password",
				Role:     "admin",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(result.User.Username).To(gomega.Equal("alice"))
			gomega.Expect(result.User.Role).To(gomega.Equal("admin"))
			gomega.Expect(result.Tokens.AccessToken).NotTo(gomega.BeEmpty())
			gomega.Expect(result.Tokens.RefreshToken).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("matches the requested role case-insensitively", func() {
			result, err := service.Authenticate(LoginDTO{
				Username: "alice",
				Password: "correct_password",
				Role:     "  ADMIN ",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.User.Role).To(gomega.Equal("admin"))
		})

		ginkgo.It("rejects a wrong password with invalid credentials", func() {
			_, err := service.Authenticate(LoginDTO{
				Username: "alice",
				Password: "wrong_password",
				Role:     "admin",
			})

			gomega.Expect(errors.Is(err, ErrInvalidCredentials)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects an unknown username with invalid credentials", func() {
			_, err := service.Authenticate(LoginDTO{
				Username: "nobody",
				Password: "correct_password",
				Role:     "admin",
			})

			gomega.Expect(errors.Is(err, ErrInvalidCredentials)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects a role mismatch even with correct credentials", func() {
			_, err := service.Authenticate(LoginDTO{
				Username: "alice",
				Password: "correct_password",
				Role:     "customer",
			})

			gomega.Expect(errors.Is(err, ErrRoleMismatch)).To(gomega.BeTrue())
		})

		ginkgo.It("refuses accounts whose stored role is outside the allow-list", func() {
			mockRepo.addUser("bob", "correct_password", "superuser")

			_, err := service.Authenticate(LoginDTO{
				Username: "bob",
				Password: "correct_password",
				Role:     "superuser",
			})

			gomega.Expect(errors.Is(err, ErrInvalidRole)).To(gomega.BeTrue())
		})

		ginkgo.It("normalizes a stored role with stray casing before matching", func() {
			mockRepo.addUser("carol", "correct_password", "Customer")

			result, err := service.Authenticate(LoginDTO{
				Username: "carol",
				Password: "correct_password",
				Role:     "customer",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.User.Role).To(gomega.Equal("customer"))
		})

		ginkgo.It("rejects missing fields before touching the repository", func() {
			_, err := service.Authenticate(LoginDTO{Username: "alice"})

			var verr ValidationError
			gomega.Expect(errors.As(err, &verr)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Signup", func() {
		ginkgo.It("creates an account with a normalized role and hashed password", func() {
			err := service.Signup(SignupDTO{
				Name:     "Dana",
				Username: "dana",
				Email:    "dana@mail.com",
				Password: "secret123",
				Role:     "Customer",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(mockRepo.created).To(gomega.HaveLen(1))
			gomega.Expect(mockRepo.created[0].Role).To(gomega.Equal("customer"))
			gomega.Expect(mockRepo.created[0].PasswordHash).NotTo(gomega.Equal("secret123"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(mockRepo.created[0].PasswordHash), []byte("secret123"))).To(gomega.Succeed())
		})

		ginkgo.It("rejects a role outside the allow-list", func() {
			err := service.Signup(SignupDTO{
				Name:     "Eve",
				Username: "eve",
				Email:    "eve@mail.com",
				Password: "secret123",
				Role:     "manager",
			})

			gomega.Expect(errors.Is(err, ErrInvalidRole)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects a duplicate username", func() {
			mockRepo.addUser("frank", "pw", "customer")

			err := service.Signup(SignupDTO{
				Name:     "Frank Two",
				Username: "frank",
				Email:    "frank2@mail.com",
				Password: "secret123",
				Role:     "customer",
			})

			gomega.Expect(errors.Is(err, ErrUsernameExists)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects a duplicate email", func() {
			mockRepo.addUser("grace", "pw", "customer")

			err := service.Signup(SignupDTO{
				Name:     "Grace Two",
				Username: "grace2",
				Email:    "grace@mail.com",
				Password: "secret123",
				Role:     "customer",
			})

			gomega.Expect(errors.Is(err, ErrEmailExists)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Token lifecycle", func() {
		ginkgo.It("round-trips claims through an access token", func() {
			token, err := tokenGen.GenerateAccessToken("42", "alice", "admin")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(token)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("42"))
			gomega.Expect(claims.Username).To(gomega.Equal("alice"))
			gomega.Expect(claims.Role).To(gomega.Equal("admin"))
		})

		ginkgo.It("issues a fresh pair from a valid refresh token", func() {
			refresh, err := tokenGen.GenerateRefreshToken("42", "alice", "admin")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			tokens, err := service.RefreshTokens(refresh)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).NotTo(gomega.BeEmpty())
			gomega.Expect(tokens.RefreshToken).NotTo(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.Username).To(gomega.Equal("alice"))
		})

		ginkgo.It("rejects a garbage token", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			gomega.Expect(errors.Is(err, ErrInvalidToken)).To(gomega.BeTrue())
		})
	})
})
