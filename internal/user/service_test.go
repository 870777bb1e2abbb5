package user_test

import (
	errors "github.com/frahmantamala/household-expenses/internal"
	userDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/frahmantamala/household-expenses/internal/user"
	"github.com/frahmantamala/household-expenses/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type MockRepository struct {
	rows   []*userDatamodel.User
	nextID int64
}

func (m *MockRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	for _, row := range m.rows {
		if row.Username == username {
			return row, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByID(id int64) (*userDatamodel.User, error) {
	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(u *userDatamodel.User) error {
	m.nextID++
	u.ID = m.nextID
	m.rows = append(m.rows, u)
	return nil
}

func (m *MockRepository) List() ([]*userDatamodel.User, error) {
	return m.rows, nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *MockRepository
		service *user.Service
	)

	BeforeEach(func() {
		repo = &MockRepository{}
		service = user.NewService(repo, bcrypt.MinCost, logger.Discard())
	})

	It("defaults the role to user and stores a bcrypt hash", func() {
		id, err := service.Create(user.CreateUserDTO{Username: " sam ", Password: "longpassword1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal(int64(1)))

		row := repo.rows[0]
		Expect(row.Username).To(Equal("sam"))
		Expect(row.Role).To(Equal(string(coreUser.RoleUser)))
		Expect(bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte("longpassword1"))).To(Succeed())
	})

	It("lower-cases the role", func() {
		_, err := service.Create(user.CreateUserDTO{Username: "sam", Password: "longpassword1", Role: "Editor"})
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.rows[0].Role).To(Equal("editor"))
	})

	DescribeTable("rejections",
		func(dto user.CreateUserDTO, message string) {
			_, err := service.Create(dto)
			Expect(errors.IsType(err, errors.ErrorTypeValidation)).To(BeTrue())
			Expect(err).To(MatchError(message))
		},
		Entry("missing username", user.CreateUserDTO{Password: "longpassword1"}, "Missing username or password"),
		Entry("missing password", user.CreateUserDTO{Username: "sam"}, "Missing username or password"),
		Entry("unknown role", user.CreateUserDTO{Username: "sam", Password: "longpassword1", Role: "owner"}, "Invalid role"),
		Entry("short password", user.CreateUserDTO{Username: "sam", Password: "short1"}, "Password must be at least 12 chars with letters and digits"),
		Entry("no digits", user.CreateUserDTO{Username: "sam", Password: "onlylettershere"}, "Password must be at least 12 chars with letters and digits"),
	)

	It("answers a conflict for a taken username", func() {
		_, err := service.Create(user.CreateUserDTO{Username: "sam", Password: "longpassword1"})
		Expect(err).NotTo(HaveOccurred())

		_, err = service.Create(user.CreateUserDTO{Username: "sam", Password: "longpassword2"})
		Expect(err).To(MatchError(errors.ErrUserExists))
	})

	Describe("EnsureAdmin", func() {
		It("creates the admin once", func() {
			created, err := service.EnsureAdmin("admin", "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
			Expect(repo.rows[0].Role).To(Equal("admin"))

			created, err = service.EnsureAdmin("admin", "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(repo.rows).To(HaveLen(1))
		})
	})
})
