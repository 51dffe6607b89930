package service_test

import (
	"context"
	"testing"

	. "todoapi/pkg/test"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/internal/core/util"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type RegistrationServiceSuite struct {
	suite.Suite
	AccountRepo port.AccountRepository
	Svc         port.RegistrationService
}

func (s *RegistrationServiceSuite) SetupTest() {
	db := InitTestDB()

	s.AccountRepo = repository.NewAccountRepository(db, nil)
	s.Svc = service.NewRegistrationService(s.AccountRepo)
}

func TestRegistrationServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(RegistrationServiceSuite))
}

func (s *RegistrationServiceSuite) TestRegisterSuccess() {
	result, err := s.Svc.Register(context.Background(), "alice", "pass1234")

	Expect(err).To(BeNil())
	Expect(result).To(Equal(domain.RegistrationSuccess))

	account, err := s.AccountRepo.FindByProfileName(context.Background(), "alice")

	Expect(err).To(BeNil())
	Expect(account.UserID).ToNot(BeEmpty())
}

func (s *RegistrationServiceSuite) TestRegisterStoresHashedPassword() {
	_, err := s.Svc.Register(context.Background(), "alice", "pass1234")

	Expect(err).To(BeNil())

	account, _ := s.AccountRepo.FindByProfileName(context.Background(), "alice")

	Expect(account.Password).ToNot(Equal("pass1234"))
	Expect(util.ComparePassword("pass1234", account.Password)).To(Succeed())
}

func (s *RegistrationServiceSuite) TestRegisterNameConflict() {
	ctx := context.Background()

	_, err := s.Svc.Register(ctx, "alice", "pass1234")
	Expect(err).To(BeNil())

	result, err := s.Svc.Register(ctx, "alice", "otherpass")

	Expect(err).To(BeNil())
	Expect(result).To(Equal(domain.RegistrationNameConflict))

	// the first registration is untouched
	account, err := s.AccountRepo.FindByProfileName(ctx, "alice")

	Expect(err).To(BeNil())
	Expect(util.ComparePassword("pass1234", account.Password)).To(Succeed())
}
