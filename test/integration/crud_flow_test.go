package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/ItsmeMIGUEL/sample-crud-app/internal/adapter/api"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/adapter/mockapi"
	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/usecase/directory"
)

// CrudFlowTestSuite drives the reconciler through a full session
// against the in-process stub server: load, add, edit, delete.
type CrudFlowTestSuite struct {
	suite.Suite
	server *httptest.Server
	rec    *directory.Reconciler
}

func (s *CrudFlowTestSuite) SetupTest() {
	log := zaptest.NewLogger(s.T())
	store := mockapi.NewStore(mockapi.SeedUsers())
	router := mockapi.SetupRouter(mockapi.NewUserHandler(store, log), log)
	s.server = httptest.NewServer(router)

	client := api.New(api.Options{
		BaseURL: s.server.URL,
		Timeout: 5 * time.Second,
	}, log)
	s.rec = directory.New(client, log)
}

func (s *CrudFlowTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *CrudFlowTestSuite) TestFullSession() {
	ctx := context.Background()

	// Initial load pulls the seeded directory.
	s.Require().NoError(s.rec.Load(ctx))
	s.Require().Len(s.rec.Users(), 3)
	s.Equal(directory.ActionNone, s.rec.Action())
	s.Empty(s.rec.LoadError())

	// Adding a user grows the list; the notification quotes the name.
	s.Require().NoError(s.rec.Add(ctx, domain.User{
		Name:     "Bob Martin",
		Username: "bob.martin",
		Email:    "bob@example.com",
	}))
	s.Require().Len(s.rec.Users(), 4)
	s.Require().NotNil(s.rec.Alert())
	s.Contains(s.rec.Alert().Message, "Bob Martin")
	s.Equal(directory.SeveritySuccess, s.rec.Alert().Severity)

	// Editing replaces only the matching record.
	updated := s.rec.Users()[1]
	updated.Name = "Robert Howell"
	s.Require().NoError(s.rec.Edit(ctx, updated))
	s.Require().Len(s.rec.Users(), 4)
	s.Equal("Robert Howell", s.rec.Users()[1].Name)
	s.Equal("Leanne Graham", s.rec.Users()[0].Name)

	// Deleting removes the record everywhere.
	target := s.rec.Users()[1]
	s.Require().NoError(s.rec.Remove(ctx, target))
	s.Require().Len(s.rec.Users(), 3)
	for _, u := range s.rec.Users() {
		s.NotEqual(target.ID, u.ID)
	}
}

func (s *CrudFlowTestSuite) TestLoadFailureSetsBanner() {
	s.server.Close()

	ctx := context.Background()

	s.Error(s.rec.Load(ctx))
	s.Empty(s.rec.Users())
	s.Equal("Failed to fetch users. Please try again.", s.rec.LoadError())

	// A later success clears the banner.
	s.SetupTest()
	s.Require().NoError(s.rec.Load(ctx))
	s.Empty(s.rec.LoadError())
}

func TestCrudFlowTestSuite(t *testing.T) {
	suite.Run(t, new(CrudFlowTestSuite))
}
