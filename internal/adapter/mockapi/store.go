package mockapi

import (
	"sync"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
	apperrors "github.com/ItsmeMIGUEL/sample-crud-app/pkg/errors"
)

// Store is the in-memory user set behind the stub directory server.
// Unlike the client, the server is genuinely concurrent, so access is
// mutex-guarded.
type Store struct {
	mu     sync.Mutex
	users  []domain.User
	nextID int64
}

// NewStore creates a store preloaded with the given users.
func NewStore(seed []domain.User) *Store {
	s := &Store{nextID: 1}
	for _, u := range seed {
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	s.users = append(s.users, seed...)
	return s
}

// List returns a copy of all users.
func (s *Store) List() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Create assigns the next id and appends the user.
func (s *Store) Create(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	s.users = append(s.users, u)
	return u
}

// Update replaces the user with the given id.
func (s *Store) Update(id int64, u domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u.ID = id
			s.users[i] = u
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user", "")
}

// Delete removes the user with the given id. Deleting an unknown id
// succeeds, matching the upstream service this stub stands in for.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

// SeedUsers returns the default data set served by the stub.
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:       1,
			Name:     "Leanne Graham",
			Username: "Bret",
			Email:    "Sincere@april.biz",
			Phone:    "1-770-736-8031 x56442",
			Website:  "hildegard.org",
			Company: domain.Company{
				Name:        "Romaguera-Crona",
				CatchPhrase: "Multi-layered client-server neural-net",
				BS:          "harness real-time e-markets",
			},
			Address: domain.Address{
				Street:  "Kulas Light",
				Suite:   "Apt. 556",
				City:    "Gwenborough",
				Zipcode: "92998-3874",
				Geo:     domain.Geo{Lat: "-37.3159", Lng: "81.1496"},
			},
		},
		{
			ID:       2,
			Name:     "Ervin Howell",
			Username: "Antonette",
			Email:    "Shanna@melissa.tv",
			Phone:    "010-692-6593 x09125",
			Website:  "anastasia.net",
			Company: domain.Company{
				Name:        "Deckow-Crist",
				CatchPhrase: "Proactive didactic contingency",
				BS:          "synergize scalable supply-chains",
			},
			Address: domain.Address{
				Street:  "Victor Plains",
				Suite:   "Suite 879",
				City:    "Wisokyburgh",
				Zipcode: "90566-7771",
				Geo:     domain.Geo{Lat: "-43.9509", Lng: "-34.4618"},
			},
		},
		{
			ID:       3,
			Name:     "Clementine Bauch",
			Username: "Samantha",
			Email:    "Nathan@yesenia.net",
			Phone:    "1-463-123-4447",
			Website:  "ramiro.info",
			Company: domain.Company{
				Name:        "Romaguera-Jacobson",
				CatchPhrase: "Face to face bifurcated interface",
				BS:          "e-enable strategic applications",
			},
			Address: domain.Address{
				Street:  "Douglas Extension",
				Suite:   "Suite 847",
				City:    "McKenziehaven",
				Zipcode: "59590-4157",
				Geo:     domain.Geo{Lat: "-68.6102", Lng: "-47.0653"},
			},
		},
	}
}
