package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"padron/internal/user/models"
	"padron/pkg/platform/sentinel"
)

// Error contract: methods return sentinel.ErrNotFound (wrapped) when the
// requested record does not exist, nil on success.

// geography is the denormalized name set for one municipality.
type geography struct {
	Municipality string
	Department   string
	Country      string
}

// InMemory stores users in memory for tests and dev wiring. The geographic
// hierarchy lives in the database in production; here a seeded lookup stands
// in for it so the read model can carry display names.
type InMemory struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]*models.User
	geo    map[int]geography
}

// New constructs an empty in-memory user store.
func New() *InMemory {
	return &InMemory{
		nextID: 1,
		users:  make(map[int]*models.User),
		geo:    make(map[int]geography),
	}
}

// SeedGeography registers display names for a municipality id. Unknown
// municipalities project empty names.
func (s *InMemory) SeedGeography(municipalityID int, municipality, department, country string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geo[municipalityID] = geography{Municipality: municipality, Department: department, Country: country}
}

func (s *InMemory) Create(_ context.Context, user *models.User) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	stored := *user
	stored.ID = id
	s.users[id] = &stored
	return id, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.UserRecord, 0, len(s.users))
	for _, user := range s.users {
		records = append(records, s.project(user))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (s *InMemory) FindByID(_ context.Context, id int) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
	}
	return s.project(user), nil
}

func (s *InMemory) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, sentinel.ErrNotFound)
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *InMemory) DeleteByID(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *InMemory) project(user *models.User) *models.UserRecord {
	geo := s.geo[user.MunicipalityID]
	return &models.UserRecord{
		ID:               user.ID,
		Name:             user.Name,
		Phone:            user.Phone,
		Address:          user.Address,
		MunicipalityName: geo.Municipality,
		DepartmentName:   geo.Department,
		CountryName:      geo.Country,
	}
}
