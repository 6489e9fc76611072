package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/entity"
)

// memDB is the shared in-memory backing store for the storage fakes.
// Creation timestamps advance by one second per write so listing order
// is deterministic.
type memDB struct {
	mu          sync.Mutex
	now         time.Time
	users       map[string]*entity.User
	profiles    map[string]*entity.Profile
	clubs       map[string]*entity.Club
	memberships map[string]*entity.Membership
	messages    map[string]*entity.Message
	codes       map[string]string
	online      map[string]bool
}

func newMemDB() *memDB {
	return &memDB{
		now:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:       make(map[string]*entity.User),
		profiles:    make(map[string]*entity.Profile),
		clubs:       make(map[string]*entity.Club),
		memberships: make(map[string]*entity.Membership),
		messages:    make(map[string]*entity.Message),
		codes:       make(map[string]string),
		online:      make(map[string]bool),
	}
}

func (db *memDB) tick() time.Time {
	db.now = db.now.Add(time.Second)
	return db.now
}

type fakeUserStorage struct{ db *memDB }

func (s *fakeUserStorage) CreateWithProfile(_ context.Context, user *entity.User, profile *entity.Profile) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, errorz.ErrConflict
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = s.db.tick()
	s.db.users[user.ID] = user

	profile.ID = uuid.NewString()
	profile.UserID = user.ID
	profile.User = *user
	profile.CreatedAt = s.db.tick()
	s.db.profiles[profile.ID] = profile
	return user, nil
}

func (s *fakeUserStorage) Get(_ context.Context, id string) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	user, ok := s.db.users[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStorage) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (s *fakeUserStorage) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (s *fakeUserStorage) GetAll(_ context.Context) ([]entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	users := make([]entity.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (s *fakeUserStorage) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.ID != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return nil, errorz.ErrConflict
		}
	}
	s.db.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStorage) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for pid, p := range s.db.profiles {
		if p.UserID != id {
			continue
		}
		for mid, ms := range s.db.memberships {
			if ms.ProfileID == pid {
				delete(s.db.memberships, mid)
			}
		}
		for msgID, msg := range s.db.messages {
			if msg.TargetType == entity.TargetProfile && msg.TargetID == pid {
				delete(s.db.messages, msgID)
			}
		}
		delete(s.db.profiles, pid)
	}
	for msgID, msg := range s.db.messages {
		if msg.SenderID == id {
			delete(s.db.messages, msgID)
		}
	}
	delete(s.db.users, id)
	return nil
}

func (s *fakeUserStorage) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.db.users)), nil
}

type fakeProfileStorage struct{ db *memDB }

func (s *fakeProfileStorage) Get(_ context.Context, id string) (*entity.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	profile, ok := s.db.profiles[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	return profile, nil
}

func (s *fakeProfileStorage) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (s *fakeProfileStorage) GetByIDs(_ context.Context, ids []string) ([]entity.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var profiles []entity.Profile
	for _, id := range ids {
		if p, ok := s.db.profiles[id]; ok {
			profiles = append(profiles, *p)
		}
	}
	return profiles, nil
}

func (s *fakeProfileStorage) Update(_ context.Context, profile *entity.Profile) (*entity.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.profiles[profile.ID] = profile
	return profile, nil
}

type fakeClubStorage struct{ db *memDB }

func (s *fakeClubStorage) CreateWithOwnerMembership(_ context.Context, club *entity.Club, ownerProfileID string) (*entity.Club, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, c := range s.db.clubs {
		if c.OwnerID == club.OwnerID && c.Title == club.Title {
			return nil, errorz.ErrConflict
		}
	}
	club.ID = uuid.NewString()
	club.CreatedAt = s.db.tick()
	s.db.clubs[club.ID] = club

	membership := &entity.Membership{
		ID:        uuid.NewString(),
		ProfileID: ownerProfileID,
		ClubID:    club.ID,
		CreatedAt: s.db.tick(),
	}
	s.db.memberships[membership.ID] = membership
	return club, nil
}

func (s *fakeClubStorage) Get(_ context.Context, id string) (*entity.Club, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	club, ok := s.db.clubs[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	return club, nil
}

func (s *fakeClubStorage) GetAll(_ context.Context) ([]entity.Club, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	clubs := make([]entity.Club, 0, len(s.db.clubs))
	for _, c := range s.db.clubs {
		clubs = append(clubs, *c)
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].CreatedAt.After(clubs[j].CreatedAt) })
	return clubs, nil
}

func (s *fakeClubStorage) Update(_ context.Context, club *entity.Club) (*entity.Club, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, c := range s.db.clubs {
		if c.ID != club.ID && c.OwnerID == club.OwnerID && c.Title == club.Title {
			return nil, errorz.ErrConflict
		}
	}
	s.db.clubs[club.ID] = club
	return club, nil
}

func (s *fakeClubStorage) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for mid, ms := range s.db.memberships {
		if ms.ClubID == id {
			delete(s.db.memberships, mid)
		}
	}
	for msgID, msg := range s.db.messages {
		if msg.TargetType == entity.TargetClub && msg.TargetID == id {
			delete(s.db.messages, msgID)
		}
	}
	delete(s.db.clubs, id)
	return nil
}

func (s *fakeClubStorage) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.db.clubs)), nil
}

type fakeMembershipStorage struct{ db *memDB }

func (s *fakeMembershipStorage) Create(_ context.Context, membership *entity.Membership) (*entity.Membership, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.clubs[membership.ClubID]; !ok {
		return nil, errorz.ErrNotFound
	}
	if _, ok := s.db.profiles[membership.ProfileID]; !ok {
		return nil, errorz.ErrNotFound
	}
	for _, ms := range s.db.memberships {
		if ms.ClubID == membership.ClubID && ms.ProfileID == membership.ProfileID {
			return nil, errorz.ErrConflict
		}
	}
	membership.ID = uuid.NewString()
	membership.CreatedAt = s.db.tick()
	s.db.memberships[membership.ID] = membership
	return membership, nil
}

func (s *fakeMembershipStorage) Get(_ context.Context, clubID, profileID string) (*entity.Membership, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, ms := range s.db.memberships {
		if ms.ClubID == clubID && ms.ProfileID == profileID {
			return ms, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (s *fakeMembershipStorage) Update(_ context.Context, membership *entity.Membership) (*entity.Membership, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, ms := range s.db.memberships {
		if ms.ID != membership.ID && ms.ClubID == membership.ClubID && ms.ProfileID == membership.ProfileID {
			return nil, errorz.ErrConflict
		}
	}
	s.db.memberships[membership.ID] = membership
	return membership, nil
}

func (s *fakeMembershipStorage) Delete(_ context.Context, clubID, profileID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, ms := range s.db.memberships {
		if ms.ClubID == clubID && ms.ProfileID == profileID {
			delete(s.db.memberships, id)
		}
	}
	return nil
}

func (s *fakeMembershipStorage) GetByClubID(_ context.Context, clubID string) ([]entity.Membership, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var memberships []entity.Membership
	for _, ms := range s.db.memberships {
		if ms.ClubID == clubID {
			memberships = append(memberships, *ms)
		}
	}
	sort.Slice(memberships, func(i, j int) bool { return memberships[i].CreatedAt.After(memberships[j].CreatedAt) })
	return memberships, nil
}

func (s *fakeMembershipStorage) GetByProfileID(_ context.Context, profileID string) ([]entity.Membership, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var memberships []entity.Membership
	for _, ms := range s.db.memberships {
		if ms.ProfileID == profileID {
			memberships = append(memberships, *ms)
		}
	}
	sort.Slice(memberships, func(i, j int) bool { return memberships[i].CreatedAt.After(memberships[j].CreatedAt) })
	return memberships, nil
}

type fakeMessageStorage struct{ db *memDB }

func (s *fakeMessageStorage) Create(_ context.Context, message *entity.Message) (*entity.Message, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	message.ID = uuid.NewString()
	message.CreatedAt = s.db.tick()
	s.db.messages[message.ID] = message
	return message, nil
}

func (s *fakeMessageStorage) Get(_ context.Context, id string) (*entity.Message, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	message, ok := s.db.messages[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	return message, nil
}

func (s *fakeMessageStorage) Update(_ context.Context, message *entity.Message) (*entity.Message, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.messages[message.ID] = message
	return message, nil
}

func (s *fakeMessageStorage) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.messages, id)
	return nil
}

func (s *fakeMessageStorage) GetByTarget(_ context.Context, targetType entity.TargetType, targetID string) ([]entity.Message, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var messages []entity.Message
	for _, msg := range s.db.messages {
		if msg.TargetType == targetType && msg.TargetID == targetID {
			messages = append(messages, *msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.After(messages[j].CreatedAt) })
	return messages, nil
}

type fakeCodeStorage struct{ db *memDB }

func (s *fakeCodeStorage) Set(_ context.Context, code, userID string, _ time.Duration) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.codes[code] = userID
	return nil
}

func (s *fakeCodeStorage) Get(_ context.Context, code string) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	userID, ok := s.db.codes[code]
	if !ok {
		return "", errorz.ErrNotFound
	}
	return userID, nil
}

func (s *fakeCodeStorage) Clear(_ context.Context, code string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.codes, code)
	return nil
}

type fakePresenceStorage struct{ db *memDB }

func (s *fakePresenceStorage) SetOnline(_ context.Context, profileID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.online[profileID] = true
	return nil
}

func (s *fakePresenceStorage) SetOffline(_ context.Context, profileID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.online, profileID)
	return nil
}

func (s *fakePresenceStorage) IsOnline(_ context.Context, profileID string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.online[profileID], nil
}

type fakeSMTP struct {
	mu   sync.Mutex
	sent map[string]string // email -> code
}

func newFakeSMTP() *fakeSMTP {
	return &fakeSMTP{sent: make(map[string]string)}
}

func (f *fakeSMTP) SendConfirmationEmail(to string, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[to] = code
}

func (f *fakeSMTP) codeFor(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[email]
}

const testAvatarURL = "https://cdn.example.com/avatars/placeholder.png"

// testEnv wires every service over one shared in-memory store.
type testEnv struct {
	db          *memDB
	smtp        *fakeSMTP
	users       *UserService
	profiles    *ProfileService
	clubs       *ClubService
	memberships *MembershipService
	messages    *MessageService
}

func newTestEnv() *testEnv {
	db := newMemDB()
	userStorage := &fakeUserStorage{db: db}
	profileStorage := &fakeProfileStorage{db: db}
	clubStorage := &fakeClubStorage{db: db}
	membershipStorage := &fakeMembershipStorage{db: db}
	messageStorage := &fakeMessageStorage{db: db}
	smtp := newFakeSMTP()

	return &testEnv{
		db:          db,
		smtp:        smtp,
		users:       NewUserService(userStorage, profileStorage, &fakeCodeStorage{db: db}, smtp, ProfileDefaults{AvatarURL: testAvatarURL}),
		profiles:    NewProfileService(profileStorage, messageStorage, &fakePresenceStorage{db: db}),
		clubs:       NewClubService(clubStorage, membershipStorage, profileStorage, messageStorage),
		memberships: NewMembershipService(membershipStorage, clubStorage, profileStorage),
		messages:    NewMessageService(messageStorage, clubStorage, profileStorage, membershipStorage),
	}
}

// register creates a test user with a valid password.
func (e *testEnv) register(t *testing.T, username string) *entity.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), username, username+"@example.com", "Password1")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

// profileOf returns the profile created alongside the given user.
func (e *testEnv) profileOf(t *testing.T, userID string) *entity.Profile {
	t.Helper()
	profile, err := e.profiles.GetByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("profile of %s: %v", userID, err)
	}
	return &profile.Profile
}
