package test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pharos-media/pharos/internal/model"
	"github.com/pharos-media/pharos/internal/schedule"
)

// fakeStore is an in-memory db.Store for exercising handlers without
// PostgreSQL. Only the schedule and playlist paths carry real behavior; the
// rest satisfy the interface.
type fakeStore struct {
	schedules []model.Schedule
	playlists map[int]model.Playlist
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{playlists: map[int]model.Playlist{}, nextID: 1}
}

func (f *fakeStore) FindActiveSchedules(tenantID int, excludeID *int) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range f.schedules {
		if s.TenantID != tenantID || !s.IsActive {
			continue
		}
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) ListSchedules(tenantID int) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range f.schedules {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetSchedule(scheduleID int) (model.Schedule, error) {
	for _, s := range f.schedules {
		if s.ID == scheduleID {
			return s, nil
		}
	}
	return model.Schedule{}, fmt.Errorf("schedule %d not found", scheduleID)
}

func (f *fakeStore) CreateSchedule(s model.Schedule) (model.Schedule, error) {
	// same contract as the real store: the conflict decision is repeated
	// against the rows present at write time
	existing, _ := f.FindActiveSchedules(s.TenantID, &s.ID)
	if err := schedule.CheckCandidate(s, existing); err != nil {
		return model.Schedule{}, err
	}
	s.ID = f.nextID
	f.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.schedules = append(f.schedules, s)
	return s, nil
}

func (f *fakeStore) UpdateSchedule(s model.Schedule) (model.Schedule, error) {
	existing, _ := f.FindActiveSchedules(s.TenantID, &s.ID)
	if err := schedule.CheckCandidate(s, existing); err != nil {
		return model.Schedule{}, err
	}
	for i := range f.schedules {
		if f.schedules[i].ID == s.ID {
			s.CreatedAt = f.schedules[i].CreatedAt
			s.UpdatedAt = time.Now()
			f.schedules[i] = s
			return s, nil
		}
	}
	return model.Schedule{}, fmt.Errorf("schedule %d not found", s.ID)
}

func (f *fakeStore) DeactivateSchedule(scheduleID int) error {
	for i := range f.schedules {
		if f.schedules[i].ID == scheduleID {
			f.schedules[i].IsActive = false
			return nil
		}
	}
	return fmt.Errorf("schedule %d not found", scheduleID)
}

// the write-time contract the endpoints rely on: a conflicting row present
// at write time comes back as a *schedule.ValidationError, not a plain error
func TestStoreCreateSchedule_WriteTimeRecheck(t *testing.T) {
	f := newFakeStore()
	nine := "09:00"
	five := "17:00"
	four := "16:00"
	six := "18:00"

	first := model.Schedule{TenantID: 1, PlaylistID: 4, Name: "first", StartTime: &nine, EndTime: &five, Priority: 3, IsActive: true}
	if _, err := f.CreateSchedule(first); err != nil {
		t.Fatalf("seeding first schedule: %v", err)
	}

	second := model.Schedule{TenantID: 1, PlaylistID: 4, Name: "second", StartTime: &four, EndTime: &six, Priority: 3, IsActive: true}
	_, err := f.CreateSchedule(second)
	var verr *schedule.ValidationError
	if !errors.As(err, &verr) || !verr.HasConflict() {
		t.Fatalf("overlapping write must fail with a conflict, got %v", err)
	}
}

func (f *fakeStore) GetPlaylistByID(id int) (model.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return model.Playlist{}, fmt.Errorf("playlist %d not found", id)
	}
	return p, nil
}

func (f *fakeStore) CreateTenant(name string) (int, error) { return 0, nil }
func (f *fakeStore) CreateUser(tenantID int, email, hashedPassword string, name *string) (int, error) {
	return 0, nil
}
func (f *fakeStore) GetUserByEmail(email string) (*model.User, error) { return nil, nil }
func (f *fakeStore) GetUserByID(id int) (*model.User, error) { return nil, nil }
func (f *fakeStore) UpdateUserProfile(id int, email string, name *string) error { return nil }

func (f *fakeStore) CreateScreen(tenantID int, name string, location *string) (model.Screen, error) {
	return model.Screen{}, nil
}
func (f *fakeStore) GetScreenByID(id int) (model.Screen, error) { return model.Screen{}, nil }
func (f *fakeStore) GetScreenByDeviceID(deviceID string) (model.Screen, error) {
	return model.Screen{}, nil
}
func (f *fakeStore) ListScreens(tenantID int) ([]model.Screen, error) { return nil, nil }
func (f *fakeStore) UpdateScreen(id int, name, location *string) error { return nil }
func (f *fakeStore) PairScreen(screenID int, deviceID string) error { return nil }
func (f *fakeStore) DeleteScreen(id int) error { return nil }

func (f *fakeStore) CreatePlaylist(tenantID int, name string, description *string) (model.Playlist, error) {
	return model.Playlist{}, nil
}
func (f *fakeStore) ListPlaylists(tenantID int) ([]model.Playlist, error) { return nil, nil }
func (f *fakeStore) UpdatePlaylist(id int, name, description *string) error { return nil }
func (f *fakeStore) DeletePlaylist(id int) error { return nil }
func (f *fakeStore) AddItemToPlaylist(playlistID, contentID, position, duration int) (model.PlaylistItem, error) {
	return model.PlaylistItem{}, nil
}
func (f *fakeStore) RemovePlaylistItem(itemID int) error { return nil }

func (f *fakeStore) CreateContent(tenantID int, name, contentType, url string) (model.Content, error) {
	return model.Content{}, nil
}
func (f *fakeStore) GetContentByID(id int) (model.Content, error) { return model.Content{}, nil }
func (f *fakeStore) ListContent(tenantID int) ([]model.Content, error) { return nil, nil }
func (f *fakeStore) DeleteContent(id int) error { return nil }
