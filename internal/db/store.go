// exposes a Store interface that is passed to API modules.
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/pharos-media/pharos/internal/model"
)

type Store interface {
	// tenant / user functions
	CreateTenant(name string) (int, error)
	CreateUser(tenantID int, email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// screen functions
	CreateScreen(tenantID int, name string, location *string) (model.Screen, error)
	GetScreenByID(id int) (model.Screen, error)
	GetScreenByDeviceID(deviceID string) (model.Screen, error)
	ListScreens(tenantID int) ([]model.Screen, error)
	UpdateScreen(id int, name, location *string) error
	PairScreen(screenID int, deviceID string) error
	DeleteScreen(id int) error

	// playlist functions
	CreatePlaylist(tenantID int, name string, description *string) (model.Playlist, error)
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylists(tenantID int) ([]model.Playlist, error)
	UpdatePlaylist(id int, name, description *string) error
	DeletePlaylist(id int) error
	AddItemToPlaylist(playlistID, contentID, position, duration int) (model.PlaylistItem, error)
	RemovePlaylistItem(itemID int) error

	// content functions
	CreateContent(tenantID int, name, contentType, url string) (model.Content, error)
	GetContentByID(id int) (model.Content, error)
	ListContent(tenantID int) ([]model.Content, error)
	DeleteContent(id int) error

	// schedule functions; FindActiveSchedules doubles as the conflict
	// detector's schedule.Repository
	FindActiveSchedules(tenantID int, excludeID *int) ([]model.Schedule, error)
	ListSchedules(tenantID int) ([]model.Schedule, error)
	GetSchedule(scheduleID int) (model.Schedule, error)
	CreateSchedule(s model.Schedule) (model.Schedule, error)
	UpdateSchedule(s model.Schedule) (model.Schedule, error)
	DeactivateSchedule(scheduleID int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	return &pgStore{db: database}
}

func (s *pgStore) CreateTenant(name string) (int, error) { return CreateTenant(name) }
func (s *pgStore) CreateUser(tenantID int, email, hashedPassword string, name *string) (int, error) {
	return CreateUser(tenantID, email, hashedPassword, name)
}
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (s *pgStore) GetUserByID(id int) (*model.User, error)          { return GetUserByID(id) }
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) CreateScreen(tenantID int, name string, location *string) (model.Screen, error) {
	return CreateScreen(tenantID, name, location)
}
func (s *pgStore) GetScreenByID(id int) (model.Screen, error) { return GetScreenByID(id) }
func (s *pgStore) GetScreenByDeviceID(deviceID string) (model.Screen, error) {
	return GetScreenByDeviceID(deviceID)
}
func (s *pgStore) ListScreens(tenantID int) ([]model.Screen, error) { return ListScreens(tenantID) }
func (s *pgStore) UpdateScreen(id int, name, location *string) error {
	return UpdateScreen(id, name, location)
}
func (s *pgStore) PairScreen(screenID int, deviceID string) error {
	return PairScreen(screenID, deviceID)
}
func (s *pgStore) DeleteScreen(id int) error { return DeleteScreen(id) }

func (s *pgStore) CreatePlaylist(tenantID int, name string, description *string) (model.Playlist, error) {
	return CreatePlaylist(tenantID, name, description)
}
func (s *pgStore) GetPlaylistByID(id int) (model.Playlist, error) { return GetPlaylistByID(id) }
func (s *pgStore) ListPlaylists(tenantID int) ([]model.Playlist, error) {
	return ListPlaylists(tenantID)
}
func (s *pgStore) UpdatePlaylist(id int, name, description *string) error {
	return UpdatePlaylist(id, name, description)
}
func (s *pgStore) DeletePlaylist(id int) error { return DeletePlaylist(id) }
func (s *pgStore) AddItemToPlaylist(playlistID, contentID, position, duration int) (model.PlaylistItem, error) {
	return AddItemToPlaylist(playlistID, contentID, position, duration)
}
func (s *pgStore) RemovePlaylistItem(itemID int) error { return RemovePlaylistItem(itemID) }

func (s *pgStore) CreateContent(tenantID int, name, contentType, url string) (model.Content, error) {
	return CreateContent(tenantID, name, contentType, url)
}
func (s *pgStore) GetContentByID(id int) (model.Content, error)       { return GetContentByID(id) }
func (s *pgStore) ListContent(tenantID int) ([]model.Content, error)  { return ListContent(tenantID) }
func (s *pgStore) DeleteContent(id int) error                         { return DeleteContent(id) }

func (s *pgStore) FindActiveSchedules(tenantID int, excludeID *int) ([]model.Schedule, error) {
	return FindActiveSchedules(tenantID, excludeID)
}
func (s *pgStore) ListSchedules(tenantID int) ([]model.Schedule, error) {
	return ListSchedules(tenantID)
}
func (s *pgStore) GetSchedule(scheduleID int) (model.Schedule, error) { return GetSchedule(scheduleID) }
func (s *pgStore) CreateSchedule(sc model.Schedule) (model.Schedule, error) {
	return CreateSchedule(sc)
}
func (s *pgStore) UpdateSchedule(sc model.Schedule) (model.Schedule, error) {
	return UpdateSchedule(sc)
}
func (s *pgStore) DeactivateSchedule(scheduleID int) error { return DeactivateSchedule(scheduleID) }
