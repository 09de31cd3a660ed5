package db

import (
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/model"
)

func CreatePlaylist(tenantID int, name string, description *string) (model.Playlist, error) {
	var p model.Playlist
	const q = `
    INSERT INTO playlists (tenant_id, name, description, created_at, updated_at)
    VALUES ($1, $2, $3, now(), now())
    RETURNING id, tenant_id, name, description, created_at, updated_at;
    `
	if err := DB.Get(&p, q, tenantID, name, description); err != nil {
		log.Error().Err(err).Msg("CreatePlaylist failed")
		return model.Playlist{}, err
	}
	return p, nil
}

func GetPlaylistByID(id int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	SELECT id, tenant_id, name, description, created_at, updated_at
	FROM playlists
	WHERE id = $1;`
	if err := DB.Get(&p, q, id); err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("GetPlaylistByID failed")
		return model.Playlist{}, err
	}

	items, err := ListPlaylistItems(id)
	if err != nil {
		return p, err
	}
	p.Items = items
	return p, nil
}

func ListPlaylists(tenantID int) ([]model.Playlist, error) {
	var out []model.Playlist
	const q = `
	SELECT id, tenant_id, name, description, created_at, updated_at
	FROM playlists WHERE tenant_id = $1 ORDER BY id;`
	if err := DB.Select(&out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("ListPlaylists failed")
		return nil, err
	}
	return out, nil
}

func UpdatePlaylist(id int, name, description *string) error {
	_, err := DB.Exec(`
		UPDATE playlists
		SET
		name        = COALESCE($2, name),
		description = COALESCE($3, description),
		updated_at  = now()
		WHERE id = $1;`,
		id, name, description,
	)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("UpdatePlaylist failed")
	}
	return err
}

func DeletePlaylist(id int) error {
	_, err := DB.Exec(`DELETE FROM playlists WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("DeletePlaylist failed")
	}
	return err
}

func ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	var out []model.PlaylistItem
	const q = `
	SELECT id, playlist_id, content_id, position, duration, created_at
	FROM playlist_items
	WHERE playlist_id = $1
	ORDER BY position, id;`
	if err := DB.Select(&out, q, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("ListPlaylistItems failed")
		return nil, err
	}
	return out, nil
}

func AddItemToPlaylist(playlistID, contentID, position, duration int) (model.PlaylistItem, error) {
	var it model.PlaylistItem
	const q = `
	INSERT INTO playlist_items
	(playlist_id, content_id, position, duration, created_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, playlist_id, content_id, position, duration, created_at;`
	if err := DB.Get(&it, q, playlistID, contentID, position, duration); err != nil {
		log.Error().Err(err).Msg("AddItemToPlaylist failed")
		return model.PlaylistItem{}, err
	}
	return it, nil
}

func RemovePlaylistItem(itemID int) error {
	_, err := DB.Exec(`DELETE FROM playlist_items WHERE id = $1;`, itemID)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("RemovePlaylistItem failed")
	}
	return err
}
