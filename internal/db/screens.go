package db

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/model"
)

const screenColumns = `id, tenant_id, device_id, name, location, paired, created_at, updated_at`

func CreateScreen(tenantID int, name string, location *string) (model.Screen, error) {
	var s model.Screen
	q := `
	INSERT INTO screens (tenant_id, name, location, paired, created_at, updated_at)
	VALUES ($1, $2, $3, false, now(), now())
	RETURNING ` + screenColumns + `;`
	if err := DB.Get(&s, q, tenantID, name, location); err != nil {
		log.Error().Err(err).Msg("CreateScreen failed")
		return model.Screen{}, err
	}
	return s, nil
}

func GetScreenByID(id int) (model.Screen, error) {
	var s model.Screen
	q := `SELECT ` + screenColumns + ` FROM screens WHERE id = $1;`
	if err := DB.Get(&s, q, id); err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("GetScreenByID failed")
		return model.Screen{}, err
	}
	return s, nil
}

// fetches the screen a playback device paired as. Returns sql.ErrNoRows for
// unknown devices so callers answer 401 rather than 500.
func GetScreenByDeviceID(deviceID string) (model.Screen, error) {
	var s model.Screen
	q := `SELECT ` + screenColumns + ` FROM screens WHERE device_id = $1;`
	err := DB.Get(&s, q, deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Screen{}, sql.ErrNoRows
		}
		log.Error().Err(err).Str("device_id", deviceID).Msg("GetScreenByDeviceID failed")
		return model.Screen{}, err
	}
	return s, nil
}

func ListScreens(tenantID int) ([]model.Screen, error) {
	var out []model.Screen
	q := `SELECT ` + screenColumns + ` FROM screens WHERE tenant_id = $1 ORDER BY id;`
	if err := DB.Select(&out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("ListScreens failed")
		return nil, err
	}
	return out, nil
}

func UpdateScreen(id int, name, location *string) error {
	_, err := DB.Exec(`
		UPDATE screens
		SET
		name     = COALESCE($2, name),
		location = COALESCE($3, location),
		updated_at = now()
		WHERE id = $1;`,
		id, name, location,
	)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("UpdateScreen failed")
	}
	return err
}

// PairScreen binds a device id to a screen record.
func PairScreen(screenID int, deviceID string) error {
	_, err := DB.Exec(`
		UPDATE screens
		SET device_id = $2, paired = true, updated_at = now()
		WHERE id = $1;`,
		screenID, deviceID,
	)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("PairScreen failed")
	}
	return err
}

func DeleteScreen(id int) error {
	_, err := DB.Exec(`DELETE FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("DeleteScreen failed")
	}
	return err
}
