package db

import (
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/model"
)

func CreateContent(tenantID int, name, contentType, url string) (model.Content, error) {
	var c model.Content
	const q = `
	INSERT INTO content (tenant_id, name, type, url, created_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, tenant_id, name, type, url, created_at;`
	if err := DB.Get(&c, q, tenantID, name, contentType, url); err != nil {
		log.Error().Err(err).Msg("CreateContent failed")
		return model.Content{}, err
	}
	return c, nil
}

func GetContentByID(id int) (model.Content, error) {
	var c model.Content
	const q = `SELECT id, tenant_id, name, type, url, created_at FROM content WHERE id = $1;`
	if err := DB.Get(&c, q, id); err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("GetContentByID failed")
		return model.Content{}, err
	}
	return c, nil
}

func ListContent(tenantID int) ([]model.Content, error) {
	var out []model.Content
	const q = `SELECT id, tenant_id, name, type, url, created_at FROM content WHERE tenant_id = $1 ORDER BY id;`
	if err := DB.Select(&out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("ListContent failed")
		return nil, err
	}
	return out, nil
}

func DeleteContent(id int) error {
	_, err := DB.Exec(`DELETE FROM content WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("DeleteContent failed")
	}
	return err
}
