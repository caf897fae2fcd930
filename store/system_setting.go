package store

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/util"
)

func (s *Store) GetSystemSetting(name string) (*model.SystemSetting, error) {
	if cache, ok := s.systemSettingCache.Load(name); ok {
		return cache.(*model.SystemSetting), nil
	}

	setting := &model.SystemSetting{}
	stmt := `SELECT name, value, description FROM system_setting WHERE name = ?`
	if err := s.db.QueryRow(stmt, name).Scan(&setting.Name, &setting.Value, &setting.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to get system setting")
	}

	s.systemSettingCache.Store(name, setting)
	return setting, nil
}

func (s *Store) GetSystemGeneralSetting() (*model.SystemSettingGeneral, error) {
	systemSetting, err := s.GetSystemSetting(model.SettingTypeGeneral)
	if err != nil {
		return nil, err
	}
	generalSetting := &model.SystemSettingGeneral{}
	if err := json.Unmarshal([]byte(systemSetting.Value), generalSetting); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal system general setting")
	}
	return generalSetting, nil
}

// GetOrUpsertSystemSecuritySetting returns the security setting,
// generating and storing a fresh JWT secret on first run.
func (s *Store) GetOrUpsertSystemSecuritySetting() (*model.SystemSettingSecurity, error) {
	systemSetting, err := s.GetSystemSetting(model.SettingTypeSecurity)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		secret, err := util.RandomString(32)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate JWT secret")
		}
		securitySetting := &model.SystemSettingSecurity{JWTSecret: secret}
		value, err := json.Marshal(securitySetting)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal system security setting")
		}
		if _, err := s.UpsertSystemSetting(&model.SystemSetting{
			Name:        model.SettingTypeSecurity,
			Value:       string(value),
			Description: "security setting",
		}); err != nil {
			return nil, err
		}
		return securitySetting, nil
	}

	securitySetting := &model.SystemSettingSecurity{}
	if err := json.Unmarshal([]byte(systemSetting.Value), securitySetting); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal system security setting")
	}
	return securitySetting, nil
}

func (s *Store) UpsertSystemSetting(setting *model.SystemSetting) (*model.SystemSetting, error) {
	stmt := `
		INSERT INTO system_setting (name, value, description)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE
		SET
			value = EXCLUDED.value,
			description = EXCLUDED.description
		RETURNING name, value, description
	`
	newSetting := &model.SystemSetting{}
	if err := s.db.QueryRow(stmt, setting.Name, setting.Value, setting.Description).Scan(
		&newSetting.Name,
		&newSetting.Value,
		&newSetting.Description,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert system setting")
	}

	s.systemSettingCache.Store(newSetting.Name, newSetting)
	return newSetting, nil
}
