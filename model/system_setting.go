package model

const (
	// SettingTypeGeneral is the name of the general system setting.
	SettingTypeGeneral = "general"
	// SettingTypeSecurity is the name of the security system setting.
	SettingTypeSecurity = "security"
)

type SystemSetting struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type SystemSettingGeneral struct {
	// DisableSignup disables new account registration.
	DisableSignup bool `json:"disable_signup"`
}

type SystemSettingSecurity struct {
	// JWTSecret signs access tokens, generated on first run.
	JWTSecret string `json:"jwt_secret"`
}
