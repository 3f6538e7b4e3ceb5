package model

// Config 对应于 config.yaml 的顶级结构
type Config struct {
	Token    string   `mapstructure:"TOKEN"`
	AppID    string   `mapstructure:"APP_ID"`
	Commands Commands `mapstructure:"commands"`
	Jadwal   Jadwal   `mapstructure:"jadwal"`
}

// Commands 对应 "commands" 部分
type Commands struct {
	Auth Auth `mapstructure:"auth"`
}

// Auth 对应 "auth" 部分
type Auth struct {
	AdminID string `mapstructure:"AdminID"`
}

// Jadwal 对应 "jadwal" 部分
type Jadwal struct {
	CatalogDir             string `mapstructure:"catalog_dir"`
	TempDir                string `mapstructure:"temp_dir"`
	DatabasePath           string `mapstructure:"database_path"`
	DecisionTimeoutSeconds int    `mapstructure:"decision_timeout_seconds"`
	ReasonTimeoutSeconds   int    `mapstructure:"reason_timeout_seconds"`
}
