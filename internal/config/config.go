package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

// AuthConfig 設定主持人 token 的簽章金鑰與有效時間（小時）
type AuthConfig struct {
	TokenSecret   string
	TokenTTLHours int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./internal/config")
	viper.AddConfigPath(".")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.name", "meeting_web")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("auth.tokensecret", "change_me_in_production")
	viper.SetDefault("auth.tokenttlhours", 240)

	// 允許用環境變數覆寫，例如 MEETING_DB_HOST
	viper.SetEnvPrefix("meeting")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 找不到設定檔時使用預設值，其他讀取錯誤仍視為失敗
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
