package config

import (
	"jadwalbot/model"

	"github.com/spf13/viper"
)

var Cfg model.Config

func LoadConfig() (err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("jadwal.catalog_dir", "./data/jadwal")
	viper.SetDefault("jadwal.temp_dir", "./data/temp")
	viper.SetDefault("jadwal.database_path", "./data/jadwal.db")
	viper.SetDefault("jadwal.decision_timeout_seconds", 300)
	viper.SetDefault("jadwal.reason_timeout_seconds", 60)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&Cfg)
	return
}
