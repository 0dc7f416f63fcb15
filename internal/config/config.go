package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	WebDir                        string `mapstructure:"WEB_DIR"`
	AdminUser                     string `mapstructure:"ADMIN_USER"`
	AdminPass                     string `mapstructure:"ADMIN_PASS"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	ResendAPIKey                  string `mapstructure:"RESEND_API_KEY"`
	SignupFromEmail               string `mapstructure:"SIGNUP_FROM_EMAIL"`
	SignupBCCEmail                string `mapstructure:"SIGNUP_BCC_EMAIL"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "sola.db")
	viper.SetDefault("WEB_DIR", "web")
	viper.SetDefault("SIGNUP_FROM_EMAIL", "prijave@jadralna-sola.si")

	viper.BindEnv("ADMIN_USER")
	viper.BindEnv("ADMIN_PASS")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("RESEND_API_KEY")
	viper.BindEnv("SIGNUP_FROM_EMAIL")
	viper.BindEnv("SIGNUP_BCC_EMAIL")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
