package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Catalog struct {
		Source string `mapstructure:"source"` // "file" or "postgres"
		File   string `mapstructure:"file"`
	} `mapstructure:"catalog"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Gemini struct {
		Model       string        `mapstructure:"model"`
		Temperature float32       `mapstructure:"temperature"`
		Timeout     time.Duration `mapstructure:"timeout"`
		CacheTTL    time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"gemini"`
	Planner Planner `mapstructure:"planner"`
}

// Planner holds the tunable heuristics of the itinerary pipeline. They live in
// config rather than code so scoring and categorization rules can be adjusted
// without touching pipeline logic.
type Planner struct {
	DefaultRadiusKm  float64  `mapstructure:"defaultRadiusKm"`
	DefaultStartTime string   `mapstructure:"defaultStartTime"`
	CandidateLimit   int      `mapstructure:"candidateLimit"`
	ClassifierKeys   []string `mapstructure:"classifierKeys"`
	MorningKeywords  []string `mapstructure:"morningKeywords"`
	EveningKeywords  []string `mapstructure:"eveningKeywords"`
	Durations        struct {
		FoodMinutes       int      `mapstructure:"foodMinutes"`
		AttractionMinutes int      `mapstructure:"attractionMinutes"`
		OutdoorMinutes    int      `mapstructure:"outdoorMinutes"`
		DefaultMinutes    int      `mapstructure:"defaultMinutes"`
		FoodKeywords      []string `mapstructure:"foodKeywords"`
		AttractionKeys    []string `mapstructure:"attractionKeywords"`
		OutdoorKeywords   []string `mapstructure:"outdoorKeywords"`
	} `mapstructure:"durations"`
	Travel struct {
		MinutesPerKm float64 `mapstructure:"minutesPerKm"`
		FloorMinutes int     `mapstructure:"floorMinutes"`
		TwoOptRounds int     `mapstructure:"twoOptRounds"`
	} `mapstructure:"travel"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
