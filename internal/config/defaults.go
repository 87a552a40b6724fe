package config

import "github.com/homematch/homematch/internal/matching"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/homematch/data/db/listings.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/homematch/data/indices/bleve"
	}
	zero := matching.Weights{}
	if cfg.Matching.Weights == zero {
		cfg.Matching.Weights = matching.DefaultWeights()
	}
	if cfg.Matching.DefaultTopK == 0 {
		cfg.Matching.DefaultTopK = 5
	}
	if cfg.Matching.MaxTopK == 0 {
		cfg.Matching.MaxTopK = 100
	}
	if cfg.Matching.AreaAdjacency == nil {
		cfg.Matching.AreaAdjacency = matching.DefaultAreaAdjacency()
	}
	if cfg.Matching.SchoolQuality == nil {
		cfg.Matching.SchoolQuality = matching.DefaultSchoolQualityTable()
	}
}
