package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ServerJSONConfig is the layout of the JSON configuration file:
//
//	{
//	  "host": "0.0.0.0",
//	  "port": 1337,
//	  "url": "https://api.example.com",
//	  "app": {"keys": ["k1", "k2"]}
//	}
//
// "app.keys" may also be a single string in APP_KEYS list syntax.
type ServerJSONConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
	URL  string `json:"url,omitempty"`
	App  struct {
		Keys Keys `json:"keys,omitempty"`
	} `json:"app"`
}

func parseJSON(jsonFilePath string) (*ServerConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg ServerJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ServerConfig{
		Host:      jsonCfg.Host,
		Port:      jsonCfg.Port,
		PublicURL: jsonCfg.URL,
		App: App{
			Keys: jsonCfg.App.Keys,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}
