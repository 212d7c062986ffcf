package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with json tags and
// duration-string support for the optional configuration file.
type StructuredJSONConfig struct {
	Security struct {
		KeyProfile string `json:"key_profile"`
	} `json:"security,omitempty"`

	Vigenere struct {
		Interpreter  string `json:"interpreter"`
		ScriptPath   string `json:"script_path"`
		CommandLimit int    `json:"command_limit"`
		TempDir      string `json:"temp_dir"`
	} `json:"vigenere,omitempty"`

	Remote struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Security: Security{
			KeyProfile: jsonCfg.Security.KeyProfile,
		},
		Vigenere: Vigenere{
			Interpreter:  jsonCfg.Vigenere.Interpreter,
			ScriptPath:   jsonCfg.Vigenere.ScriptPath,
			CommandLimit: jsonCfg.Vigenere.CommandLimit,
			TempDir:      jsonCfg.Vigenere.TempDir,
		},
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
