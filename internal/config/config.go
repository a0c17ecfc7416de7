package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	Server Server
	ESPN   ESPN
}

type Server struct {
	Addr    string `envconfig:"ADDR" default:":8080"`
	MCPPath string `envconfig:"MCP_PATH" default:"/mcp"`
}

type ESPN struct {
	Year        int    `envconfig:"YEAR"`
	SecretsFile string `envconfig:"SECRETS_FILE" default:"secrets.json"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
