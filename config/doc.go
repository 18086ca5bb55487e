// Package config resolves the runtime configuration for the Spline MCP server.
//
// Sources, lowest priority first:
//   - built-in defaults (public Spline endpoint, port 3000, 30s timeout)
//   - a configuration file: the --config path, else ./.env
//   - process environment variables
//
// File Formats:
//
// Files ending in .toml are decoded as TOML:
//
//	api_key = "spl_..."
//	api_url = "https://api.spline.design"
//	timeout = "20s"
//
//	[ngrok]
//	enabled = true
//
// Any other file is read as a dotenv file using the usual variable names
// (SPLINE_API_KEY, SPLINE_API_URL, OPENAI_API_KEY, PORT, NGROK_AUTHTOKEN,
// NGROK_DOMAIN). Reading a dotenv file never mutates the process environment.
//
// Usage:
//
//	cfg, err := config.Load("config/.env")
//	if err != nil {
//		log.Fatal(err)
//	}
//	client := spline.NewClient(cfg.SplineConfig())
package config
