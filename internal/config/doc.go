// Package config provides configuration management for the demo service.
//
// Configuration is loaded from environment variables using the env package.
// The defaults reproduce the fixed contract of the service: port 5000 on all
// interfaces, info logging and spans exported to standard output.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
