package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Probe /healthz, /readyz and /version of a running service [base-url]"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := apiBaseURL()
	if len(args) > 0 {
		base = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))
	client := &http.Client{Timeout: 5 * time.Second}

	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		status, err := probe(client, base+path, nil)
		if err != nil {
			PrintError("%s: %v", path, err)
			return err
		}
		if status != http.StatusOK {
			PrintError("%s returned %d", path, status)
			return fmt.Errorf("%s returned %d", path, status)
		}

		duration := time.Since(start)
		if duration > time.Second {
			PrintWarning("%s slow response (%v)", path, duration)
		} else {
			PrintSuccess("%s ok (%v)", path, duration)
		}
	}

	var version map[string]string
	if _, err := probe(client, base+"/version", &version); err != nil {
		PrintWarning("version unavailable: %v", err)
		return nil
	}
	PrintInfo("version=%s git_commit=%s", version["version"], version["git_commit"])
	return nil
}

func probe(client *http.Client, url string, out interface{}) (int, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}
