package instance

import "os"

// GetID returns the dyno or host identifier of this process, or "local".
func GetID() string {
	for _, key := range []string{"DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
