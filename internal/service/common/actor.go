//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/arm-toggle/internal/version"
)

// productName prefixes the User-Agent of outgoing notifications.
const productName = "arm-toggle"

// DetectActor returns "username@hostname" for the current process.
func DetectActor() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}

	return currentUser.Username + "@" + hostname, nil
}

// UserAgent builds the User-Agent sent with notifications, e.g.
// "arm-toggle/1.0.0 (operator@console)". The actor part is omitted when it
// cannot be detected.
func UserAgent() string {
	agent := productName + "/" + version.Short()

	actor, err := DetectActor()
	if err != nil {
		return agent
	}

	return agent + " (" + actor + ")"
}
