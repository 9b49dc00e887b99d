// Package featureflags evaluates rollout flags configured as key=value pairs.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Flags read by the application.
const (
	EmployerSignup  = "employer_signup"
	EmployeeSignup  = "employee_signup"
	ApplicantCounts = "applicant_counts"
)

// defaults apply when a flag is absent from the configuration.
var defaults = map[string]bool{
	EmployerSignup:  true,
	EmployeeSignup:  true,
	ApplicantCounts: false,
}

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "employer_signup=off,applicant_counts=25%"
type Manager struct {
	flags map[string]string
}

// NewManager creates a feature-flag manager from a comma-separated config string.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = normalize(key)
		value = normalize(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled returns whether a flag is enabled for an account (0 for anonymous callers).
// Supported values:
//   - on/true/1
//   - off/false/0
//   - N% (deterministic per-account rollout, e.g. 25%)
//
// Unconfigured flags use their built-in default.
func (m *Manager) Enabled(name string, accountID uint) bool {
	name = normalize(name)
	if m == nil {
		return defaults[name]
	}

	value, ok := m.flags[name]
	if !ok {
		return defaults[name]
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	if pctRaw, isPct := strings.CutSuffix(value, "%"); isPct {
		pct, err := strconv.Atoi(pctRaw)
		if err != nil || pct <= 0 {
			return false
		}
		if pct >= 100 {
			return true
		}
		if accountID == 0 {
			return false
		}
		return rolloutBucket(name, accountID) < pct
	}

	return false
}

// Snapshot returns the evaluated status of every known and configured flag for one account.
func (m *Manager) Snapshot(accountID uint) map[string]bool {
	out := make(map[string]bool, len(defaults))
	for name := range defaults {
		out[name] = m.Enabled(name, accountID)
	}
	if m != nil {
		for name := range m.flags {
			out[name] = m.Enabled(name, accountID)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, accountID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), accountID)))
	return int(h.Sum32() % 100)
}
