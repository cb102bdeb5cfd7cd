package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var accountIDPattern = regexp.MustCompile(`^[0-9]{12}$`)

// DefaultAccountsPath is where the alias→account-id table lives unless the
// config file points somewhere else.
func DefaultAccountsPath() string {
	return filepath.Join(os.Getenv("HOME"), ".aws", "accounts")
}

// LoadAccounts reads the alias table, a flat JSON object of
// alias→12-digit-id. A missing file is fine: the resolver then treats
// whatever the user typed as a literal account id.
func LoadAccounts(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	table := map[string]string{}
	if err := json.Unmarshal(b, &table); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file %s: %w", path, err)
	}
	return table, nil
}

// ResolveAccount maps an alias through the lookup table, falling through to
// the input itself, and validates the final shape. No partial credential is
// ever produced from a malformed id.
func ResolveAccount(aliasOrID string, table map[string]string) (string, error) {
	id := aliasOrID
	if mapped, ok := table[aliasOrID]; ok {
		id = mapped
	}
	if !accountIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountID, id)
	}
	return id, nil
}
