package app

import (
	"fmt"
	"strconv"
	"strings"

	"tourtrack/internal/domain"
)

// ParseSeedUsers reads accounts for the in-memory store from
// "id:name:user_type" entries separated by commas.
func ParseSeedUsers(raw string) ([]*domain.User, error) {
	var users []*domain.User
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("seed user %q: want id:name:user_type", entry)
		}

		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("seed user %q: invalid id", entry)
		}

		users = append(users, &domain.User{
			ID:   id,
			Name: parts[1],
			Role: domain.ParseRole(parts[2]),
		})
	}
	return users, nil
}
