package network

import (
	"strings"

	apperrors "friend-network/backend/pkg/errors"
)

const knowsSeparator = " knows "

// ParseRelationships turns "A knows B" entries into relationships.
func ParseRelationships(entries []string) ([]Relationship, error) {
	relationships := make([]Relationship, 0, len(entries))
	for _, entry := range entries {
		rel, err := ParseRelationship(entry)
		if err != nil {
			return nil, err
		}
		relationships = append(relationships, rel)
	}
	return relationships, nil
}

// ParseRelationship parses a single "A knows B" entry
func ParseRelationship(entry string) (Relationship, error) {
	parts := strings.Split(entry, knowsSeparator)
	if len(parts) != 2 {
		return Relationship{}, apperrors.NewInvalidRelationship(entry, `expected "<name> knows <name>"`)
	}
	rel := Relationship{
		Person: strings.TrimSpace(parts[0]),
		Friend: strings.TrimSpace(parts[1]),
	}
	if rel.Person == "" || rel.Friend == "" {
		return Relationship{}, apperrors.NewInvalidRelationship(entry, "both names are required")
	}
	if rel.Person == rel.Friend {
		return Relationship{}, apperrors.NewInvalidRelationship(entry, "a person cannot know themselves")
	}
	return rel, nil
}
