package network

// Person is a named node in the friend network. Friends holds names in the
// order the friendships were made.
type Person struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Friends []string `json:"friends"`
}

// HasFriend reports whether name is in p's friend list
func (p Person) HasFriend(name string) bool {
	return indexOf(p.Friends, name) >= 0
}

// Clone returns a copy of p that shares no memory with it
func (p Person) Clone() Person {
	friends := make([]string, len(p.Friends))
	copy(friends, p.Friends)
	return Person{ID: p.ID, Name: p.Name, Friends: friends}
}

// Relationship is one "A knows B" seed entry
type Relationship struct {
	Person string
	Friend string
}

// FriendsOfFriends maps a person's name to every name two hops away, one
// entry per path.
type FriendsOfFriends map[string][]string

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func without(names []string, name string) []string {
	i := indexOf(names, name)
	if i < 0 {
		return names
	}
	out := make([]string, 0, len(names)-1)
	out = append(out, names[:i]...)
	return append(out, names[i+1:]...)
}
