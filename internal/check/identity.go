package check

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Identity is the structural key of a check: its type tag plus the canonical
// JSON form of its constructor arguments. Two differently constructed checks
// with equal identity are indistinguishable; identity is the join key for
// memoization and for matching checks across snapshots.
type Identity struct {
	// Type is the stable type tag, e.g. "column_quantile".
	Type string
	// Args is the canonical JSON document of the constructor arguments.
	// "{}" for checks without arguments.
	Args string
}

// NewIdentity canonicalizes args into an Identity. A nil args value
// canonicalizes to "{}".
func NewIdentity(typeTag string, args any) (Identity, error) {
	if args == nil {
		return Identity{Type: typeTag, Args: "{}"}, nil
	}
	doc, err := json.Marshal(args)
	if err != nil {
		return Identity{}, fmt.Errorf("canonicalize args for %s: %w", typeTag, err)
	}
	canon := string(doc)
	if canon == "null" {
		canon = "{}"
	}
	return Identity{Type: typeTag, Args: canon}, nil
}

// IdentityOf derives the identity of a check from its type tag and args.
func IdentityOf(c Check) (Identity, error) {
	return NewIdentity(c.Type(), c.Args())
}

// Fingerprint returns a SHA3-256 hex digest of the identity, suitable as a
// map key and as the cross-snapshot join key.
func (id Identity) Fingerprint() string {
	data := make([]byte, 0, len(id.Type)+len(id.Args)+1)
	data = append(data, id.Type...)
	data = append(data, 0)
	data = append(data, id.Args...)
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Equal reports whether two identities denote the same check.
func (id Identity) Equal(other Identity) bool {
	return id.Type == other.Type && id.Args == other.Args
}

// Less orders identities lexicographically by (Type, Args).
func (id Identity) Less(other Identity) bool {
	if id.Type != other.Type {
		return id.Type < other.Type
	}
	return id.Args < other.Args
}

// String renders the identity for error messages and logs. Argument-free
// checks render as the bare type tag.
func (id Identity) String() string {
	if id.Args == "" || id.Args == "{}" {
		return id.Type
	}
	return id.Type + id.Args
}

// ArgsMap decodes the canonical args document into a generic map for
// template matching. Argument-free identities decode to an empty map.
func (id Identity) ArgsMap() (map[string]any, error) {
	if id.Args == "" || id.Args == "{}" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(id.Args), &m); err != nil {
		return nil, fmt.Errorf("decode args of %s: %w", id.Type, err)
	}
	return m, nil
}
