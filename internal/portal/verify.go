package portal

import (
	"crypto/sha1" //nolint:gosec // the portal signs archives with sha1; this is a format constraint, not a new design choice
	"encoding/hex"

	"github.com/pkg/errors"
)

// verifySHA1 checks data's sha1 digest against the hex-encoded digest the
// manifest recorded for it.
func verifySHA1(data []byte, want string) error {
	sum := sha1.Sum(data) //nolint:gosec
	got := hex.EncodeToString(sum[:])
	if got != want {
		return errors.Errorf("sha1 mismatch: manifest says %s, archive is %s", want, got)
	}
	return nil
}
