package resource

import (
	"bytes"
	"fmt"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// VerifyDetachedSignature checks content against an armored detached
// signature, trusting only the public keys in keyringArmored. Grounded on
// etnz-apt-repo-builder's openpgp.ReadArmoredKeyRing usage for repository
// signing, applied here to resource provenance instead.
func VerifyDetachedSignature(content, armoredSig, keyringArmored []byte) error {
	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(keyringArmored))
	if err != nil {
		return fmt.Errorf("reading trusted keyring: %w", err)
	}
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(content), bytes.NewReader(armoredSig), nil)
	if err != nil {
		return fmt.Errorf("pgp signature verification failed: %w", err)
	}
	return nil
}
