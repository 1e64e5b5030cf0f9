// Package keys provisions the RSA key pairs mounted into the
// content-distributor container.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
)

// Bits is the modulus length of generated keys.
const Bits = 4096

// PublicSuffix is appended to the private key file name for the public half.
const PublicSuffix = ".pub"

// DefaultNames are the key pairs the container expects.
var DefaultNames = []string{"id_rsa", "id_srv_rsa"}

// Pair is a generated key pair in its on-disk encodings.
type Pair struct {
	// Private is the PKCS#1 PEM block.
	Private []byte
	// Public is the OpenSSH authorized_keys line.
	Public []byte
}

// Generate creates a new key pair of the given size.
func Generate(random io.Reader, bits int) (Pair, error) {
	key, err := rsa.GenerateKey(random, bits)
	if err != nil {
		return Pair{}, fmt.Errorf("generate rsa key: %w", err)
	}
	pub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		return Pair{}, fmt.Errorf("encode public key: %w", err)
	}
	private := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return Pair{Private: private, Public: ssh.MarshalAuthorizedKey(pub)}, nil
}

// Provisioner writes missing key pairs into Dir.
type Provisioner struct {
	Dir  string
	Bits int
	// Rand defaults to crypto/rand.
	Rand io.Reader
	// Progress, when set, is told about every key as it is handled.
	Progress func(status string)
}

// Exists reports whether both halves of the named pair are present.
func (p Provisioner) Exists(name string) bool {
	return fileExists(filepath.Join(p.Dir, name)) && fileExists(filepath.Join(p.Dir, name+PublicSuffix))
}

// Ensure generates every named pair that is not complete on disk and returns
// the names it generated.
func (p Provisioner) Ensure(names ...string) ([]string, error) {
	random := p.Rand
	if random == nil {
		random = rand.Reader
	}
	bits := p.Bits
	if bits == 0 {
		bits = Bits
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}

	var generated []string
	for _, name := range names {
		if p.Exists(name) {
			p.report(fmt.Sprintf("Key %s already exist in selected directory. Skipping.", name))
			continue
		}
		pair, err := Generate(random, bits)
		if err != nil {
			return generated, err
		}
		if err := os.WriteFile(filepath.Join(p.Dir, name+PublicSuffix), pair.Public, 0o644); err != nil {
			return generated, fmt.Errorf("write public key %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(p.Dir, name), pair.Private, 0o600); err != nil {
			return generated, fmt.Errorf("write private key %s: %w", name, err)
		}
		generated = append(generated, name)
		p.report(fmt.Sprintf("Successfully generated and saved %s.", name))
	}
	return generated, nil
}

func (p Provisioner) report(status string) {
	if p.Progress != nil {
		p.Progress(status)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
