package awsauth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// ErrCredentialsUnavailable means no credential source yielded both an
// access key and a secret. Checked once at startup; the run never begins
// without credentials.
var ErrCredentialsUnavailable = errors.New("no credential source yielded an access key and secret")

// Credentials is the static key material used to derive signing keys. The
// session token is optional; when present it is signed and sent.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Complete reports whether both required parts are present.
func (c Credentials) Complete() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Resolve walks the credential sources in order: explicit values first,
// then the named profile of the shared credentials file. credentialsFile
// may be empty, in which case the conventional ~/.aws/credentials is used.
func Resolve(explicit Credentials, profile, credentialsFile string) (Credentials, error) {
	if explicit.Complete() {
		return explicit, nil
	}

	if profile == "" {
		profile = "default"
	}
	if credentialsFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Credentials{}, fmt.Errorf("%w: %v", ErrCredentialsUnavailable, err)
		}
		credentialsFile = filepath.Join(home, ".aws", "credentials")
	}

	creds, err := readSharedCredentials(credentialsFile, profile)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrCredentialsUnavailable, err)
	}
	if !creds.Complete() {
		return Credentials{}, fmt.Errorf("%w: profile %q in %s is incomplete",
			ErrCredentialsUnavailable, profile, credentialsFile)
	}
	return creds, nil
}

func readSharedCredentials(path, profile string) (Credentials, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return Credentials{}, err
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		AccessKeyID:     section.Key("aws_access_key_id").String(),
		SecretAccessKey: section.Key("aws_secret_access_key").String(),
		SessionToken:    section.Key("aws_session_token").String(),
	}, nil
}
