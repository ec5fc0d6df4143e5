package keyfile

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
)

// Manifest lists key pairs for a batch run:
//
//	scheme: Kyber1024
//	encoding: auto
//	pairs:
//	  - name: hsm-primary
//	    public: keys/primary.pub
//	    secret: keys/primary.key
//
// Relative paths are resolved against the manifest's directory.
type Manifest struct {
	Scheme   string      `yaml:"scheme"`
	Encoding Encoding    `yaml:"encoding" validate:"omitempty,oneof=auto raw hex base64 pem"`
	Pairs    []PairEntry `yaml:"pairs" validate:"required,min=1,unique=Name,dive"`

	dir string
}

// PairEntry is one pair in a Manifest.
type PairEntry struct {
	Name   string `yaml:"name" validate:"required"`
	Public string `yaml:"public" validate:"required"`
	Secret string `yaml:"secret" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadManifest reads, parses and validates a manifest. Unknown fields are
// rejected so a typo cannot silently drop a pair.
func LoadManifest(path string) (*Manifest, error) {
	data, err := readLimited(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// ParseManifest parses and validates manifest YAML. Relative paths resolve
// against the working directory.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", qerrors.ErrInvalidManifest, err)
	}

	m.Encoding = Encoding(strings.ToLower(string(m.Encoding)))
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("%w: %s", qerrors.ErrInvalidManifest, describeValidation(err))
	}
	if m.Encoding == "" {
		m.Encoding = EncodingAuto
	}
	m.dir = "."
	return &m, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Manifest.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, field+" must list at least one pair")
		case "unique":
			msgs = append(msgs, "pair names must be unique")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// Path resolves a path from the manifest.
func (m *Manifest) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// LoadKeys reads both keys of e with the manifest's encoding.
func (m *Manifest) LoadKeys(e PairEntry) (pk, sk []byte, err error) {
	pk, err = Load(m.Path(e.Public), m.Encoding)
	if err != nil {
		return nil, nil, fmt.Errorf("pair %s public key: %w", e.Name, err)
	}
	sk, err = Load(m.Path(e.Secret), m.Encoding)
	if err != nil {
		return nil, nil, fmt.Errorf("pair %s secret key: %w", e.Name, err)
	}
	return pk, sk, nil
}
