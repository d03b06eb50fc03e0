package types

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/distribution/reference"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
)

// DefaultTag is used if base image is specified without tag and digest.
const DefaultTag = "latest"

var (
	userNameRegExp = regexp.MustCompile(`^[a-z_][a-z0-9_-]*$`)
	envKeyRegExp   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	packageRegExp  = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.+_:=~-]*$`)
)

// ParseBaseImage parses string into base image and returns error if string is not a valid image reference.
func ParseBaseImage(strImage string) (BaseImage, error) {
	if strImage == "" {
		return BaseImage{}, errors.New("empty image reference received")
	}

	named, err := reference.ParseNormalizedNamed(strImage)
	if err != nil {
		return BaseImage{}, errors.Wrapf(err, "image reference '%s' is invalid", strImage)
	}

	image := BaseImage{Name: reference.FamiliarName(named)}
	if tagged, ok := named.(reference.Tagged); ok {
		image.Tag = tagged.Tag()
	}
	if digested, ok := named.(reference.Digested); ok {
		image.Digest = digested.Digest()
	}
	if image.Tag == "" && image.Digest == "" {
		image.Tag = DefaultTag
	}
	return image, nil
}

// NewBaseImage returns new base image referenced by tag.
func NewBaseImage(name, tag string) BaseImage {
	return BaseImage{Name: name, Tag: tag}
}

// BaseImage identifies the image environment is built on top of.
type BaseImage struct {
	Name   string
	Tag    string
	Digest digest.Digest
}

// IsZero returns true if base image is not set.
func (bi BaseImage) IsZero() bool {
	return bi.Name == ""
}

// Validate verifies that base image is a valid image reference.
func (bi BaseImage) Validate() error {
	if bi.IsZero() {
		return errors.New("base image is not set")
	}
	if bi.Tag == "" && bi.Digest == "" {
		return errors.Errorf("image %s has neither tag nor digest", bi.Name)
	}
	if bi.Digest != "" {
		if err := bi.Digest.Validate(); err != nil {
			return errors.Wrapf(err, "digest of image %s is invalid", bi.Name)
		}
	}
	parsed, err := ParseBaseImage(bi.String())
	if err != nil {
		return err
	}
	if parsed != bi {
		return errors.Errorf("image reference %s is not in familiar form", bi)
	}
	return nil
}

// String returns string representation of base image.
func (bi BaseImage) String() string {
	var sb strings.Builder
	sb.WriteString(bi.Name)
	if bi.Tag != "" {
		sb.WriteString(":")
		sb.WriteString(bi.Tag)
	}
	if bi.Digest != "" {
		sb.WriteString("@")
		sb.WriteString(bi.Digest.String())
	}
	return sb.String()
}

// IsUserNameValid returns true if name may be used as a name of created user.
func IsUserNameValid(name string) bool {
	return len(name) <= 32 && userNameRegExp.MatchString(name)
}

// IsUID returns true if user is referenced by numeric ID.
func IsUID(user string) bool {
	_, err := strconv.ParseUint(user, 10, 32)
	return err == nil
}

// IsRoot returns true if user refers to the superuser.
func IsRoot(user string) bool {
	return user == "" || user == "root" || user == "0"
}

// IsEnvKeyValid returns true if key may be used as a name of environment variable.
func IsEnvKeyValid(key string) bool {
	return envKeyRegExp.MatchString(key)
}

// IsPackageNameValid returns true if name may be passed to package manager as a package.
func IsPackageNameValid(name string) bool {
	return packageRegExp.MatchString(name)
}
