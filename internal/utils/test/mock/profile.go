package mock

import (
	"testing"

	"github.com/dealpipeline/dbinit/internal/cli"

	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileDir is the directory mock profiles are stored in
const ProfileDir = "/home/dbinit/.config/dbinit"

// NewProfile returns a new CLI profile with a random name,
// backed by an in-memory filesystem
func NewProfile(t *testing.T) *cli.Profile {
	profile, _ := NewProfileWithFs(t)
	return profile
}

// NewProfileWithFs returns a new CLI profile with a random name,
// along with the in-memory filesystem backing it
func NewProfileWithFs(t *testing.T) (*cli.Profile, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return cli.NewProfileWithFs(primitive.NewObjectID().Hex(), ProfileDir, fs), fs
}
