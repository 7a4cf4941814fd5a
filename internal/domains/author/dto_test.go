package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAuthorRequestValidate(t *testing.T) {
	assert.NoError(t, CreateAuthorRequest{Name: "Frank Herbert"}.Validate())
	assert.Error(t, CreateAuthorRequest{}.Validate())
}

func TestPatchAuthorRequestValidate(t *testing.T) {
	assert.NoError(t, PatchAuthorRequest{}.Validate())

	empty := ""
	assert.Error(t, PatchAuthorRequest{Name: &empty}.Validate())
}

func TestListAuthorsRequestValidate(t *testing.T) {
	assert.NoError(t, ListAuthorsRequest{}.Validate())
	assert.NoError(t, ListAuthorsRequest{Ordering: "name"}.Validate())
	assert.NoError(t, ListAuthorsRequest{Ordering: "-name"}.Validate())
	assert.Error(t, ListAuthorsRequest{Ordering: "bio"}.Validate())
}
