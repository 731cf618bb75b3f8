package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unipept/internal/errors"
)

func TestReadTaxonList(t *testing.T) {
	tl, err := ReadTaxonList(strings.NewReader(
		"1\troot\tno rank\t1\t\\1\n" +
			"9606\tHomo sapiens\tspecies\t9605\t\\1\n" +
			"\n" +
			"562\tEscherichia coli\tspecies\t561\t\\1\n"))
	require.NoError(t, err)

	assert.Equal(t, 9607, tl.Len())
	assert.Equal(t, 3, tl.Count())
	assert.True(t, tl.Contains(9606))
	assert.True(t, tl.Contains(1))
	assert.False(t, tl.Contains(2))
	assert.False(t, tl.Contains(-1))
}

func TestReadTaxonListRejectsBadID(t *testing.T) {
	_, err := ReadTaxonList(strings.NewReader("1\troot\nabc\tbad\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrParse))
	assert.Contains(t, err.Error(), "line 2")
}

func TestIndexIsAValidator(t *testing.T) {
	ix, err := Build(strings.NewReader(dump(row(4, nil))))
	require.NoError(t, err)

	var v Validator = ix
	assert.Equal(t, 5, v.Len())
	assert.True(t, v.Contains(4))
	assert.False(t, v.Contains(3))
}
