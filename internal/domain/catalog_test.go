package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductCatalog_Validate(t *testing.T) {
	assert.NoError(t, DefaultCatalog.Validate())
	assert.Error(t, ProductCatalog{}.Validate())
	assert.Error(t, ProductCatalog{"a", " "}.Validate())
	assert.Error(t, ProductCatalog{"a", "b", "a"}.Validate())
}

func TestProductCatalog_FlagColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "flag_x", "flag_y"}, ProductCatalog{"x", "y"}.FlagColumns())
	assert.Len(t, DefaultCatalog.FlagColumns(), 11)
	assert.Equal(t, "sum_c", SumColumn("c"))
	assert.Equal(t, "count_c", CountColumn("c"))
}
