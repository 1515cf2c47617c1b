package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Blue Shirt":          "blue-shirt",
		"Red T-Shirt (XL)":    "red-t-shirt-xl",
		"  spaced   out  ":    "spaced-out",
		"Essence Mascara 2.0": "essence-mascara-2-0",
		"UPPER":               "upper",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}
